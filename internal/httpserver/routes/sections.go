package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/handlers"
)

func init() { Register(registerSections) }

func registerSections(r chi.Router, d deps.Deps) {
	r = r.With(guard(d)...)
	r.Get("/api/sections", handlers.ListSections(d))
	r.Get("/api/sections/{section}/targets", handlers.MoveTargets(d))
}
