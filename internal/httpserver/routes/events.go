package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/handlers"
)

func init() { RegisterStream(registerEvents) }

func registerEvents(r chi.Router, d deps.Deps) {
	r.With(guard(d)...).Get("/api/events", handlers.Events(d))
}
