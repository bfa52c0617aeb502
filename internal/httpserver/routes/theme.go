package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/handlers"
)

func init() { Register(registerTheme) }

func registerTheme(r chi.Router, d deps.Deps) {
	r = r.With(guard(d)...)
	r.Get("/api/theme", handlers.GetTheme(d))
	r.Put("/api/theme", handlers.PutTheme(d))
	r.Post("/api/theme/toggle", handlers.ToggleTheme(d))
}
