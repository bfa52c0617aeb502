package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/handlers"
)

func init() { Register(registerFlush) }

func registerFlush(r chi.Router, d deps.Deps) {
	r.With(guard(d)...).Post("/api/flush", handlers.Flush(d))
}
