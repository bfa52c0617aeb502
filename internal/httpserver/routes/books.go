package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/mw"
)

func init() { Register(registerBooks) }

func registerBooks(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateBurst,
		RefillPerIPPerMin: d.RatePerMin,
		MaxEntries:        10_000,
		TrustProxy:        d.TrustProxy,
	})

	r.With(guard(d)...).Route("/api/books", func(r chi.Router) {
		r.Get("/", handlers.ListBooks(d))
		r.Get("/{id}", handlers.GetBook(d))

		r.Group(func(r chi.Router) {
			r.Use(limit)
			r.Post("/", handlers.AddBook(d))
			r.Delete("/{id}", handlers.DeleteBook(d))
			r.Post("/{id}/move", handlers.MoveBook(d))
			r.Post("/{id}/rate", handlers.RateBook(d))
			r.Post("/{id}/progress", handlers.UpdateProgress(d))
			r.Put("/{id}/notes", handlers.UpdateNotes(d))
			r.Put("/{id}/details", handlers.SaveDetails(d))
			r.Put("/{id}/cover", handlers.UpdateCover(d))
		})
	})
}

// guard is the access policy shared by every API route.
func guard(d deps.Deps) []Middleware {
	return []Middleware{
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
	}
}
