package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	reg       Registrar
	mws       []Middleware
	streaming bool
}

var registry []entry

// RequestTimeout bounds every non-streaming route.
const RequestTimeout = 5 * time.Second

// Register a registrar with optional per-route middlewares.
func Register(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{reg: reg, mws: mws})
}

// RegisterStream registers long-lived routes that must not get the request
// timeout.
func RegisterStream(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{reg: reg, mws: mws, streaming: true})
}

// Called once from server.New()
func RegisterAll(r chi.Router, d deps.Deps) {
	bounded := r.With(middleware.Timeout(RequestTimeout))
	for _, e := range registry {
		target := bounded
		if e.streaming {
			target = r
		}
		if len(e.mws) > 0 {
			target = target.With(e.mws...) // apply per-route middlewares
		}
		e.reg(target, d)
	}
}
