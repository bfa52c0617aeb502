package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
)

type componentStatus struct {
	OK     bool   `json:"ok"`
	Books  *int   `json:"books,omitempty"`
	Mode   string `json:"mode,omitempty"`
	Impact string `json:"impact,omitempty"`
	Error  string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.Library.Count()
		mode := "permissive"
		if d.Library.Strict() {
			mode = "strict"
		}

		components := map[string]componentStatus{
			"library": {
				OK:    true,
				Books: &count,
				Mode:  mode,
			},
			"storage": checkStorage(r.Context(), d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if storage, exists := components["storage"]; exists && !storage.OK {
		// Mutations still apply in memory and are retried by the flusher.
		return "degraded"
	}
	return "ok"
}

func checkStorage(ctx context.Context, d deps.Deps) componentStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Adapter.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   d.Storage,
			Impact: "changes-kept-in-memory",
			Error:  err.Error(),
		}
	}
	if d.Library.Dirty() {
		return componentStatus{
			OK:     false,
			Mode:   d.Storage,
			Impact: "save-pending",
		}
	}
	return componentStatus{OK: true, Mode: d.Storage}
}
