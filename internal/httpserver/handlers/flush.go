package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

type flushResponse struct {
	Triggered bool `json:"triggered"`
	Dirty     bool `json:"dirty"`
}

// Flush asks the background flusher to retry pending saves now.
func Flush(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dirty := d.Library.Dirty()

		select {
		case d.FlushTrigger <- struct{}{}:
			d.Logger.Info("manual flush triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr),
				logger.Bool("dirty", dirty))
			writeJSON(w, http.StatusAccepted, flushResponse{Triggered: true, Dirty: dirty})
		default:
			d.Logger.Warn("flush already pending",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, flushResponse{Triggered: false, Dirty: dirty})
		}
	}
}
