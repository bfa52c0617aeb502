package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/library"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, reason string, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error(), Status: reason})
}

// writeDomainError maps library and domain errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownSection):
		writeError(w, http.StatusUnprocessableEntity, "unknown_section", err)
	case errors.Is(err, domain.ErrInvalidTheme):
		writeError(w, http.StatusUnprocessableEntity, "invalid_theme", err)
	case errors.Is(err, library.ErrRatingOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, "rating_out_of_range", err)
	case errors.Is(err, library.ErrNegativePage):
		writeError(w, http.StatusUnprocessableEntity, "negative_page", err)
	case errors.Is(err, library.ErrRatingOutsideFinished):
		writeError(w, http.StatusConflict, "not_finished", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal", err)
	}
}

// writeResult renders a mutation outcome. Unknown ids are reported as 404
// with the same body shape.
func writeResult(w http.ResponseWriter, res library.Result) {
	status := http.StatusOK
	if res.Status == library.StatusNotFound {
		status = http.StatusNotFound
	}
	writeJSON(w, status, res)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid JSON body: %w", err))
		return false
	}
	return true
}

func bookID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid book id %q", raw))
		return 0, false
	}
	return id, true
}
