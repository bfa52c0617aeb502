package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

type themeBody struct {
	Theme domain.Theme `json:"theme"`
}

func GetTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, themeBody{Theme: d.Adapter.LoadTheme(r.Context())})
	}
}

func PutTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req themeBody
		if !decodeJSON(w, r, &req) {
			return
		}
		t, err := domain.ParseTheme(string(req.Theme))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if err := d.Adapter.SaveTheme(r.Context(), t); err != nil {
			d.Logger.Error("failed to save theme", logger.Error(err))
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, themeBody{Theme: t})
	}
}

func ToggleTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := d.Adapter.ToggleTheme(r.Context())
		if err != nil {
			d.Logger.Error("failed to toggle theme", logger.Error(err))
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, themeBody{Theme: t})
	}
}
