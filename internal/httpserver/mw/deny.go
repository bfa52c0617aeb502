package mw

import (
	"encoding/json"
	"net/http"
)

// deny writes the same JSON error shape the API handlers use.
func deny(w http.ResponseWriter, status int, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":  http.StatusText(status),
		"status": reason,
	})
}
