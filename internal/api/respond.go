package api

import (
	"encoding/json"
	"log"
	"net/http"

	apperrors "rentafacil/internal/errors"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps the domain error categories onto HTTP responses. Internal
// errors are logged but never leaked to the client.
func writeError(w http.ResponseWriter, err error) {
	status := apperrors.StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		message = "internal server error"
	}
	writeJSON(w, status, errorResponse{Error: message})
}
