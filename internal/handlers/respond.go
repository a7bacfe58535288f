package handlers

import (
	"encoding/json"
	"net/http"

	"cmc-mcp/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func sendError(w http.ResponseWriter, status int, errorCode, message string) {
	writeJSON(w, status, models.ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}
