package handler

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the JSON body for all error replies
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeJSON writes data as a JSON response with the given status
func writeJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError writes a JSON error response with the given status
func writeError(w http.ResponseWriter, message, details string, status int) {
	writeJSON(w, ErrorResponse{Error: message, Details: details}, status)
}
