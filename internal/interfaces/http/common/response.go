package common

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("JSON エンコードに失敗: %v", err)
	}
}

// WriteServerError responds 500 with a generic message and the underlying error text.
func WriteServerError(logger *log.Logger, w http.ResponseWriter, err error) {
	WriteJSON(logger, w, http.StatusInternalServerError, ErrorResponse{Message: "Server Error", Error: err.Error()})
}
