package utils

import (
	"encoding/json"
	"net/http"
)

// ReplyResponse is the success body: the relayed assistant reply.
type ReplyResponse struct {
	Reply string `json:"reply"`
}

// ErrorResponse is the failure body. Every failure carries a single
// error string; the UI surfaces it directly as a chat bubble.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteReply writes a 200 OK response with the relayed reply
func WriteReply(w http.ResponseWriter, reply string) error {
	return WriteJSON(w, http.StatusOK, ReplyResponse{Reply: reply})
}

// WriteBadRequest writes a 400 Bad Request error response
func WriteBadRequest(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Bad request"
	}
	return WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: message})
}

// WriteMethodNotAllowed writes a 405 Method Not Allowed error response
func WriteMethodNotAllowed(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Method not allowed"
	}
	return WriteJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: message})
}

// WriteNotFound writes a 404 Not Found error response
func WriteNotFound(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: message})
}

// WriteInternalServerError writes a 500 Internal Server Error response
func WriteInternalServerError(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: message})
}
