package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// envelope is the wrapper used for every JSON response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeData sends a success envelope carrying a message and a record.
func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

// writeList sends a success envelope carrying a collection and its count.
func writeList(w http.ResponseWriter, data any, count int) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Count: &count, Data: data})
}

// writeFailure sends a failure envelope with just a message (4xx responses).
func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// writeInternal sends a 500 envelope echoing the underlying error text, and
// logs it. The error echo is part of the documented response contract.
func writeInternal(w http.ResponseWriter, message string, err error) {
	slog.Error(message, "error", err)
	writeJSON(w, http.StatusInternalServerError, envelope{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}

// readJSON decodes the request body into the given destination.
func readJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
