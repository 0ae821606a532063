// Package handlers implements the HTTP surface of the risk backend. Every
// endpoint replies with the {is_success, message, data} envelope the ERP
// frontends consume.
package handlers

import (
	"encoding/json"
	"net/http"
)

// envelope is the uniform response body shape.
type envelope struct {
	IsSuccess bool   `json:"is_success"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
}

// respond writes a success envelope.
func respond(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		IsSuccess: true,
		Message:   message,
		Data:      data,
	})
}

// respondError writes a failure envelope.
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		IsSuccess: false,
		Message:   message,
		Data:      nil,
	})
}

// queryFlag reports whether a query parameter is set to a truthy value.
func queryFlag(r *http.Request, name string) bool {
	switch r.URL.Query().Get(name) {
	case "true", "1", "yes":
		return true
	}
	return false
}
