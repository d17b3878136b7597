package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// Error is the wire-level error envelope shared by every service. It carries
// only a status code and a short safe message; no internals, no token
// contents. It doubles as a Go error so SDK clients can surface it directly.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Write emits the error as a JSON response body.
func (e *Error) Write(w http.ResponseWriter) {
	WriteJSON(w, e.Status, e)
}

// NewError builds an Error with the given status and message.
func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Predefined errors for the authorization path. The credentials message is
// deliberately shared between unknown-id and bad-secret outcomes.
var (
	ErrInvalidCredentials = NewError(http.StatusUnauthorized, "Invalid client credentials")
	ErrMissingAuthHeader  = NewError(http.StatusUnauthorized, "Missing or invalid Authorization header")
	ErrInvalidToken       = NewError(http.StatusUnauthorized, "Invalid token")
	ErrExpiredToken       = NewError(http.StatusUnauthorized, "Token has expired")
	ErrInternal           = NewError(http.StatusInternalServerError, "Internal server error")
)

// ErrMissingScope builds the insufficient-scope error for a required scope.
// The message names the missing scope but never the token's own scope set.
func ErrMissingScope(scope string) *Error {
	return NewError(http.StatusForbidden, "Token missing required scope: "+scope)
}

// ErrScopeEscalation builds the issuance-time error naming the scopes the
// authenticated client is not authorized for.
func ErrScopeEscalation(unauthorized []string) *Error {
	return NewError(
		http.StatusForbidden,
		"Client not authorized for scopes: ["+strings.Join(unauthorized, " ")+"]",
	)
}
