package apierror

import "net/http"

// APIError is the uniform error shape the API returns to clients.
// StatusCode doubles as the HTTP response status.
type APIError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func New(message string, status int) *APIError {
	return &APIError{Message: message, StatusCode: status}
}

func BadRequest(message string) *APIError {
	return New(message, http.StatusBadRequest)
}

// Unauthenticated deliberately carries a single generic message so the
// client cannot distinguish expired, revoked, malformed or unknown-user
// failures.
func Unauthenticated() *APIError {
	return New("authentication required", http.StatusUnauthorized)
}

func Conflict(message string) *APIError {
	return New(message, http.StatusConflict)
}

func NotFound(message string) *APIError {
	return New(message, http.StatusNotFound)
}
