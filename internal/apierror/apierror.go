// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erreur de validation", Fields: fields}
}

// ConflictError carries the number of blocking references for 409 responses
// (category still used by products, supplier still referenced by a running
// import, etc.). Count is zero when the conflict has no meaningful count.
type ConflictError struct {
	Detail string `json:"detail"`
	Count  int    `json:"count,omitempty"`
}

func NewConflict(msg string, count int) *ConflictError {
	return &ConflictError{Detail: msg, Count: count}
}
