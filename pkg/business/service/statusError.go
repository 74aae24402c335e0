package service

import "fmt"

// StatusError переносит HTTP-статус апстрима, чтобы ретраер мог его классифицировать.
type StatusError struct {
	StatusCode int
	Endpoint   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.Endpoint)
}

func NewStatusError(statusCode int, endpoint string) *StatusError {
	return &StatusError{StatusCode: statusCode, Endpoint: endpoint}
}

// Retryable reports whether the status is worth another attempt:
// 429 (rate limited) or any 5xx.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
