package api

import "fmt"

// Error is a non-2xx backend response. Message carries the backend-provided
// detail when the body had one, else a generic fallback.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(statusCode int, detail string) *Error {
	if detail == "" {
		detail = fmt.Sprintf("HTTP error, status %d", statusCode)
	}
	return &Error{StatusCode: statusCode, Message: detail}
}
