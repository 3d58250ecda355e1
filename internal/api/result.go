package api

import (
	"fmt"
	"net/http"
)

// Result is the uniform outcome of a remote call: either Data, or a
// human-readable Error. StatusCode is the HTTP status, 401 for calls refused
// locally for lack of a token, and 500 for transport failures.
type Result[T any] struct {
	Data       *T
	Error      string
	StatusCode int
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.Error == ""
}

// Err returns the failure as an *Error, or nil on success.
func (r Result[T]) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{StatusCode: r.StatusCode, Message: r.Error}
}

// Value returns the data or the zero value of T.
func (r Result[T]) Value() T {
	var zero T
	if r.Data == nil {
		return zero
	}
	return *r.Data
}

// Error is a normalized remote (or locally refused) failure.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Unauthorized reports whether the failure was an authentication problem.
func (e *Error) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

func failure[T any](status int, msg string) Result[T] {
	return Result[T]{Error: msg, StatusCode: status}
}
