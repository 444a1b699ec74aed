// Package apierr is the wire-facing error shape: an HTTP status, a stable
// machine-readable code, and the wrapped cause. Handlers serialize the code
// and message; the status picks the response.
package apierr

import "net/http"

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Err != nil:
		return e.Err.Error()
	case e.Code != "":
		return e.Code
	default:
		return http.StatusText(e.statusOrDefault())
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) statusOrDefault() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// BadRequest marks input the caller can correct.
func BadRequest(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

// Unprocessable marks well-formed input rejected by a pipeline gate.
func Unprocessable(code string, err error) *Error {
	return New(http.StatusUnprocessableEntity, code, err)
}

// Unavailable marks a mutation refused because a required collaborator is
// not configured or not reachable.
func Unavailable(code string, err error) *Error {
	return New(http.StatusServiceUnavailable, code, err)
}

// Internal marks a server-side failure the caller cannot do anything about.
func Internal(code string, err error) *Error {
	return New(http.StatusInternalServerError, code, err)
}
