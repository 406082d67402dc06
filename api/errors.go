package api

import "fmt"

// Error codes carried by error responses.
const (
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeNotFound       = "not_found"
	ErrCodeInvalidSpec    = "invalid_spec"
	ErrCodeInternal       = "internal"
)

// Error is the error member of a Response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Code-only values for use with errors.Is.
var (
	ErrInvalidMessage = &Error{Code: ErrCodeInvalidMessage}
	ErrNotFound       = &Error{Code: ErrCodeNotFound}
	ErrInvalidSpec    = &Error{Code: ErrCodeInvalidSpec}
	ErrInternal       = &Error{Code: ErrCodeInternal}
)

func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Code == "":
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && t != nil && t.Code != "" && e.Code == t.Code
}
