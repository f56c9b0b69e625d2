package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/yungbote/knowledge-backend/internal/domain/faults"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// From converts any error into an API error. Existing *Error values pass
// through; domain faults map by code; everything else is a 500.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	code := faults.CodeOf(err)
	return New(StatusFor(code), string(code), err)
}

// StatusFor maps a fault code to its HTTP status.
func StatusFor(code faults.Code) int {
	switch code {
	case faults.CodeValidation:
		return http.StatusBadRequest
	case faults.CodeNotFound:
		return http.StatusNotFound
	case faults.CodeConflict:
		return http.StatusConflict
	case faults.CodePreconditionFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
