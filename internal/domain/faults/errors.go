package faults

import (
	"errors"
	"fmt"
	"strings"
)

// Code standardizes failure semantics across the repo, use-case and HTTP layers.
type Code string

const (
	CodeValidation         Code = "validation"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodePreconditionFailed Code = "precondition_failed"
	CodeStorage            Code = "storage"
	CodeInternal           Code = "internal"
)

// Error is the canonical error wrapper.
type Error struct {
	Code    Code
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an error with explicit code and operation.
func NewError(code Code, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates err with a code. A nil err stays nil.
func Wrap(code Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// NotFound reports that the entity of the given kind and id does not exist.
func NotFound(op, kind, id string) error {
	return NewError(CodeNotFound, op, fmt.Sprintf("%s %q not found", kind, id), nil)
}

// Validation reports caller input that violates a required-field contract.
func Validation(op, message string) error {
	return NewError(CodeValidation, op, message, nil)
}

// IsCode checks whether err (or a wrapped err) carries code.
func IsCode(err error, code Code) bool {
	var fe *Error
	if !errors.As(err, &fe) {
		return false
	}
	return fe.Code == code
}

func IsNotFound(err error) bool { return IsCode(err, CodeNotFound) }

func IsValidation(err error) bool { return IsCode(err, CodeValidation) }

// CodeOf extracts the code, defaulting to CodeInternal for foreign errors.
func CodeOf(err error) Code {
	var fe *Error
	if !errors.As(err, &fe) {
		return CodeInternal
	}
	return fe.Code
}
