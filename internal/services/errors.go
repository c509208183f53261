package services

import (
	"errors"
	"fmt"

	"airline-ops/flightcore/internal/constants"
)

// Error kinds. Every failure returned by the engine unwraps to exactly one.
var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrIllegalStateTransition = errors.New("illegal state transition")
	ErrSchedulingConflict     = errors.New("scheduling conflict")
	ErrCapacityExhausted      = errors.New("capacity exhausted")
	ErrBlockedByDependents    = errors.New("blocked by dependents")
	ErrAlreadyExists          = errors.New("already exists")
)

// EngineError carries a kind, a stable code and a user-legible message
type EngineError struct {
	Kind    error
	Code    string
	Message string
}

func (e *EngineError) Error() string { return e.Message }

func (e *EngineError) Unwrap() error { return e.Kind }

func newError(kind error, code string, detail string) *EngineError {
	msg := constants.GetErrorMessage(code)
	if detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}
	return &EngineError{Kind: kind, Code: code, Message: msg}
}

func notFound(code, id string) *EngineError {
	return newError(ErrNotFound, code, id)
}

func invalidInput(code, detail string) *EngineError {
	return newError(ErrInvalidInput, code, detail)
}

func illegalState(code, detail string) *EngineError {
	return newError(ErrIllegalStateTransition, code, detail)
}

// ErrorCode returns the engine code of err, or "" for infrastructure errors
func ErrorCode(err error) string {
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return engineErr.Code
	}
	return ""
}
