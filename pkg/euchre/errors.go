package euchre

import "fmt"

// ErrorKind classifies an action failure per spec.md §7. The wire layer
// does not branch on it: in-room action errors of every kind are sent as
// {type:"error"} frames, and a failed join on the websocket endpoint is
// answered with HTTP 409 whatever its kind.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindAuthorization ErrorKind = "authorization"
	KindConflict      ErrorKind = "conflict"
	KindPhase         ErrorKind = "phase"
)

// ActionError is a classified, user-facing action failure. It never carries
// a state mutation: callers must leave the room unchanged when one of these
// is returned.
type ActionError struct {
	Kind    ErrorKind
	Message string
}

func (e *ActionError) Error() string {
	return e.Message
}

func newError(kind ErrorKind, format string, args ...any) *ActionError {
	return &ActionError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func validationError(format string, args ...any) *ActionError {
	return newError(KindValidation, format, args...)
}

func authorizationError(format string, args ...any) *ActionError {
	return newError(KindAuthorization, format, args...)
}

func conflictError(format string, args ...any) *ActionError {
	return newError(KindConflict, format, args...)
}

func phaseError(format string, args ...any) *ActionError {
	return newError(KindPhase, format, args...)
}
