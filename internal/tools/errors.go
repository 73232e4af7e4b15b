package tools

import (
	"errors"
	"fmt"
)

// Kind classifies tool failures.
type Kind int

const (
	// KindValidation means the input was outside the allowed set. Nothing was executed.
	KindValidation Kind = iota + 1
	// KindCommand means the external command ran and reported failure.
	KindCommand
	// KindUnavailable means the external command could not be executed at all.
	KindUnavailable
	// KindInternal covers everything unexpected, including recovered panics.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindCommand:
		return "command"
	case KindUnavailable:
		return "unavailable"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the typed failure of a tool run. Message and Params select the
// display string; Err keeps the detail for logging.
type Error struct {
	Kind    Kind
	Tool    string
	Message MessageID
	Params  []any
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("tool %s: %s failure", e.Tool, e.Kind)
	}
	return fmt.Sprintf("tool %s: %s failure: %v", e.Tool, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	ErrUnknownTool    = errors.New("unknown tool")
	ErrNonZeroExit    = errors.New("command exited with non-zero status")
	ErrUnexpectedData = errors.New("unexpected command output")
)

func newError(kind Kind, tool string, err error, msg MessageID, params ...any) *Error {
	return &Error{Kind: kind, Tool: tool, Message: msg, Params: params, Err: err}
}

// KindOf reports the kind of a tool error, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var toolErr *Error
	if errors.As(err, &toolErr) {
		return toolErr.Kind
	}
	return KindInternal
}
