package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed model invocation.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindAccessDenied
	KindThrottling
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindAccessDenied:
		return "AccessDenied"
	case KindThrottling:
		return "Throttling"
	case KindValidation:
		return "Validation"
	default:
		return "Unknown"
	}
}

// Error wraps a provider failure with its classified kind.
type Error struct {
	Kind     ErrorKind
	Provider string // provider name, e.g. "bedrock/converse"
	Op       string // operation that failed, e.g. "converse"
	Code     string // provider error code when exposed
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a classified provider error.
func NewError(kind ErrorKind, provider, op, code string, err error) *Error {
	return &Error{Kind: kind, Provider: provider, Op: op, Code: code, Err: err}
}

// KindOf returns the kind of err, or KindUnknown when err carries no classification.
func KindOf(err error) ErrorKind {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Kind
	}
	return KindUnknown
}
