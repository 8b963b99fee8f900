package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// PlatformError is an error carrying an ErrorCode and optional context.
// Use errors.As with a PlatformError variable to inspect it.
type PlatformError interface {
	error

	// Code returns the classification of the failure.
	Code() ErrorCode

	// Message returns the human-readable message without the cause.
	Message() string

	// Context returns additional key/value details, or nil.
	Context() map[string]interface{}

	// Unwrap returns the underlying cause, if any.
	Unwrap() error
}

type platformError struct {
	code    ErrorCode
	message string
	context map[string]interface{}
	cause   error
}

func (e *platformError) Error() string {
	var b strings.Builder
	b.WriteString(e.message)
	if len(e.context) > 0 {
		keys := make([]string, 0, len(e.context))
		for k := range e.context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, e.context[k])
		}
		b.WriteString(")")
	}
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *platformError) Code() ErrorCode                 { return e.code }
func (e *platformError) Message() string                 { return e.message }
func (e *platformError) Context() map[string]interface{} { return e.context }
func (e *platformError) Unwrap() error                   { return e.cause }

// New creates a PlatformError with the given code and message.
func New(code ErrorCode, message string) error {
	return &platformError{code: code, message: message}
}

// Newf creates a PlatformError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) error {
	return &platformError{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
// Wrapping a nil error returns nil.
func Wrap(err error, code ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	return &platformError{code: code, message: message, cause: err}
}

// WrapWithContext is Wrap with additional key/value context rendered in Error().
func WrapWithContext(err error, code ErrorCode, message string, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &platformError{code: code, message: message, context: context, cause: err}
}

// NewWithContext creates a PlatformError with key/value context and no cause.
func NewWithContext(code ErrorCode, message string, context map[string]interface{}) error {
	return &platformError{code: code, message: message, context: context}
}

// GetCode returns the code of the outermost PlatformError in err's chain,
// or CodeUnknown when there is none.
func GetCode(err error) ErrorCode {
	var pe PlatformError
	if As(err, &pe) {
		return pe.Code()
	}
	return CodeUnknown
}

// IsCode reports whether any PlatformError in err's chain carries code.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		if pe, ok := err.(PlatformError); ok && pe.Code() == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// ExitCode maps err to a process exit status. A nil error maps to 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return GetCode(err).ExitCode()
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool { return stderrors.As(err, target) }

// Unwrap returns the result of calling Unwrap on err.
func Unwrap(err error) error { return stderrors.Unwrap(err) }
