package awsclouddirectory

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"

	"clouddirmcp/internal/redact"
)

// ErrInvalidArgument matches every *InvocationError via errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// Result is the outcome of one operation that reached the provider. Exactly
// one of Value and ProviderError is meaningful.
type Result[T any] struct {
	Value         T
	ProviderError string
	// Region the connection resolved to.
	Region string
}

func (r Result[T]) Failed() bool {
	return r.ProviderError != ""
}

// Payload returns the JSON-serializable return value: the success value or
// {"error": description}.
func (r Result[T]) Payload() any {
	if r.Failed() {
		return map[string]any{"error": r.ProviderError}
	}
	return r.Value
}

// InvocationError reports a missing, empty or wrongly typed argument. It is
// returned before any remote call is made.
type InvocationError struct {
	Operation string
	Argument  string
	// Reason replaces "is required" in the message when set.
	Reason string
}

func (e *InvocationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s %s", e.Operation, e.Argument, e.Reason)
	}
	return fmt.Sprintf("%s: %s is required", e.Operation, e.Argument)
}

func (e *InvocationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func (e *InvocationError) InvalidArgument() bool {
	return true
}

// DocumentError reports that the schema document could not be read.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("read schema document %q: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// ConnectionError reports that no client could be built for the requested
// connection parameters.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("resolve clouddirectory connection: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ErrorFormatter turns a failed remote call into a provider error
// description. ok is false when err did not come from the provider.
type ErrorFormatter func(operation string, err error) (desc string, ok bool)

// FormatProviderError describes API errors as "<Operation>: <Code>: <Message>".
func FormatProviderError(operation string, err error) (string, bool) {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return "", false
	}
	msg := apiErr.ErrorMessage()
	if msg == "" {
		return fmt.Sprintf("%s: %s", operation, apiErr.ErrorCode()), true
	}
	return fmt.Sprintf("%s: %s: %s", operation, apiErr.ErrorCode(), msg), true
}

// RedactingFormatter scrubs credential material from descriptions produced
// by next.
func RedactingFormatter(redactor *redact.Redactor, next ErrorFormatter) ErrorFormatter {
	if next == nil {
		next = FormatProviderError
	}
	return func(operation string, err error) (string, bool) {
		desc, ok := next(operation, err)
		if !ok || redactor == nil {
			return desc, ok
		}
		return redactor.RedactString(desc), true
	}
}
