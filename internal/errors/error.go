package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
	CategoryRegistry Category = "registry"
	CategoryDeploy   Category = "deploy"
)

// StencilError is a structured error with a stable code, a suggestion, and
// a documentation link.
type StencilError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (config, cli, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *StencilError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *StencilError) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *StencilError) WithDetail(d string) *StencilError {
	e.Detail = d
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *StencilError) WithSuggestion(s string) *StencilError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *StencilError) Wrap(err error) *StencilError {
	e.Wrapped = err
	return e
}

// New creates a StencilError from a registered error code.
func New(code string) *StencilError {
	template, ok := registry[code]
	if !ok {
		return &StencilError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &StencilError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new StencilError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *StencilError {
	return &StencilError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a StencilError.
func FromError(err error, code string) *StencilError {
	if err == nil {
		return nil
	}
	if se, ok := err.(*StencilError); ok {
		return se
	}
	return New(code).Wrap(err)
}
