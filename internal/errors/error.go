package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig  Category = "config"
	CategorySource  Category = "source"
	CategoryInstall Category = "install"
	CategoryCleanup Category = "cleanup"
	CategoryProcess Category = "process"
	CategoryDev     Category = "dev"
	CategoryCLI     Category = "cli"
)

// InstallError is a structured error with a code, suggestions, and documentation.
type InstallError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (config, install, process, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Path is the filesystem path the error relates to, if any.
	Path string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *InstallError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *InstallError) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *InstallError) WithDetail(d string) *InstallError {
	e.Detail = d
	return e
}

// WithPath records the filesystem path involved in the error.
func (e *InstallError) WithPath(p string) *InstallError {
	e.Path = p
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *InstallError) WithSuggestion(s string) *InstallError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *InstallError) Wrap(err error) *InstallError {
	e.Wrapped = err
	return e
}

// New creates an InstallError from a registered error code.
func New(code string) *InstallError {
	template, ok := registry[code]
	if !ok {
		return &InstallError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &InstallError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new InstallError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *InstallError {
	return &InstallError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an InstallError.
func FromError(err error, code string) *InstallError {
	if err == nil {
		return nil
	}
	if ie, ok := err.(*InstallError); ok {
		return ie
	}
	return New(code).Wrap(err)
}
