package errors

import (
	stderrors "errors"
	"fmt"
)

// FidoError is the structured error type for Fido.
// It carries enough context for logging and for CLI presentation.
type FidoError struct {
	// Code is the unique error code (e.g., "ERR_201_SOURCE_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Provider, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *FidoError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *FidoError) Unwrap() error {
	return e.Cause
}

// Is matches another FidoError by code so errors.Is works across wrapping.
func (e *FidoError) Is(target error) bool {
	if t, ok := target.(*FidoError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
func (e *FidoError) WithDetail(key, value string) *FidoError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *FidoError) WithSuggestion(suggestion string) *FidoError {
	e.Suggestion = suggestion
	return e
}

// New creates a new FidoError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *FidoError {
	return &FidoError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a FidoError from an existing error.
// The error's message becomes the FidoError message.
func Wrap(code string, err error) *FidoError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *FidoError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// SourceError creates an error for an unreadable contact source.
func SourceError(message string, cause error) *FidoError {
	return New(ErrCodeSourceNotFound, message, cause)
}

// ProviderError creates a contact fetch error.
func ProviderError(message string, cause error) *FidoError {
	return New(ErrCodeFetchFailed, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *FidoError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *FidoError {
	return New(ErrCodeInternal, message, cause)
}

// IsFatal checks if an error has fatal severity.
func IsFatal(err error) bool {
	var fe *FidoError
	if stderrors.As(err, &fe) {
		return fe.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a FidoError anywhere in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	var fe *FidoError
	if stderrors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

// GetCategory extracts the category from a FidoError anywhere in the chain.
func GetCategory(err error) Category {
	var fe *FidoError
	if stderrors.As(err, &fe) {
		return fe.Category
	}
	return ""
}
