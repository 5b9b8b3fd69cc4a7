// Package errors provides structured error handling for Fido.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (contact sources, store files)
//   - 3XX: Provider errors (fetching contacts)
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and disk I/O errors.
	CategoryIO Category = "IO"
	// CategoryProvider indicates contact provider errors.
	CategoryProvider Category = "PROVIDER"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// IO errors (200-299)
	ErrCodeSourceNotFound   = "ERR_201_SOURCE_NOT_FOUND"
	ErrCodeSourcePermission = "ERR_202_SOURCE_PERMISSION"
	ErrCodeSourceCorrupt    = "ERR_203_SOURCE_CORRUPT"
	ErrCodeStoreLocked      = "ERR_204_STORE_LOCKED"

	// Provider errors (300-399)
	ErrCodeFetchFailed     = "ERR_301_FETCH_FAILED"
	ErrCodeUnknownProvider = "ERR_302_UNKNOWN_PROVIDER"

	// Validation errors (400-499)
	ErrCodeInvalidInput  = "ERR_401_INVALID_INPUT"
	ErrCodeInvalidQuery  = "ERR_402_INVALID_QUERY"
	ErrCodeEmptyNumber   = "ERR_403_EMPTY_NUMBER"
	ErrCodeInvalidRegion = "ERR_404_INVALID_REGION"

	// Internal errors (500-599)
	ErrCodeInternal   = "ERR_501_INTERNAL"
	ErrCodeCallFailed = "ERR_502_CALL_FAILED"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Numeric portion, e.g. "101" from "ERR_101_CONFIG_NOT_FOUND"
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '3':
		return CategoryProvider
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeSourceCorrupt:
		return SeverityFatal
	case ErrCodeFetchFailed:
		// A failed fetch leaves the previous contact list in place.
		return SeverityWarning
	}
	return SeverityError
}
