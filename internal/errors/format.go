package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// FormatForCLI formats an error for terminal display.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	var fe *FidoError
	if !stderrors.As(err, &fe) {
		fe = Wrap(ErrCodeInternal, err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n", fe.Message))
	if fe.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  Hint: %s\n", fe.Suggestion))
	}
	sb.WriteString(fmt.Sprintf("  Code: %s\n", fe.Code))

	return sb.String()
}

// LogAttrs formats an error for structured logging.
// Returns alternating key-value pairs suitable for slog.
func LogAttrs(err error) []any {
	if err == nil {
		return nil
	}

	var fe *FidoError
	if !stderrors.As(err, &fe) {
		return []any{"error", err.Error()}
	}

	attrs := []any{
		"error_code", fe.Code,
		"message", fe.Message,
		"category", string(fe.Category),
		"severity", string(fe.Severity),
	}
	if fe.Cause != nil {
		attrs = append(attrs, "cause", fe.Cause.Error())
	}
	for k, v := range fe.Details {
		attrs = append(attrs, "detail_"+k, v)
	}
	return attrs
}
