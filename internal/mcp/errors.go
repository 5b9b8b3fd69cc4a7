// Package mcp implements the Model Context Protocol (MCP) server for Fido.
package mcp

import (
	"context"
	"errors"
	"fmt"

	fidoerrors "github.com/Aman-CERP/fido/internal/errors"
)

// Custom MCP error codes for Fido.
const (
	// ErrCodeSourceUnavailable indicates a contact source could not be read.
	ErrCodeSourceUnavailable = -32001

	// ErrCodeCallFailed indicates the host refused to place a call.
	ErrCodeCallFailed = -32002

	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout = -32003

	// ErrCodeContactNotFound indicates the requested contact is not loaded.
	ErrCodeContactNotFound = -32004

	// Standard JSON-RPC error codes.
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
)

// Sentinel errors for internal use.
var (
	// ErrToolNotFound indicates the requested tool does not exist.
	ErrToolNotFound = errors.New("tool not found")

	// ErrContactNotFound indicates the requested contact is not loaded.
	ErrContactNotFound = errors.New("contact not found")
)

// MCPError represents an MCP protocol error with code and message.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// MapError converts internal errors to MCP errors.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	var mcpErr *MCPError
	if errors.As(err, &mcpErr) {
		return mcpErr
	}

	var fe *fidoerrors.FidoError
	if errors.As(err, &fe) {
		return mapFidoError(fe)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request timed out."}
	case errors.Is(err, context.Canceled):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request was canceled."}
	case errors.Is(err, ErrToolNotFound):
		return &MCPError{Code: ErrCodeMethodNotFound, Message: "Tool not found."}
	case errors.Is(err, ErrContactNotFound):
		return &MCPError{Code: ErrCodeContactNotFound, Message: "Contact not found."}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: "Internal server error."}
	}
}

// NewInvalidParamsError creates an error for invalid parameters with a custom message.
func NewInvalidParamsError(msg string) *MCPError {
	return &MCPError{Code: ErrCodeInvalidParams, Message: msg}
}

// NewMethodNotFoundError creates an error for unknown tools.
func NewMethodNotFoundError(name string) *MCPError {
	return &MCPError{
		Code:    ErrCodeMethodNotFound,
		Message: fmt.Sprintf("Tool '%s' not found.", name),
	}
}

func mapFidoError(fe *fidoerrors.FidoError) *MCPError {
	message := fe.Message
	if fe.Suggestion != "" {
		message = fmt.Sprintf("%s %s", fe.Message, fe.Suggestion)
	}

	switch fe.Category {
	case fidoerrors.CategoryValidation:
		return &MCPError{Code: ErrCodeInvalidParams, Message: message}
	case fidoerrors.CategoryIO, fidoerrors.CategoryProvider:
		return &MCPError{Code: ErrCodeSourceUnavailable, Message: message}
	}

	if fe.Code == fidoerrors.ErrCodeCallFailed {
		return &MCPError{Code: ErrCodeCallFailed, Message: message}
	}
	return &MCPError{Code: ErrCodeInternalError, Message: message}
}
