// Package logging provides opt-in file logging with rotation for Fido.
// With --debug, structured JSON logs are written to ~/.fido/logs/fido.log.
//
// Without --debug, only warnings and errors reach stderr. The MCP server
// logs to file only, since stdout carries JSON-RPC.
package logging
