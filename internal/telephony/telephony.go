// Package telephony hands a digits-only phone number to the host so it can
// place the call. Nothing here checks that a call actually connected.
package telephony

import (
	"context"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/Aman-CERP/fido/internal/errors"
)

// Scheme is the URI scheme handed to the opener.
const Scheme = "tel://"

// Caller places calls.
type Caller interface {
	Call(ctx context.Context, digits string) error
}

// URI builds the tel URI for digits.
func URI(digits string) string {
	return Scheme + digits
}

func checkDigits(digits string) error {
	if digits == "" {
		return errors.New(errors.ErrCodeEmptyNumber, "cannot call an empty number", nil)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return errors.ValidationError("number must contain only digits", nil).
				WithDetail("number", digits)
		}
	}
	return nil
}

// DefaultCommand returns the URI opener for the running OS.
func DefaultCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "rundll32 url.dll,FileProtocolHandler"
	default:
		return "xdg-open"
	}
}

// CommandCaller runs an opener command with the tel URI as its last argument.
type CommandCaller struct {
	name   string
	args   []string
	logger *slog.Logger

	execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd
	lookPath    func(file string) (string, error)
}

// NewCommandCaller parses command ("xdg-open", "open -a FaceTime") into a
// caller. An empty command uses DefaultCommand.
func NewCommandCaller(command string) *CommandCaller {
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand()
	}
	fields := strings.Fields(command)
	return &CommandCaller{
		name:        fields[0],
		args:        fields[1:],
		logger:      slog.Default(),
		execCommand: exec.CommandContext,
		lookPath:    exec.LookPath,
	}
}

// WithLogger sets the logger call events go to. A nil logger is ignored.
func (c *CommandCaller) WithLogger(logger *slog.Logger) *CommandCaller {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Command returns the opener and its fixed arguments.
func (c *CommandCaller) Command() []string {
	return append([]string{c.name}, c.args...)
}

// Call implements Caller.
func (c *CommandCaller) Call(ctx context.Context, digits string) error {
	if err := checkDigits(digits); err != nil {
		return err
	}

	path, err := c.lookPath(c.name)
	if err != nil {
		return errors.New(errors.ErrCodeCallFailed, "call command not found", err).
			WithDetail("command", c.name).
			WithSuggestion("Set phone.call_command in your fido config or FIDO_CALL_COMMAND")
	}

	args := append(append([]string(nil), c.args...), URI(digits))
	cmd := c.execCommand(ctx, path, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.New(errors.ErrCodeCallFailed, "call command failed", err).
			WithDetail("command", c.name).
			WithDetail("output", strings.TrimSpace(string(out)))
	}

	c.logger.Info("call_placed", slog.String("uri", URI(digits)), slog.String("command", c.name))
	return nil
}

// LogCaller records calls without placing them.
// It is safe for concurrent use.
type LogCaller struct {
	logger *slog.Logger

	mu    sync.Mutex
	calls []string
}

// NewLogCaller creates a dry-run caller. A nil logger uses slog.Default().
func NewLogCaller(logger *slog.Logger) *LogCaller {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogCaller{logger: logger}
}

// Call implements Caller.
func (c *LogCaller) Call(_ context.Context, digits string) error {
	if err := checkDigits(digits); err != nil {
		return err
	}
	c.mu.Lock()
	c.calls = append(c.calls, URI(digits))
	c.mu.Unlock()
	c.logger.Info("call_dry_run", slog.String("uri", URI(digits)))
	return nil
}

// Calls returns the URIs "called" so far.
func (c *LogCaller) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}
