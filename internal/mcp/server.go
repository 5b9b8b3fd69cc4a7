package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aman-CERP/fido/internal/contact"
	fidoerrors "github.com/Aman-CERP/fido/internal/errors"
	"github.com/Aman-CERP/fido/internal/index"
	"github.com/Aman-CERP/fido/internal/phone"
	"github.com/Aman-CERP/fido/internal/phonetic"
	"github.com/Aman-CERP/fido/internal/search"
	"github.com/Aman-CERP/fido/internal/telephony"
	"github.com/Aman-CERP/fido/pkg/version"
)

// DefaultMaxResults caps search and list output when Options leaves it unset.
const DefaultMaxResults = 50

// Server is the MCP server for Fido.
// Tool calls may run concurrently; each reads whichever snapshot is current
// when it starts.
type Server struct {
	mcp        *mcp.Server
	snapshot   atomic.Pointer[index.Snapshot]
	caller     telephony.Caller
	region     string
	maxResults int
	logger     *slog.Logger
}

// Options configures a Server.
type Options struct {
	// Caller places calls for the dial tool. Required.
	Caller telephony.Caller
	// Region is the default region for number display.
	Region string
	// MaxResults caps search and list output.
	MaxResults int
	Logger     *slog.Logger
}

// ToolInfo contains information about a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

var tools = []ToolInfo{
	{
		Name:        "search_contacts",
		Description: "Find contacts the way a phone dialer does: pass the keypad digits of a name (5283 for Kate) or any part of a phone number. Returns matching contacts with their numbers and which rule matched.",
	},
	{
		Name:        "list_contacts",
		Description: "List loaded contacts in display order with their formatted phone numbers.",
	},
	{
		Name:        "dial",
		Description: "Place a call. Pass a number, or a contact_id from search_contacts and the 1-based position of one of its numbers.",
	},
}

// NewServer creates a new MCP server serving snap.
func NewServer(snap *index.Snapshot, opts Options) (*Server, error) {
	if opts.Caller == nil {
		return nil, errors.New("caller is required")
	}
	if snap == nil {
		snap = index.Empty()
	}
	if opts.Region == "" {
		opts.Region = phone.DefaultRegion
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Server{
		caller:     opts.Caller,
		region:     opts.Region,
		maxResults: opts.MaxResults,
		logger:     opts.Logger,
	}
	s.snapshot.Store(snap)

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "Fido",
			Version: version.Version,
		},
		nil,
	)
	s.registerTools()

	return s, nil
}

// SetSnapshot swaps in a new contact snapshot. In-flight calls keep the old one.
func (s *Server) SetSnapshot(snap *index.Snapshot) {
	if snap == nil {
		snap = index.Empty()
	}
	s.snapshot.Store(snap)
	s.logger.Info("snapshot_swapped", slog.Int("contacts", snap.Len()))
}

// Snapshot returns the current snapshot.
func (s *Server) Snapshot() *index.Snapshot {
	return s.snapshot.Load()
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Info returns the server name and version.
func (s *Server) Info() (name, ver string) {
	return "Fido", version.Version
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	return append([]ToolInfo(nil), tools...)
}

// CallTool invokes a tool by name with the given arguments.
// It is the same path the MCP handlers take, minus the transport.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case "search_contacts":
		var in SearchContactsInput
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return s.searchContacts(ctx, in)
	case "list_contacts":
		var in ListContactsInput
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return s.listContacts(ctx, in)
	case "dial":
		var in DialInput
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return s.dial(ctx, in)
	default:
		return nil, NewMethodNotFoundError(name)
	}
}

func decodeArgs(args map[string]any, into any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return NewInvalidParamsError(err.Error())
	}
	if err := json.Unmarshal(data, into); err != nil {
		return NewInvalidParamsError(err.Error())
	}
	return nil
}

func (s *Server) registerTools() {
	s.logger.Debug("Registering MCP tools")

	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[0].Name, Description: tools[0].Description}, s.mcpSearchHandler)
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[1].Name, Description: tools[1].Description}, s.mcpListHandler)
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[2].Name, Description: tools[2].Description}, s.mcpDialHandler)

	s.logger.Debug("MCP tools registered", slog.Int("count", len(tools)))
}

func (s *Server) mcpSearchHandler(ctx context.Context, _ *mcp.CallToolRequest, input SearchContactsInput) (
	*mcp.CallToolResult,
	SearchContactsOutput,
	error,
) {
	out, err := s.searchContacts(ctx, input)
	if err != nil {
		return nil, SearchContactsOutput{}, MapError(err)
	}
	return nil, *out, nil
}

func (s *Server) mcpListHandler(ctx context.Context, _ *mcp.CallToolRequest, input ListContactsInput) (
	*mcp.CallToolResult,
	ListContactsOutput,
	error,
) {
	out, err := s.listContacts(ctx, input)
	if err != nil {
		return nil, ListContactsOutput{}, MapError(err)
	}
	return nil, *out, nil
}

func (s *Server) mcpDialHandler(ctx context.Context, _ *mcp.CallToolRequest, input DialInput) (
	*mcp.CallToolResult,
	DialOutput,
	error,
) {
	out, err := s.dial(ctx, input)
	if err != nil {
		return nil, DialOutput{}, MapError(err)
	}
	return nil, *out, nil
}

func (s *Server) limit(requested int) int {
	if requested > 0 && requested < s.maxResults {
		return requested
	}
	return s.maxResults
}

func (s *Server) searchContacts(ctx context.Context, in SearchContactsInput) (*SearchContactsOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if in.Digits == "" {
		return nil, NewInvalidParamsError("digits parameter is required")
	}
	query, err := search.ParseQuery(in.Digits)
	if err != nil {
		return nil, err
	}

	snap := s.Snapshot()
	results := search.Explain(snap.Contacts(), snap.Index(), query, s.limit(in.Limit))

	out := &SearchContactsOutput{
		Query:   query,
		Total:   len(results),
		Results: make([]ContactOutput, 0, len(results)),
	}
	for _, r := range results {
		out.Results = append(out.Results, ToContactOutput(r.Contact, r.Match, s.region))
	}

	s.logger.Debug("search_contacts",
		slog.String("query", query),
		slog.Int("results", out.Total))
	return out, nil
}

func (s *Server) listContacts(ctx context.Context, in ListContactsInput) (*ListContactsOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := s.Snapshot()
	contacts := snap.Contacts()
	if n := s.limit(in.Limit); len(contacts) > n {
		contacts = contacts[:n]
	}

	out := &ListContactsOutput{
		Total:    snap.Len(),
		Contacts: make([]ContactOutput, 0, len(contacts)),
	}
	for _, c := range contacts {
		out.Contacts = append(out.Contacts, ToContactOutput(c, search.MatchAll, s.region))
	}
	return out, nil
}

func (s *Server) dial(ctx context.Context, in DialInput) (*DialOutput, error) {
	raw := in.Number
	if in.ContactID != "" {
		n, err := s.numberOf(contact.ID(in.ContactID), in.Position)
		if err != nil {
			return nil, err
		}
		raw = n.Value
	}
	if raw == "" {
		return nil, NewInvalidParamsError("number or contact_id is required")
	}

	digits := phonetic.DialDigits(raw)
	if digits == "" {
		return nil, fidoerrors.New(fidoerrors.ErrCodeEmptyNumber, "number has no digits to dial", nil).
			WithDetail("number", raw)
	}
	if err := s.caller.Call(ctx, digits); err != nil {
		return nil, err
	}

	s.logger.Info("dial", slog.String("digits", digits))
	return &DialOutput{Dialed: digits, URI: telephony.URI(digits)}, nil
}

func (s *Server) numberOf(id contact.ID, position int) (contact.PhoneNumber, error) {
	c, ok := s.Snapshot().Lookup(id)
	if !ok {
		return contact.PhoneNumber{}, &MCPError{
			Code:    ErrCodeContactNotFound,
			Message: fmt.Sprintf("Contact '%s' not found.", id),
		}
	}
	if position == 0 {
		position = 1
	}
	if position < 1 || position > len(c.PhoneNumbers) {
		return contact.PhoneNumber{}, NewInvalidParamsError(
			fmt.Sprintf("contact '%s' has %d phone numbers", id, len(c.PhoneNumbers)))
	}
	return c.PhoneNumbers[position-1], nil
}

// Serve starts the server with the specified transport.
func (s *Server) Serve(ctx context.Context, transport string) error {
	s.logger.Info("Starting MCP server", slog.String("transport", transport))

	switch transport {
	case "stdio":
		err := s.mcp.Run(ctx, &mcp.StdioTransport{})
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
			return err
		}
		s.logger.Info("MCP server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio)", transport)
	}
}
