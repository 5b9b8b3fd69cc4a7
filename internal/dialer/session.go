// Package dialer holds the keypad session: the typed query, the loaded
// contact snapshot and the filtered result list, plus the actions a user
// takes on them.
package dialer

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/Aman-CERP/fido/internal/contact"
	"github.com/Aman-CERP/fido/internal/errors"
	"github.com/Aman-CERP/fido/internal/index"
	"github.com/Aman-CERP/fido/internal/phonetic"
	"github.com/Aman-CERP/fido/internal/search"
	"github.com/Aman-CERP/fido/internal/t9"
)

// Caller places a call to a digits-only number.
type Caller interface {
	Call(ctx context.Context, digits string) error
}

// DetailPresenter shows a contact's detail view.
type DetailPresenter interface {
	Present(c contact.Contact)
}

// RowHandler routes events from a visible result row back to the session.
// Row positions refer to the current result list.
type RowHandler interface {
	ContactAt(row int) (contact.Contact, bool)
	NameTapped(row int)
	NumberTapped(ctx context.Context, row, number int) error
}

// SessionConfig configures a Session.
type SessionConfig struct {
	// Caller places calls. Required for Call and number taps.
	Caller Caller

	// Presenter shows contact details. Optional.
	Presenter DetailPresenter

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Session is the keypad controller. It is not safe for concurrent use;
// one goroutine owns it and feeds it events.
type Session struct {
	snapshot  *index.Snapshot
	query     Query
	results   []contact.Contact
	caller    Caller
	presenter DetailPresenter
	logger    *slog.Logger
}

var _ RowHandler = (*Session)(nil)

// NewSession creates a session with no contacts loaded.
func NewSession(cfg SessionConfig) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		snapshot:  index.Empty(),
		caller:    cfg.Caller,
		presenter: cfg.Presenter,
		logger:    logger,
	}
	s.refresh()
	return s
}

// SetContacts replaces the contact list, rebuilding the index.
func (s *Session) SetContacts(contacts []contact.Contact) {
	s.SetSnapshot(index.NewSnapshot(contacts))
}

// SetSnapshot replaces the contact list with an already built snapshot.
func (s *Session) SetSnapshot(snap *index.Snapshot) {
	if snap == nil {
		snap = index.Empty()
	}
	s.snapshot = snap
	s.refresh()
}

// Snapshot returns the loaded snapshot.
func (s *Session) Snapshot() *index.Snapshot {
	return s.snapshot
}

// Load fetches contacts from p and installs them. On failure the error is
// logged, the previous list stays, and the error is returned.
func (s *Session) Load(ctx context.Context, p contact.Provider) error {
	contacts, err := p.Fetch(ctx, contact.DefaultFields)
	if err != nil {
		attrs := append([]any{slog.String("source", p.Name())}, errors.LogAttrs(err)...)
		s.logger.Warn("contacts_fetch_failed", attrs...)
		return err
	}
	s.SetContacts(contacts)
	s.logger.Debug("contacts_loaded",
		slog.String("source", p.Name()),
		slog.Int("count", len(contacts)))
	return nil
}

// Press handles one keypad key. Digits append, delete removes the last
// digit, call dials the query, and the rest are ignored. Results are
// recomputed after every key.
func (s *Session) Press(ctx context.Context, key t9.Key) error {
	var err error
	switch key.Kind {
	case t9.KindDigit:
		if d, ok := key.Digit(); ok {
			s.query.Append(d)
		}
	case t9.KindDelete:
		s.query.DeleteLast()
	case t9.KindCall:
		if digits := phonetic.DialDigits(s.query.String()); digits != "" {
			err = s.dial(ctx, digits)
		}
	}
	s.refresh()
	return err
}

// Query returns the typed digits.
func (s *Session) Query() string {
	return s.query.String()
}

// State returns the query state.
func (s *Session) State() State {
	return s.query.State()
}

// Results returns the contacts matching the query, in display order.
// Callers must not modify the slice.
func (s *Session) Results() []contact.Contact {
	return s.results
}

// DeleteVisible reports whether the delete key is shown.
func (s *Session) DeleteVisible() bool {
	return s.query.State() == StateNonEmpty
}

// ContactAt returns the result at row, or false when row is out of range.
func (s *Session) ContactAt(row int) (contact.Contact, bool) {
	if row < 0 || row >= len(s.results) {
		return contact.Contact{}, false
	}
	return s.results[row], true
}

// OpenContact presents the detail view for the result at row.
func (s *Session) OpenContact(row int) bool {
	c, ok := s.ContactAt(row)
	if !ok {
		return false
	}
	if s.presenter != nil {
		s.presenter.Present(c)
	}
	return true
}

// NameTapped implements RowHandler.
func (s *Session) NameTapped(row int) {
	s.OpenContact(row)
}

// NumberTapped implements RowHandler. It calls the number-th phone number
// of the result at row.
func (s *Session) NumberTapped(ctx context.Context, row, number int) error {
	c, ok := s.ContactAt(row)
	if !ok || number < 0 || number >= len(c.PhoneNumbers) {
		return errors.ValidationError("no such phone number", nil).
			WithDetail("row", strconv.Itoa(row)).
			WithDetail("number", strconv.Itoa(number))
	}
	return s.CallNumber(ctx, c, c.PhoneNumbers[number].Value)
}

// CallNumber dials raw after stripping everything but digits.
func (s *Session) CallNumber(ctx context.Context, c contact.Contact, raw string) error {
	digits := phonetic.DialDigits(raw)
	if digits == "" {
		return errors.New(errors.ErrCodeEmptyNumber, "phone number has no digits", nil).
			WithDetail("contact", string(c.ID))
	}
	return s.dial(ctx, digits)
}

func (s *Session) dial(ctx context.Context, digits string) error {
	if s.caller == nil {
		return errors.InternalError("no caller configured", nil)
	}
	if err := s.caller.Call(ctx, digits); err != nil {
		s.logger.Warn("call_failed", errors.LogAttrs(err)...)
		return err
	}
	return nil
}

func (s *Session) refresh() {
	s.results = search.Filter(s.snapshot.Contacts(), s.snapshot.Index(), s.query.String())
}
