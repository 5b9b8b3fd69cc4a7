package ui

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Aman-CERP/fido/internal/contact"
	"github.com/Aman-CERP/fido/internal/dialer"
	"github.com/Aman-CERP/fido/internal/errors"
	"github.com/Aman-CERP/fido/internal/index"
	"github.com/Aman-CERP/fido/internal/phone"
	"github.com/Aman-CERP/fido/internal/t9"
)

// ContactsLoadedMsg delivers a fetched contact list to the model.
type ContactsLoadedMsg struct {
	Contacts []contact.Contact
	Err      error
}

// SnapshotMsg replaces the model's contacts with a prebuilt snapshot, as
// sent by the source watcher after a reload.
type SnapshotMsg struct {
	Snapshot *index.Snapshot
}

type focus int

const (
	focusKeypad focus = iota
	focusDetail
)

// Model is the bubbletea model for the keypad dialer.
type Model struct {
	ctx      context.Context
	session  *dialer.Session
	provider contact.Provider
	region   string
	styles   Styles
	keys     keyMap
	help     help.Model
	logger   *slog.Logger

	compact   bool
	cursor    int // selected result row, -1 for none
	focus     focus
	detail    contact.Contact
	detailRow int
	loading   bool
	status    string
	statusErr bool
	width     int
	height    int
}

var _ dialer.DetailPresenter = (*Model)(nil)

// ModelConfig configures a Model.
type ModelConfig struct {
	Config
	Provider contact.Provider
	Caller   dialer.Caller
	Logger   *slog.Logger
}

// NewModel creates the keypad model. Contacts are fetched by Init.
func NewModel(ctx context.Context, cfg ModelConfig) *Model {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	region := cfg.Region
	if region == "" {
		region = phone.DefaultRegion
	}

	m := &Model{
		ctx:      ctx,
		provider: cfg.Provider,
		region:   region,
		styles:   GetStyles(cfg.NoColor || DetectNoColor()),
		keys:     defaultKeyMap(),
		help:     help.New(),
		logger:   logger,
		compact:  cfg.Compact,
		cursor:   -1,
		loading:  cfg.Provider != nil,
		width:    80,
		height:   24,
	}
	m.session = dialer.NewSession(dialer.SessionConfig{
		Caller:    cfg.Caller,
		Presenter: m,
		Logger:    logger,
	})
	return m
}

// Session exposes the underlying dialer session.
func (m *Model) Session() *dialer.Session {
	return m.session
}

// Present implements dialer.DetailPresenter.
func (m *Model) Present(c contact.Contact) {
	m.detail = c
	m.focus = focusDetail
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.provider == nil {
		return nil
	}
	return loadContacts(m.ctx, m.provider)
}

func loadContacts(ctx context.Context, p contact.Provider) tea.Cmd {
	return func() tea.Msg {
		contacts, err := p.Fetch(ctx, contact.DefaultFields)
		return ContactsLoadedMsg{Contacts: contacts, Err: err}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ContactsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			// Keep whatever list was there before.
			m.logger.Warn("contacts_fetch_failed", errors.LogAttrs(msg.Err)...)
			return m, nil
		}
		m.session.SetContacts(msg.Contacts)
		m.reset()
		return m, nil

	case SnapshotMsg:
		m.loading = false
		m.session.SetSnapshot(msg.Snapshot)
		m.reset()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.focus == focusDetail {
			m.updateDetail(msg)
		} else {
			m.updateKeypad(msg)
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) updateKeypad(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor >= 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.session.Results())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.cursor >= 0 {
			m.detailRow = m.cursor
			m.session.OpenContact(m.cursor)
			return
		}
		m.press(t9.KeyCall)
	case key.Matches(msg, m.keys.Call):
		m.press(t9.KeyCall)
	case key.Matches(msg, m.keys.Delete):
		m.press(t9.KeyDelete)
	case key.Matches(msg, m.keys.Compact):
		m.compact = !m.compact
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && isKeypadRune(msg.Runes[0]):
		if k, ok := t9.KeyFor(msg.Runes[0]); ok {
			m.press(k)
		}
	}
}

func isKeypadRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '*' || r == '#'
}

func (m *Model) updateDetail(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.focus = focusKeypad
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		r := msg.Runes[0]
		if r < '1' || r > '9' {
			return
		}
		n := int(r - '1')
		if err := m.session.NumberTapped(m.ctx, m.detailRow, n); err != nil {
			m.setError(err)
			return
		}
		m.setStatus("Calling " + phone.Display(m.detail.PhoneNumbers[n], m.region))
	}
}

func (m *Model) press(k t9.Key) {
	query := m.session.Query()
	if err := m.session.Press(m.ctx, k); err != nil {
		m.setError(err)
		return
	}
	if k.Kind == t9.KindCall && query != "" {
		m.setStatus("Calling " + query)
	} else {
		m.status = ""
	}
	m.clampCursor()
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}

// reset is called when the contact list is replaced; row positions held by
// the detail pane no longer apply.
func (m *Model) reset() {
	m.focus = focusKeypad
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if n := len(m.session.Results()); m.cursor >= n {
		m.cursor = n - 1
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.styles.Header.Render("Fido"))
	if m.focus == focusDetail {
		sections = append(sections, m.viewDetail())
	} else {
		sections = append(sections, m.viewList(), m.viewQuery(), m.viewKeypad())
	}

	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.Error
		}
		sections = append(sections, style.Render(m.status))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) viewList() string {
	results := m.session.Results()
	if m.loading {
		return m.styles.Hint.Render("Loading contacts...")
	}
	if len(results) == 0 {
		if m.session.Snapshot().Len() == 0 {
			return m.styles.Hint.Render("No contacts")
		}
		return m.styles.Hint.Render("No matches")
	}

	// Room left after header, query, keypad and help.
	keypadRows := len(t9.Rows(t9.Layout(m.compact)))
	limit := m.height - 4 - keypadRows*3
	if limit < 3 {
		limit = 3
	}

	start := 0
	if m.cursor >= limit {
		start = m.cursor - limit + 1
	}

	var b strings.Builder
	for row := start; row < len(results) && row < start+limit; row++ {
		c := results[row]
		nameStyle := m.styles.Name
		prefix := "  "
		if row == m.cursor {
			nameStyle = m.styles.Selected
			prefix = "> "
		}
		b.WriteString(prefix + nameStyle.Render(displayName(c)))
		if len(c.PhoneNumbers) > 0 {
			b.WriteString("  " + m.styles.Number.Render(phone.Display(c.PhoneNumbers[0], m.region)))
			if extra := len(c.PhoneNumbers) - 1; extra > 0 {
				b.WriteString(m.styles.Dim.Render(fmt.Sprintf(" +%d", extra)))
			}
		}
		b.WriteByte('\n')
	}
	if hidden := len(results) - start - limit; hidden > 0 {
		b.WriteString(m.styles.Dim.Render(fmt.Sprintf("  … %d more", hidden)))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) viewQuery() string {
	if m.session.State() == dialer.StateEmpty {
		return m.styles.Hint.Render("Type digits to search")
	}
	return m.styles.Query.Render(m.session.Query())
}

func (m *Model) viewKeypad() string {
	var rows []string
	for _, row := range t9.Rows(t9.Layout(m.compact)) {
		cells := make([]string, 0, len(row))
		for _, k := range row {
			cells = append(cells, m.viewKey(k))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) viewKey(k t9.Key) string {
	hidden := k.Kind == t9.KindBlank || (k.Kind == t9.KindDelete && !m.session.DeleteVisible())
	if hidden {
		return m.styles.Key.Border(lipgloss.HiddenBorder()).Render("")
	}

	switch k.Kind {
	case t9.KindCall:
		return m.styles.CallKey.Render("☎ Call")
	default:
		label := k.Label
		if k.Letters != "" {
			label += " " + m.styles.KeyLetters.Render(strings.ToUpper(k.Letters))
		}
		return m.styles.Key.Render(label)
	}
}

func (m *Model) viewDetail() string {
	var b strings.Builder
	b.WriteString(m.styles.Name.Bold(true).Render(displayName(m.detail)))
	b.WriteByte('\n')
	if len(m.detail.PhoneNumbers) == 0 {
		b.WriteString(m.styles.Hint.Render("No phone numbers"))
	}
	for i, n := range m.detail.PhoneNumbers {
		if i > 0 {
			b.WriteByte('\n')
		}
		num := m.styles.Number.Render(phone.Display(n, m.region))
		if i < 9 {
			fmt.Fprintf(&b, "%d  %s", i+1, num)
		} else {
			b.WriteString("   " + num)
		}
	}
	b.WriteString("\n\n" + m.styles.Hint.Render("1-9 call · esc back"))
	return m.styles.Panel.Render(b.String())
}

// Run starts the keypad program on the terminal and blocks until it exits.
// onStart receives the program before it runs, so callers can push
// SnapshotMsg updates from other goroutines.
func Run(ctx context.Context, m *Model, onStart func(p *tea.Program)) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if onStart != nil {
		onStart(p)
	}
	if _, err := p.Run(); err != nil && !stderrors.Is(err, tea.ErrProgramKilled) {
		return errors.InternalError("keypad UI failed", err)
	}
	return nil
}
