package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/fido/internal/contact"
	"github.com/Aman-CERP/fido/internal/dialer"
	"github.com/Aman-CERP/fido/internal/errors"
	"github.com/Aman-CERP/fido/internal/index"
)

type stubProvider struct {
	contacts []contact.Contact
	err      error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Fetch(context.Context, contact.FieldSet) ([]contact.Contact, error) {
	return p.contacts, p.err
}

type stubCaller struct {
	calls []string
}

func (c *stubCaller) Call(_ context.Context, digits string) error {
	c.calls = append(c.calls, digits)
	return nil
}

func testContacts() []contact.Contact {
	return []contact.Contact{
		{ID: "kate", GivenName: "Kate", FamilyName: "Bell", PhoneNumbers: []contact.PhoneNumber{
			{Label: "cell", Value: "+1 650 253 0000"},
			{Label: "home", Value: "+1 650 253 0001"},
		}},
		{ID: "anna", GivenName: "Anna", FamilyName: "Haro", PhoneNumbers: []contact.PhoneNumber{{Value: "555-522-8243"}}},
	}
}

func newLoadedModel(t *testing.T) (*Model, *stubCaller) {
	t.Helper()
	caller := &stubCaller{}
	m := NewModel(context.Background(), ModelConfig{
		Config:   NewConfig(nil, WithNoColor(true), WithRegion("US")),
		Provider: &stubProvider{contacts: testContacts()},
		Caller:   caller,
	})

	cmd := m.Init()
	require.NotNil(t, cmd)
	m.Update(cmd())
	return m, caller
}

func typeRunes(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func sendKey(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func TestModel_LoadsContactsOnInit(t *testing.T) {
	m, _ := newLoadedModel(t)

	assert.Len(t, m.Session().Results(), 2)
	view := m.View()
	assert.Contains(t, view, "Anna Haro")
	assert.Contains(t, view, "Kate Bell")
	assert.Contains(t, view, "+1 650-253-0000 (mobile)")
	assert.Contains(t, view, "Type digits to search")
}

func TestModel_LoadFailureKeepsEmptyList(t *testing.T) {
	m := NewModel(context.Background(), ModelConfig{
		Config:   NewConfig(nil, WithNoColor(true)),
		Provider: &stubProvider{err: errors.SourceError("denied", nil)},
	})

	m.Update(m.Init()())

	assert.Empty(t, m.Session().Results())
	assert.Contains(t, m.View(), "No contacts")
}

func TestModel_DigitsFilterAndDeleteRestores(t *testing.T) {
	m, _ := newLoadedModel(t)

	// When: typing K-A-T on the keypad
	typeRunes(m, "528")

	// Then: only Kate remains and the query is shown
	require.Len(t, m.Session().Results(), 1)
	assert.Equal(t, contact.ID("kate"), m.Session().Results()[0].ID)
	assert.Contains(t, m.View(), "528")

	// When: deleting all digits
	for i := 0; i < 3; i++ {
		sendKey(m, tea.KeyBackspace)
	}

	// Then: every contact is back
	assert.Equal(t, dialer.StateEmpty, m.Session().State())
	assert.Len(t, m.Session().Results(), 2)
}

func TestModel_EscInKeypadKeepsQuery(t *testing.T) {
	m, _ := newLoadedModel(t)
	typeRunes(m, "528")

	// When: pressing Esc with the keypad focused
	sendKey(m, tea.KeyEsc)

	// Then: the query and its results are unchanged
	assert.Equal(t, "528", m.Session().Query())
	assert.Len(t, m.Session().Results(), 1)
}

func TestModel_LettersAndSymbolsDoNotType(t *testing.T) {
	m, _ := newLoadedModel(t)

	typeRunes(m, "*#x")

	assert.Equal(t, "", m.Session().Query())
}

func TestModel_DeleteKeyHiddenWhenQueryEmpty(t *testing.T) {
	m, _ := newLoadedModel(t)
	assert.NotContains(t, m.View(), "⌫")

	typeRunes(m, "2")
	assert.Contains(t, m.View(), "⌫")
}

func TestModel_CallKeyDialsQuery(t *testing.T) {
	m, caller := newLoadedModel(t)

	typeRunes(m, "5550100")
	typeRunes(m, "c")

	assert.Equal(t, []string{"5550100"}, caller.calls)
	assert.Contains(t, m.View(), "Calling 5550100")
}

func TestModel_EnterWithoutSelectionCalls(t *testing.T) {
	m, caller := newLoadedModel(t)

	typeRunes(m, "911")
	sendKey(m, tea.KeyEnter)

	assert.Equal(t, []string{"911"}, caller.calls)
}

func TestModel_DetailPaneCallsNumber(t *testing.T) {
	m, caller := newLoadedModel(t)

	// Given: Kate is selected (row 1 after sorting)
	sendKey(m, tea.KeyDown)
	sendKey(m, tea.KeyDown)

	// When: opening the detail and pressing 2
	sendKey(m, tea.KeyEnter)
	require.Equal(t, focusDetail, m.focus)
	assert.Contains(t, m.View(), "2  +1 650-253-0001 (home)")
	typeRunes(m, "2")

	// Then: the second number is dialed as digits
	assert.Equal(t, []string{"16502530001"}, caller.calls)

	// And: esc returns to the keypad
	sendKey(m, tea.KeyEsc)
	assert.Equal(t, focusKeypad, m.focus)
}

func TestModel_DetailPaneInvalidNumber(t *testing.T) {
	m, caller := newLoadedModel(t)
	sendKey(m, tea.KeyDown)
	sendKey(m, tea.KeyEnter)

	typeRunes(m, "5")

	assert.Empty(t, caller.calls)
	assert.Contains(t, m.View(), "no such phone number")
}

func TestModel_TabTogglesCompactKeypad(t *testing.T) {
	m, _ := newLoadedModel(t)
	assert.Contains(t, m.View(), "ABC")

	sendKey(m, tea.KeyTab)

	assert.True(t, m.compact)
	assert.NotContains(t, m.View(), "ABC")
	assert.Contains(t, m.View(), "Call")
}

func TestModel_SnapshotMsgReplacesContacts(t *testing.T) {
	m, _ := newLoadedModel(t)
	sendKey(m, tea.KeyDown)
	sendKey(m, tea.KeyDown)
	sendKey(m, tea.KeyEnter)

	m.Update(SnapshotMsg{Snapshot: index.NewSnapshot([]contact.Contact{{ID: "z", GivenName: "Zed"}})})

	assert.Equal(t, focusKeypad, m.focus)
	assert.Len(t, m.Session().Results(), 1)
	assert.Equal(t, 0, m.cursor)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newLoadedModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_WindowSize(t *testing.T) {
	m, _ := newLoadedModel(t)

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})

	assert.Equal(t, 40, m.width)
	assert.NotEmpty(t, m.View())
}
