package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/fido/internal/contact"
)

func TestContactsCmd_Text(t *testing.T) {
	isolate(t)

	out, err := run(t, "contacts")

	require.NoError(t, err)
	assert.Contains(t, out, "Kate Bell")
	assert.Contains(t, out, "+1 650-253-0000 (home)")
}

func TestContactsCmd_JSON(t *testing.T) {
	isolate(t)

	out, err := run(t, "contacts", "--format", "json")

	require.NoError(t, err)
	var contacts []contact.Contact
	require.NoError(t, json.Unmarshal([]byte(out), &contacts))
	require.Len(t, contacts, 3)
	assert.Equal(t, contact.ID("john"), contacts[0].ID)
}

func TestContactsCmd_Count(t *testing.T) {
	isolate(t)

	out, err := run(t, "contacts", "--format", "count")

	require.NoError(t, err)
	assert.Equal(t, "3", strings.TrimSpace(out))
}

func TestContactsCmd_MissingSource(t *testing.T) {
	isolate(t)
	t.Setenv("FIDO_CONTACTS", "/nonexistent/contacts.vcf")

	_, err := run(t, "contacts")

	require.Error(t, err)
}
