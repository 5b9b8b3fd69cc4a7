package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/fido/internal/contact"
)

// isolate points config, home and contact sources at a temp dir and returns
// the YAML contacts file in use.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("FIDO_REGION", "")
	t.Setenv("FIDO_CALL_COMMAND", "")
	t.Setenv("FIDO_LOG_LEVEL", "")
	t.Setenv("FIDO_DRY_RUN", "true")

	path := filepath.Join(dir, "contacts.yaml")
	require.NoError(t, contact.WriteYAML(path, []contact.Contact{
		{ID: "kate", GivenName: "Kate", FamilyName: "Bell", PhoneNumbers: []contact.PhoneNumber{
			{Label: "mobile", Value: "(555) 564-8583"},
			{Label: "_$!<Home>!$_", Value: "+1 650-253-0000"},
		}},
		{ID: "john", GivenName: "John", FamilyName: "Appleseed", PhoneNumbers: []contact.PhoneNumber{
			{Label: "home", Value: "888-555-5512"},
		}},
		{ID: "karl", GivenName: "Karl", FamilyName: "Bauer", PhoneNumbers: []contact.PhoneNumber{
			{Label: "work", Value: "555-0199"},
		}},
	}))
	t.Setenv("FIDO_CONTACTS", path)
	return path
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
