package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/fido/pkg/version"
)

func TestVersionCmd_DefaultOutput(t *testing.T) {
	// When: executing without flags
	out, err := run(t, "version")

	// Then: it should output version string
	require.NoError(t, err)
	assert.Contains(t, out, "fido", "Output should contain program name")
	assert.Contains(t, out, version.Version, "Output should contain version")
	assert.Contains(t, out, "commit", "Output should contain commit info")
}

func TestVersionCmd_ShortOutput(t *testing.T) {
	out, err := run(t, "version", "--short")

	require.NoError(t, err)
	assert.Equal(t, version.Version, strings.TrimSpace(out), "Short output should be just version")
}

func TestVersionCmd_JSONOutput(t *testing.T) {
	out, err := run(t, "version", "--json")

	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info), "Output should be valid JSON")

	assert.Equal(t, version.Version, info["version"])
	for _, field := range []string{"commit", "date", "go_version", "os", "arch"} {
		assert.Contains(t, info, field)
	}
}

func TestRootCmd_VersionFlag(t *testing.T) {
	out, err := run(t, "--version")

	require.NoError(t, err)
	assert.Equal(t, "fido version "+version.Version, strings.TrimSpace(out))
}
