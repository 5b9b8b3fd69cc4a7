package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/fido/internal/errors"
)

func TestSearchCmd_TextOutput(t *testing.T) {
	// Given: Kate Bell in the contacts
	isolate(t)

	// When: searching her name on the keypad
	out, err := run(t, "search", "5283")

	// Then: she is listed with the rule that matched
	require.NoError(t, err)
	assert.Contains(t, out, "Kate Bell [name]")
	assert.NotContains(t, out, "John")
}

func TestSearchCmd_ArgsAreJoined(t *testing.T) {
	isolate(t)

	out, err := run(t, "search", "555", "55")

	require.NoError(t, err)
	assert.Contains(t, out, "John Appleseed [number]")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	isolate(t)

	out, err := run(t, "search", "52", "--format", "json")

	require.NoError(t, err)
	var results []struct {
		Contact struct {
			ID string `json:"id"`
		} `json:"contact"`
		Match string `json:"match"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "karl", results[0].Contact.ID)
	assert.Equal(t, "kate", results[1].Contact.ID)
	assert.Equal(t, "name", results[0].Match)
}

func TestSearchCmd_Limit(t *testing.T) {
	isolate(t)

	out, err := run(t, "search", "52", "--format", "json", "--limit", "1")

	require.NoError(t, err)
	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Len(t, results, 1)
}

func TestSearchCmd_NoMatches(t *testing.T) {
	isolate(t)

	out, err := run(t, "search", "9999999")

	require.NoError(t, err)
	assert.Contains(t, out, `No contacts match "9999999"`)

	out, err = run(t, "search", "9999999", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestSearchCmd_RejectsLetters(t *testing.T) {
	isolate(t)

	_, err := run(t, "search", "kate")

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidQuery, errors.GetCode(err))
}

func TestSearchCmd_RequiresArgument(t *testing.T) {
	isolate(t)

	_, err := run(t, "search")

	require.Error(t, err)
}
