package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestUserConfigTemplate_IsValidYAML(t *testing.T) {
	require.NotEmpty(t, UserConfigTemplate)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(UserConfigTemplate), &parsed))

	for _, section := range []string{"phone", "search", "ui", "server", "watch"} {
		assert.Contains(t, parsed, section)
	}
	assert.NotContains(t, parsed, "contacts", "sources stay commented so the default store applies")
}
