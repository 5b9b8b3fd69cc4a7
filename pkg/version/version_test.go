package version

import (
	"encoding/json"
	"regexp"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion_FollowsSemverOrDev(t *testing.T) {
	// Given: a build with or without ldflags
	if Version == "dev" {
		return
	}

	// Then: an injected version is semver
	semverRegex := regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.]+)?$`)
	require.True(t, semverRegex.MatchString(Version), "Version should follow semver format, got: %s", Version)
}

func TestString_IncludesAllBuildInfo(t *testing.T) {
	s := String()

	assert.Contains(t, s, "fido "+Version)
	assert.Contains(t, s, Commit)
	assert.Contains(t, s, GoVersion)
	assert.Equal(t, Version, Short())
}

func TestGetInfo_JSON(t *testing.T) {
	info := GetInfo()

	data, err := json.Marshal(info)
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, runtime.GOOS, decoded["os"])
	assert.Equal(t, runtime.GOARCH, decoded["arch"])
	assert.Equal(t, Version, decoded["version"])
}
