package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupFile_MissingIsNoop(t *testing.T) {
	path, err := BackupFile(filepath.Join(t.TempDir(), "config.yaml"))

	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestBackupFile_CopiesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o644))

	backup, err := BackupFile(path)
	require.NoError(t, err)

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(data))
}

func TestBackupFile_KeepsNewest(t *testing.T) {
	// Given: a clock that advances one second per backup
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tick := 0
	now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	t.Cleanup(func() { now = time.Now })

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	// When: backing up more than MaxBackups times
	var last string
	for i := 0; i < MaxBackups+2; i++ {
		b, err := BackupFile(path)
		require.NoError(t, err)
		last = b
	}

	// Then: only the newest MaxBackups remain, newest first
	backups, err := ListBackups(path)
	require.NoError(t, err)
	require.Len(t, backups, MaxBackups)
	assert.Equal(t, last, backups[0])
}
