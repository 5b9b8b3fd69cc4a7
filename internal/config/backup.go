package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Aman-CERP/fido/internal/errors"
)

const (
	// MaxBackups is the maximum number of config backups to keep.
	MaxBackups = 3

	// BackupSuffix is the file extension for backup files.
	BackupSuffix = ".bak"
)

// now is replaced in tests so backups get distinct names.
var now = time.Now

// BackupFile copies path to a timestamped sibling before it is overwritten
// and prunes all but the newest MaxBackups copies.
// Returns "" and nil when path does not exist.
func BackupFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.New(errors.ErrCodeSourcePermission, "failed to read config for backup", err).
			WithDetail("path", path)
	}

	backupPath := fmt.Sprintf("%s%s.%s", path, BackupSuffix, now().Format("20060102-150405"))
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", errors.New(errors.ErrCodeSourcePermission, "failed to write backup", err).
			WithDetail("path", backupPath)
	}

	// Pruning is best-effort; the backup itself succeeded.
	_ = pruneBackups(path)

	return backupPath, nil
}

// ListBackups returns backups of path, newest first.
func ListBackups(path string) ([]string, error) {
	matches, err := filepath.Glob(path + BackupSuffix + ".*")
	if err != nil {
		return nil, err
	}
	// Timestamps sort lexically.
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))
	return matches, nil
}

func pruneBackups(path string) error {
	backups, err := ListBackups(path)
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i]); err != nil {
			return err
		}
	}
	return nil
}
