package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Aman-CERP/fido/internal/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSourceWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	w, err := New([]string{path}, Options{Debounce: 30 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan []FileEvent, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = w.Run(ctx, func(_ context.Context, events []FileEvent) {
			select {
			case got <- events:
			default:
			}
		})
	}()

	// When: the source is rewritten and an unrelated file changes
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))

	// Then: one batch for the source arrives
	select {
	case events := <-got:
		require.NotEmpty(t, events)
		for _, e := range events {
			assert.Equal(t, path, e.Path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for reload")
	}

	cancel()
	wg.Wait()
}

func TestSourceWatcher_StopEndsRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.yaml")

	w, err := New([]string{path}, Options{})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- w.Run(context.Background(), func(context.Context, []FileEvent) {})
	}()

	w.Stop()
	w.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestSourceWatcher_StopWithoutRun(t *testing.T) {
	w, err := New([]string{filepath.Join(t.TempDir(), "c.vcf")}, Options{})
	require.NoError(t, err)

	w.Stop()
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "nope", "c.vcf")}, Options{})

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSourceNotFound, errors.GetCode(err))
}
