package contact

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/fido/internal/errors"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "contacts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_ReplaceAndFetch(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	// Given: an imported list
	contacts := []Contact{
		{ID: "z", GivenName: "Zoe", PhoneNumbers: []PhoneNumber{{Label: "work", Value: "1"}, {Label: "home", Value: "2"}}},
		{ID: "a", GivenName: "Anna", FamilyName: "Schmidt"},
	}
	require.NoError(t, store.Replace(ctx, contacts))

	// When: fetching
	got, err := store.Fetch(ctx, DefaultFields)
	require.NoError(t, err)

	// Then: import order and number order are preserved
	assert.Equal(t, contacts, got)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSQLiteStore_ReplaceDiscardsPreviousList(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Replace(ctx, []Contact{{ID: "old", GivenName: "Old", PhoneNumbers: []PhoneNumber{{Value: "9"}}}}))
	require.NoError(t, store.Replace(ctx, []Contact{{GivenName: "New"}}))

	got, err := store.Fetch(ctx, DefaultFields)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].GivenName)
	assert.NotEmpty(t, got[0].ID)
	assert.Empty(t, got[0].PhoneNumbers)
}

func TestSQLiteStore_FetchWithoutNumbers(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.Replace(ctx, []Contact{{ID: "a", GivenName: "Anna", PhoneNumbers: []PhoneNumber{{Value: "1"}}}}))

	got, err := store.Fetch(ctx, FieldSet{FieldGivenName})
	require.NoError(t, err)

	assert.Equal(t, []Contact{{ID: "a", GivenName: "Anna"}}, got)
}

func TestSQLiteStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "contacts.db")

	store, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Replace(ctx, []Contact{{ID: "a", GivenName: "Anna"}}))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Fetch(ctx, DefaultFields)
	require.NoError(t, err)
	assert.Equal(t, []Contact{{ID: "a", GivenName: "Anna"}}, got)
}

func TestSQLiteStore_ReplaceWhileLocked(t *testing.T) {
	store := openTestStore(t)

	// Given: another writer holds the lock file
	other := flock.New(store.Path() + ".lock")
	locked, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer func() { _ = other.Unlock() }()

	// When: replacing
	err = store.Replace(context.Background(), []Contact{{ID: "a"}})

	// Then: the store refuses
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeStoreLocked, errors.GetCode(err))
}

func TestSQLiteStore_CloseIsIdempotent(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "c.db"))
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
