package contact

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite" // pure Go driver registered as "sqlite"

	"github.com/Aman-CERP/fido/internal/errors"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS contacts (
	id          TEXT PRIMARY KEY,
	given_name  TEXT NOT NULL DEFAULT '',
	family_name TEXT NOT NULL DEFAULT '',
	position    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS phone_numbers (
	contact_id TEXT NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	label      TEXT NOT NULL DEFAULT '',
	number     TEXT NOT NULL,
	PRIMARY KEY (contact_id, position)
);
`

// SQLiteStore keeps an imported contact list in a SQLite database.
// Writers are serialized across processes with a lock file next to the
// database.
type SQLiteStore struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
	lock *flock.Flock
}

// OpenSQLiteStore opens (creating if needed) the store at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, openError(path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.New(errors.ErrCodeSourceCorrupt, "failed to open contact store", err).
			WithDetail("path", path)
	}

	// Single writer; the connection carries the pragmas below.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, errors.New(errors.ErrCodeSourceCorrupt, "failed to configure contact store", err).
				WithDetail("path", path).
				WithDetail("pragma", pragma)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.New(errors.ErrCodeSourceCorrupt, "failed to initialize contact store schema", err).
			WithDetail("path", path)
	}

	return &SQLiteStore{
		db:   db,
		path: path,
		lock: flock.New(path + ".lock"),
	}, nil
}

// Name implements Provider.
func (s *SQLiteStore) Name() string {
	return "sqlite:" + s.path
}

// Fetch implements Provider. Contacts come back in import order.
func (s *SQLiteStore) Fetch(ctx context.Context, fields FieldSet) ([]Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, given_name, family_name FROM contacts ORDER BY position`)
	if err != nil {
		return nil, s.queryError(err)
	}

	var contacts []Contact
	byID := make(map[ID]int)
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.GivenName, &c.FamilyName); err != nil {
			_ = rows.Close()
			return nil, s.queryError(err)
		}
		byID[c.ID] = len(contacts)
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, s.queryError(err)
	}
	_ = rows.Close()

	if fields.Has(FieldPhoneNumbers) {
		rows, err := s.db.QueryContext(ctx,
			`SELECT contact_id, label, number FROM phone_numbers ORDER BY contact_id, position`)
		if err != nil {
			return nil, s.queryError(err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				id ID
				n  PhoneNumber
			)
			if err := rows.Scan(&id, &n.Label, &n.Value); err != nil {
				return nil, s.queryError(err)
			}
			if i, ok := byID[id]; ok {
				contacts[i].PhoneNumbers = append(contacts[i].PhoneNumbers, n)
			}
		}
		if err := rows.Err(); err != nil {
			return nil, s.queryError(err)
		}
	}

	for i := range contacts {
		contacts[i] = fields.Project(contacts[i])
	}
	return contacts, nil
}

// Replace swaps the stored list for contacts in a single transaction.
// Contacts without an ID get a derived one. Returns ErrCodeStoreLocked when
// another process holds the store's lock.
func (s *SQLiteStore) Replace(ctx context.Context, contacts []Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	locked, err := s.lock.TryLock()
	if err != nil {
		return errors.New(errors.ErrCodeStoreLocked, "failed to acquire contact store lock", err).
			WithDetail("lock", s.lock.Path())
	}
	if !locked {
		return errors.New(errors.ErrCodeStoreLocked, "contact store is being written by another process", nil).
			WithDetail("lock", s.lock.Path()).
			WithSuggestion("Wait for the other import to finish and retry")
	}
	defer func() { _ = s.lock.Unlock() }()

	list := append([]Contact(nil), contacts...)
	assignIDs(s.path, list)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.queryError(err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM phone_numbers`); err != nil {
		return s.queryError(err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM contacts`); err != nil {
		return s.queryError(err)
	}

	insContact, err := tx.PrepareContext(ctx,
		`INSERT INTO contacts (id, given_name, family_name, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return s.queryError(err)
	}
	defer insContact.Close()

	insNumber, err := tx.PrepareContext(ctx,
		`INSERT INTO phone_numbers (contact_id, position, label, number) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return s.queryError(err)
	}
	defer insNumber.Close()

	for pos, c := range list {
		if _, err := insContact.ExecContext(ctx, string(c.ID), c.GivenName, c.FamilyName, pos); err != nil {
			return s.queryError(fmt.Errorf("insert contact %s: %w", c.ID, err))
		}
		for npos, n := range c.PhoneNumbers {
			if _, err := insNumber.ExecContext(ctx, string(c.ID), npos, n.Label, n.Value); err != nil {
				return s.queryError(fmt.Errorf("insert number for %s: %w", c.ID, err))
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return s.queryError(err)
	}
	return nil
}

// Count returns the number of stored contacts.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n); err != nil {
		return 0, s.queryError(err)
	}
	return n, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) queryError(err error) error {
	return errors.New(errors.ErrCodeSourceCorrupt, "contact store query failed", err).
		WithDetail("path", s.path)
}
