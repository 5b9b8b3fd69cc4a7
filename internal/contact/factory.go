package contact

import (
	"path/filepath"
	"strings"

	"github.com/Aman-CERP/fido/internal/errors"
)

// Source kinds accepted by NewProvider.
const (
	KindVCard  = "vcard"
	KindYAML   = "yaml"
	KindSQLite = "sqlite"
)

// NewProvider creates the provider for kind reading path. An empty kind is
// inferred from the file extension. Providers that hold resources implement
// io.Closer.
func NewProvider(kind, path string) (Provider, error) {
	if kind == "" {
		kind = KindFromPath(path)
	}

	switch strings.ToLower(kind) {
	case KindVCard:
		return NewVCardProvider(path), nil
	case KindYAML:
		return NewYAMLProvider(path), nil
	case KindSQLite:
		store, err := OpenSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, errors.New(errors.ErrCodeUnknownProvider, "unknown contact source type", nil).
			WithDetail("type", kind).
			WithDetail("path", path).
			WithSuggestion("Use one of: vcard, yaml, sqlite")
	}
}

// KindFromPath guesses the source kind from the file extension.
func KindFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vcf", ".vcard":
		return KindVCard
	case ".yaml", ".yml":
		return KindYAML
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite
	default:
		return ""
	}
}
