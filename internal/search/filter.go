// Package search filters a contact list by a typed keypad digit string.
package search

import (
	"strings"

	"github.com/Aman-CERP/fido/internal/contact"
	"github.com/Aman-CERP/fido/internal/index"
	"github.com/Aman-CERP/fido/internal/t9"
)

// MatchKind says which rule let a contact through the filter.
type MatchKind string

const (
	MatchNone     MatchKind = ""
	MatchAll      MatchKind = "all"
	MatchName     MatchKind = "name"
	MatchPhonetic MatchKind = "phonetic"
	MatchNumber   MatchKind = "number"
)

// Filter returns, in input order, the contacts whose entry matches query.
// An empty query returns contacts itself. Contacts missing from idx never
// match. There is no ranking.
func Filter(contacts []contact.Contact, idx index.Index, query string) []contact.Contact {
	if query == "" {
		return contacts
	}

	out := make([]contact.Contact, 0, len(contacts))
	for _, c := range contacts {
		entry, ok := idx[c.ID]
		if !ok {
			continue
		}
		if Match(entry, query) != MatchNone {
			out = append(out, c)
		}
	}
	return out
}

// Match reports the first rule entry satisfies for query: the cached T9
// encoding, the T9 encoding of the phonetic name computed afresh, or any
// normalized number. Every rule is a substring test.
func Match(entry index.Entry, query string) MatchKind {
	if query == "" {
		return MatchAll
	}
	if strings.Contains(entry.T9, query) {
		return MatchName
	}
	// Recomputed on every call rather than trusting entry.T9.
	if strings.Contains(t9.Encode(entry.Phonetic), query) {
		return MatchPhonetic
	}
	for _, n := range entry.NormalizedNumbers {
		if strings.Contains(n, query) {
			return MatchNumber
		}
	}
	return MatchNone
}

// Result is a filtered contact with the rule that matched it.
type Result struct {
	Contact contact.Contact `json:"contact"`
	Match   MatchKind       `json:"match"`
}

// Explain is Filter with the matching rule attached to each contact.
// limit <= 0 means no limit.
func Explain(contacts []contact.Contact, idx index.Index, query string, limit int) []Result {
	var out []Result
	for _, c := range contacts {
		if limit > 0 && len(out) >= limit {
			break
		}
		entry, ok := idx[c.ID]
		if !ok {
			continue
		}
		if kind := Match(entry, query); kind != MatchNone {
			out = append(out, Result{Contact: c, Match: kind})
		}
	}
	return out
}
