// Package index precomputes the per-contact data the keypad filter matches
// against. An index is built once per contact-list load and never updated in
// place; a reload builds a new one.
package index

import (
	"github.com/Aman-CERP/fido/internal/contact"
	"github.com/Aman-CERP/fido/internal/phonetic"
	"github.com/Aman-CERP/fido/internal/t9"
)

// Entry is the derived search data for one contact.
type Entry struct {
	// Phonetic is ToPhonetic(given) + ToPhonetic(family).
	Phonetic string `json:"phonetic"`

	// T9 is the keypad encoding of Phonetic.
	T9 string `json:"t9"`

	// NormalizedNumbers holds the digits of each phone number, in contact order.
	NormalizedNumbers []string `json:"normalized_numbers,omitempty"`
}

// Index maps contact IDs to their entries.
type Index map[contact.ID]Entry

// NewEntry derives the entry for a single contact.
func NewEntry(c contact.Contact) Entry {
	p := phonetic.ToPhonetic(c.GivenName) + phonetic.ToPhonetic(c.FamilyName)

	var numbers []string
	if len(c.PhoneNumbers) > 0 {
		numbers = make([]string, len(c.PhoneNumbers))
		for i, n := range c.PhoneNumbers {
			numbers[i] = phonetic.NormalizeDigits(n.Value)
		}
	}

	return Entry{
		Phonetic:          p,
		T9:                t9.Encode(p),
		NormalizedNumbers: numbers,
	}
}

// Build computes the entry for every contact. A later contact with a
// repeated ID replaces the earlier one.
func Build(contacts []contact.Contact) Index {
	idx := make(Index, len(contacts))
	for _, c := range contacts {
		idx[c.ID] = NewEntry(c)
	}
	return idx
}
