package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/fido/internal/contact"
	"github.com/Aman-CERP/fido/internal/errors"
	"github.com/Aman-CERP/fido/internal/index"
)

func fixture() ([]contact.Contact, index.Index) {
	contacts := []contact.Contact{
		{ID: "anna", GivenName: "Anna", FamilyName: "Schmidt", PhoneNumbers: []contact.PhoneNumber{{Value: "+49 30 1234567"}}},
		{ID: "ben", GivenName: "Ben", FamilyName: "Okafor", PhoneNumbers: []contact.PhoneNumber{{Value: "5551234567"}}},
		{ID: "jose", GivenName: "José", FamilyName: "García"},
		{ID: "zhang", GivenName: "三", FamilyName: "张", PhoneNumbers: []contact.PhoneNumber{{Value: "010-8888-0000"}}},
	}
	return contacts, index.Build(contacts)
}

func ids(contacts []contact.Contact) []contact.ID {
	out := make([]contact.ID, len(contacts))
	for i, c := range contacts {
		out[i] = c.ID
	}
	return out
}

func TestFilter_EmptyQueryReturnsInput(t *testing.T) {
	contacts, idx := fixture()

	got := Filter(contacts, idx, "")

	require.Len(t, got, len(contacts))
	assert.Equal(t, contacts, got)
	assert.Same(t, &contacts[0], &got[0])
}

func TestFilter(t *testing.T) {
	contacts, idx := fixture()

	tests := []struct {
		name  string
		query string
		want  []contact.ID
	}{
		{"given name prefix", "2662", []contact.ID{"anna"}},
		{"family name only", "724643", []contact.ID{"anna"}},
		{"diacritics stripped", "5673", []contact.ID{"jose"}},
		{"pinyin", "94264", []contact.ID{"zhang"}},
		{"number substring", "1234", []contact.ID{"anna", "ben"}},
		{"number with formatting removed", "01088880000", []contact.ID{"zhang"}},
		{"no match", "00000000000000", []contact.ID{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(contacts, idx, tt.query)))
		})
	}
}

func TestFilter_FamilyNameMatchWithoutNumberMatch(t *testing.T) {
	// Given: a contact whose family-name T9 contains the query
	contacts := []contact.Contact{{ID: "1", GivenName: "Ben", FamilyName: "Okafor", PhoneNumbers: []contact.PhoneNumber{{Value: "999"}}}}
	idx := index.Build(contacts)

	// When: filtering by "Okafor" keys
	got := Filter(contacts, idx, "652367")

	// Then: the contact appears
	assert.Equal(t, []contact.ID{"1"}, ids(got))
}

func TestFilter_ResultIsSubsequence(t *testing.T) {
	contacts, idx := fixture()

	for _, q := range []string{"2", "4", "6", "1", "0", "26", "9"} {
		got := Filter(contacts, idx, q)

		// Every result appears in the input, in increasing input position
		pos := -1
		for _, c := range got {
			next := -1
			for i := pos + 1; i < len(contacts); i++ {
				if contacts[i].ID == c.ID {
					next = i
					break
				}
			}
			require.NotEqual(t, -1, next, "query %q: %s out of order", q, c.ID)
			pos = next
		}
	}
}

func TestFilter_ExcludesContactsMissingFromIndex(t *testing.T) {
	contacts, idx := fixture()
	delete(idx, "anna")

	got := Filter(contacts, idx, "2662")

	assert.Empty(t, got)
}

func TestMatch(t *testing.T) {
	entry := index.Entry{Phonetic: "Anna", T9: "2662", NormalizedNumbers: []string{"5551234567"}}

	assert.Equal(t, MatchAll, Match(entry, ""))
	assert.Equal(t, MatchName, Match(entry, "66"))
	assert.Equal(t, MatchNumber, Match(entry, "1234"))
	assert.Equal(t, MatchNone, Match(entry, "8"))
}

func TestMatch_PhoneticRecomputedWhenCacheStale(t *testing.T) {
	// Given: an entry whose cached T9 disagrees with its phonetic text
	entry := index.Entry{Phonetic: "Kate", T9: ""}

	// Then: the recomputed encoding still matches
	assert.Equal(t, MatchPhonetic, Match(entry, "5283"))
}

func TestExplain(t *testing.T) {
	contacts, idx := fixture()

	got := Explain(contacts, idx, "1234", 0)
	require.Len(t, got, 2)
	assert.Equal(t, MatchNumber, got[0].Match)
	assert.Equal(t, contact.ID("ben"), got[1].Contact.ID)

	limited := Explain(contacts, idx, "1234", 1)
	assert.Len(t, limited, 1)
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery("555-12 34")
	require.NoError(t, err)
	assert.Equal(t, "5551234", q)

	_, err = ParseQuery("anna")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidQuery, errors.GetCode(err))
}
