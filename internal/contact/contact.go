// Package contact defines the contact record the dialer searches over and the
// providers that load contacts from on-disk sources.
package contact

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ID is a stable, provider-issued contact identifier.
type ID string

// PhoneNumber is one labeled number as stored by the source.
type PhoneNumber struct {
	// Label is the source's label token ("cell", "_$!<Home>!$_"). May be empty.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	// Value is the number exactly as stored, formatting included.
	Value string `json:"number" yaml:"number"`
}

// Contact is a read-only contact record.
type Contact struct {
	ID           ID            `json:"id"`
	GivenName    string        `json:"given_name,omitempty"`
	FamilyName   string        `json:"family_name,omitempty"`
	PhoneNumbers []PhoneNumber `json:"phone_numbers,omitempty"`
}

// DisplayName is "Given Family" as shown in the list.
func (c Contact) DisplayName() string {
	return strings.TrimSpace(c.GivenName + " " + c.FamilyName)
}

// SortKey is the concatenated given and family name the list is ordered by.
func (c Contact) SortKey() string {
	return c.GivenName + c.FamilyName
}

// Field names a contact attribute a provider is asked to fill.
type Field string

const (
	FieldGivenName    Field = "given_name"
	FieldFamilyName   Field = "family_name"
	FieldPhoneNumbers Field = "phone_numbers"
)

// FieldSet is the set of fields requested from a provider.
type FieldSet []Field

// DefaultFields is everything the dialer needs.
var DefaultFields = FieldSet{FieldGivenName, FieldFamilyName, FieldPhoneNumbers}

// Has reports whether f was requested.
func (fs FieldSet) Has(f Field) bool {
	for _, x := range fs {
		if x == f {
			return true
		}
	}
	return false
}

// Project clears every field of c that fs does not request. ID is always kept.
func (fs FieldSet) Project(c Contact) Contact {
	out := Contact{ID: c.ID}
	if fs.Has(FieldGivenName) {
		out.GivenName = c.GivenName
	}
	if fs.Has(FieldFamilyName) {
		out.FamilyName = c.FamilyName
	}
	if fs.Has(FieldPhoneNumbers) && len(c.PhoneNumbers) > 0 {
		out.PhoneNumbers = append([]PhoneNumber(nil), c.PhoneNumbers...)
	}
	return out
}

// Provider yields the full set of contacts from one source.
type Provider interface {
	// Name identifies the source in logs.
	Name() string

	// Fetch returns every contact, filling only the requested fields.
	Fetch(ctx context.Context, fields FieldSet) ([]Contact, error)
}

// Sort orders contacts by SortKey, keeping the original order among equal keys.
func Sort(contacts []Contact) {
	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].SortKey() < contacts[j].SortKey()
	})
}

// idNamespace scopes derived IDs so they never collide with other SHA-1 UUIDs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/Aman-CERP/fido/contact"))

// DeriveID builds a deterministic ID for a contact whose source has none.
// The same source and contact content always produce the same ID.
func DeriveID(source string, c Contact) ID {
	var sb strings.Builder
	sb.WriteString(source)
	sb.WriteByte(0)
	sb.WriteString(c.GivenName)
	sb.WriteByte(0)
	sb.WriteString(c.FamilyName)
	for _, n := range c.PhoneNumbers {
		sb.WriteByte(0)
		sb.WriteString(n.Label)
		sb.WriteByte(':')
		sb.WriteString(n.Value)
	}
	return ID(uuid.NewSHA1(idNamespace, []byte(sb.String())).String())
}
