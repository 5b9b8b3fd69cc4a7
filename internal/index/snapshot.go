package index

import (
	"time"

	"github.com/Aman-CERP/fido/internal/contact"
)

// Snapshot is an immutable, display-ordered contact list together with its
// index. Readers may share a Snapshot across goroutines; replacing the
// contact list means building a new Snapshot.
type Snapshot struct {
	contacts []contact.Contact
	index    Index
	builtAt  time.Time
}

// NewSnapshot sorts a copy of contacts by given+family name and indexes it.
func NewSnapshot(contacts []contact.Contact) *Snapshot {
	sorted := append([]contact.Contact(nil), contacts...)
	contact.Sort(sorted)

	return &Snapshot{
		contacts: sorted,
		index:    Build(sorted),
		builtAt:  time.Now(),
	}
}

// Empty returns a snapshot with no contacts.
func Empty() *Snapshot {
	return &Snapshot{index: Index{}, builtAt: time.Now()}
}

// Contacts returns the ordered list. Callers must not modify it.
func (s *Snapshot) Contacts() []contact.Contact {
	return s.contacts
}

// Index returns the entries by contact ID. Callers must not modify it.
func (s *Snapshot) Index() Index {
	return s.index
}

// Len returns the number of contacts.
func (s *Snapshot) Len() int {
	return len(s.contacts)
}

// Lookup returns the contact with id.
func (s *Snapshot) Lookup(id contact.ID) (contact.Contact, bool) {
	for _, c := range s.contacts {
		if c.ID == id {
			return c, true
		}
	}
	return contact.Contact{}, false
}

// BuiltAt returns when the snapshot was built.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}
