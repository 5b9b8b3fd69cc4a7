package contact

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"strings"

	"github.com/emersion/go-vcard"

	"github.com/Aman-CERP/fido/internal/errors"
)

// VCardProvider reads contacts from a .vcf file holding one or more cards.
type VCardProvider struct {
	path string
}

// NewVCardProvider creates a provider for the vCard file at path.
func NewVCardProvider(path string) *VCardProvider {
	return &VCardProvider{path: path}
}

// Name implements Provider.
func (p *VCardProvider) Name() string {
	return "vcard:" + p.path
}

// Fetch implements Provider. Names come from N, falling back to FN as the
// given name; numbers come from TEL with the first non-generic TYPE as label.
func (p *VCardProvider) Fetch(ctx context.Context, fields FieldSet) ([]Contact, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, openError(p.path, err)
	}
	defer f.Close()

	contacts, err := DecodeVCards(ctx, f)
	if err != nil {
		return nil, errors.New(errors.ErrCodeSourceCorrupt, "failed to parse vCard file", err).
			WithDetail("path", p.path)
	}

	assignIDs(p.path, contacts)
	for i := range contacts {
		contacts[i] = fields.Project(contacts[i])
	}
	return contacts, nil
}

// DecodeVCards decodes every card in r. Cards have the UID as ID when present.
func DecodeVCards(ctx context.Context, r io.Reader) ([]Contact, error) {
	dec := vcard.NewDecoder(r)

	var contacts []Contact
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := dec.Decode()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, cardToContact(card))
	}
	return contacts, nil
}

func cardToContact(card vcard.Card) Contact {
	c := Contact{ID: ID(card.Value(vcard.FieldUID))}

	if n := card.Name(); n != nil && (n.GivenName != "" || n.FamilyName != "") {
		c.GivenName = n.GivenName
		c.FamilyName = n.FamilyName
	} else {
		c.GivenName = card.PreferredValue(vcard.FieldFormattedName)
	}

	for _, field := range card[vcard.FieldTelephone] {
		value := strings.TrimPrefix(field.Value, "tel:")
		if value == "" {
			continue
		}
		c.PhoneNumbers = append(c.PhoneNumbers, PhoneNumber{
			Label: labelFromTypes(field.Params[vcard.ParamType]),
			Value: value,
		})
	}
	return c
}

// labelFromTypes picks the first TYPE that says where the number rings.
// "voice" and "pref" describe every number, so they never become the label.
func labelFromTypes(types []string) string {
	for _, t := range types {
		for _, part := range strings.Split(t, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			switch part {
			case "", "voice", "pref":
				continue
			}
			return part
		}
	}
	return ""
}

func openError(path string, err error) error {
	code := errors.ErrCodeSourceNotFound
	if os.IsPermission(err) {
		code = errors.ErrCodeSourcePermission
	}
	return errors.New(code, "cannot open contact source", err).
		WithDetail("path", path).
		WithSuggestion("Check contacts.sources in your fido config")
}
