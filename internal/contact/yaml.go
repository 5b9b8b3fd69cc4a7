package contact

import (
	"context"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/fido/internal/errors"
)

// yamlFile is the on-disk layout of a YAML contact source:
//
//	contacts:
//	  - given_name: Anna
//	    family_name: Schmidt
//	    phones:
//	      - label: mobile
//	        number: "+49 30 1234567"
type yamlFile struct {
	Contacts []yamlContact `yaml:"contacts"`
}

type yamlContact struct {
	ID         string        `yaml:"id,omitempty"`
	GivenName  string        `yaml:"given_name"`
	FamilyName string        `yaml:"family_name"`
	Phones     []PhoneNumber `yaml:"phones"`
}

// YAMLProvider reads contacts from a YAML file.
type YAMLProvider struct {
	path string
}

// NewYAMLProvider creates a provider for the YAML file at path.
func NewYAMLProvider(path string) *YAMLProvider {
	return &YAMLProvider{path: path}
}

// Name implements Provider.
func (p *YAMLProvider) Name() string {
	return "yaml:" + p.path
}

// Fetch implements Provider.
func (p *YAMLProvider) Fetch(ctx context.Context, fields FieldSet) ([]Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, openError(p.path, err)
	}

	var parsed yamlFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, errors.New(errors.ErrCodeSourceCorrupt, "failed to parse YAML contacts", err).
			WithDetail("path", p.path)
	}

	contacts := make([]Contact, 0, len(parsed.Contacts))
	for _, yc := range parsed.Contacts {
		contacts = append(contacts, Contact{
			ID:           ID(yc.ID),
			GivenName:    yc.GivenName,
			FamilyName:   yc.FamilyName,
			PhoneNumbers: yc.Phones,
		})
	}

	assignIDs(p.path, contacts)
	for i := range contacts {
		contacts[i] = fields.Project(contacts[i])
	}
	return contacts, nil
}

// WriteYAML writes contacts to path in the layout YAMLProvider reads.
func WriteYAML(path string, contacts []Contact) error {
	out := yamlFile{Contacts: make([]yamlContact, 0, len(contacts))}
	for _, c := range contacts {
		out.Contacts = append(out.Contacts, yamlContact{
			ID:         string(c.ID),
			GivenName:  c.GivenName,
			FamilyName: c.FamilyName,
			Phones:     c.PhoneNumbers,
		})
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return errors.InternalError("failed to marshal contacts", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New(errors.ErrCodeSourcePermission, "failed to write contacts file", err).
			WithDetail("path", path)
	}
	return nil
}
