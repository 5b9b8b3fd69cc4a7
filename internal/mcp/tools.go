package mcp

import (
	"github.com/Aman-CERP/fido/internal/contact"
	"github.com/Aman-CERP/fido/internal/phone"
	"github.com/Aman-CERP/fido/internal/search"
)

// SearchContactsInput defines the input schema for the search_contacts tool.
type SearchContactsInput struct {
	Digits string `json:"digits" jsonschema:"keypad digits typed for a name or number, e.g. 5283 for Kate"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of results, default from config"`
}

// SearchContactsOutput defines the output schema for the search_contacts tool.
type SearchContactsOutput struct {
	Query   string          `json:"query" jsonschema:"the digits actually matched after separators were dropped"`
	Total   int             `json:"total" jsonschema:"number of contacts returned"`
	Results []ContactOutput `json:"results" jsonschema:"matching contacts in display order"`
}

// ListContactsInput defines the input schema for the list_contacts tool.
type ListContactsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of contacts, default from config"`
}

// ListContactsOutput defines the output schema for the list_contacts tool.
type ListContactsOutput struct {
	Total    int             `json:"total" jsonschema:"number of contacts loaded"`
	Contacts []ContactOutput `json:"contacts" jsonschema:"contacts in display order"`
}

// DialInput defines the input schema for the dial tool.
// Either Number, or ContactID with an optional Position, must be set.
type DialInput struct {
	Number    string `json:"number,omitempty" jsonschema:"the number to dial; formatting characters are dropped"`
	ContactID string `json:"contact_id,omitempty" jsonschema:"dial a number of this contact instead"`
	Position  int    `json:"position,omitempty" jsonschema:"1-based position of the contact's number, default 1"`
}

// DialOutput defines the output schema for the dial tool.
type DialOutput struct {
	Dialed string `json:"dialed" jsonschema:"the digits handed to the host"`
	URI    string `json:"uri" jsonschema:"the tel URI that was opened"`
}

// ContactOutput is one contact as reported to MCP clients.
type ContactOutput struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Match   string         `json:"match,omitempty" jsonschema:"which rule matched: name, phonetic or number"`
	Numbers []NumberOutput `json:"numbers"`
}

// NumberOutput is one phone number of a contact.
type NumberOutput struct {
	Label   string `json:"label,omitempty"`
	Number  string `json:"number"`
	Display string `json:"display" jsonschema:"international format with localized label"`
}

// ToContactOutput converts a contact to its MCP representation.
func ToContactOutput(c contact.Contact, match search.MatchKind, region string) ContactOutput {
	out := ContactOutput{
		ID:      string(c.ID),
		Name:    c.DisplayName(),
		Match:   string(match),
		Numbers: make([]NumberOutput, 0, len(c.PhoneNumbers)),
	}
	if match == search.MatchAll {
		out.Match = ""
	}
	for _, n := range c.PhoneNumbers {
		out.Numbers = append(out.Numbers, NumberOutput{
			Label:   phone.LocalizeLabel(n.Label),
			Number:  n.Value,
			Display: phone.Display(n, region),
		})
	}
	return out
}
