package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/Aman-CERP/fido/internal/contact"
	"github.com/Aman-CERP/fido/internal/phone"
	"github.com/Aman-CERP/fido/internal/search"
)

// PlainRenderer writes contacts one per line, numbers indented below.
type PlainRenderer struct {
	out    io.Writer
	region string
}

// NewPlainRenderer creates a plain text renderer.
func NewPlainRenderer(cfg Config) *PlainRenderer {
	return &PlainRenderer{out: cfg.Output, region: cfg.Region}
}

// Contacts writes the list.
func (r *PlainRenderer) Contacts(contacts []contact.Contact) {
	for _, c := range contacts {
		r.contact(c, "")
	}
}

// Results writes search results with the rule that matched each one.
func (r *PlainRenderer) Results(query string, results []search.Result) {
	if len(results) == 0 {
		_, _ = fmt.Fprintf(r.out, "No contacts match %q\n", query)
		return
	}
	for _, res := range results {
		r.contact(res.Contact, string(res.Match))
	}
}

// Detail writes one contact with numbered phone lines, the numbers the
// keypad's detail pane dials with 1-9.
func (r *PlainRenderer) Detail(c contact.Contact) {
	_, _ = fmt.Fprintln(r.out, displayName(c))
	for i, n := range c.PhoneNumbers {
		_, _ = fmt.Fprintf(r.out, "  %d. %s\n", i+1, phone.Display(n, r.region))
	}
}

func (r *PlainRenderer) contact(c contact.Contact, match string) {
	name := displayName(c)
	if match != "" {
		name += " [" + match + "]"
	}
	_, _ = fmt.Fprintln(r.out, name)
	for _, n := range c.PhoneNumbers {
		_, _ = fmt.Fprintf(r.out, "    %s\n", phone.Display(n, r.region))
	}
}

func displayName(c contact.Contact) string {
	if name := strings.TrimSpace(c.DisplayName()); name != "" {
		return name
	}
	return "(no name)"
}
