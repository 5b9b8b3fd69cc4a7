// Package phone formats contact phone numbers for display.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/Aman-CERP/fido/internal/contact"
	"github.com/Aman-CERP/fido/internal/errors"
)

// DefaultRegion is used when no region is configured.
const DefaultRegion = "US"

// Display renders n as "<international form> (<label>)". Numbers that do not
// parse for region are shown as stored. An unlabeled number keeps the empty
// parentheses.
func Display(n contact.PhoneNumber, region string) string {
	return Format(n.Value, region) + " (" + LocalizeLabel(n.Label) + ")"
}

// Format returns raw in international format, or raw unchanged when it
// cannot be parsed or its length is impossible for its country.
func Format(raw, region string) string {
	if region == "" {
		region = DefaultRegion
	}
	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil || !phonenumbers.IsPossibleNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}

// ValidateRegion checks that region is a CLDR region code known to the
// number metadata.
func ValidateRegion(region string) error {
	if phonenumbers.GetCountryCodeForRegion(strings.ToUpper(region)) == 0 {
		return errors.New(errors.ErrCodeInvalidRegion, "unknown phone region", nil).
			WithDetail("region", region).
			WithSuggestion("Use a two-letter region code such as US, DE or CN")
	}
	return nil
}

// labelNames maps lowercased label tokens to their display form.
var labelNames = map[string]string{
	"cell":     "mobile",
	"mobile":   "mobile",
	"iphone":   "iPhone",
	"home":     "home",
	"work":     "work",
	"main":     "main",
	"pager":    "pager",
	"other":    "other",
	"fax":      "fax",
	"homefax":  "home fax",
	"workfax":  "work fax",
	"otherfax": "other fax",
	"voice":    "",
	"pref":     "",
}

// LocalizeLabel turns a stored label token into display text. Address-book
// tokens such as "_$!<Mobile>!$_" are unwrapped. Unknown labels are
// lowercased.
func LocalizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if strings.HasPrefix(label, "_$!<") && strings.HasSuffix(label, ">!$_") {
		label = label[len("_$!<") : len(label)-len(">!$_")]
	}
	key := strings.ToLower(label)
	if name, ok := labelNames[key]; ok {
		return name
	}
	return key
}
