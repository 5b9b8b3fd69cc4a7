package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/fido/internal/contact"
	"github.com/Aman-CERP/fido/internal/errors"
)

func TestDisplay(t *testing.T) {
	tests := []struct {
		name   string
		number contact.PhoneNumber
		region string
		want   string
	}{
		{
			name:   "international with label",
			number: contact.PhoneNumber{Label: "_$!<Mobile>!$_", Value: "+1 650 253 0000"},
			region: "US",
			want:   "+1 650-253-0000 (mobile)",
		},
		{
			name:   "national number uses region",
			number: contact.PhoneNumber{Label: "home", Value: "(650) 253-0000"},
			region: "us",
			want:   "+1 650-253-0000 (home)",
		},
		{
			name:   "default region",
			number: contact.PhoneNumber{Label: "work", Value: "6502530000"},
			want:   "+1 650-253-0000 (work)",
		},
		{
			name:   "unparseable falls back to raw",
			number: contact.PhoneNumber{Label: "cell", Value: "ext. only"},
			region: "US",
			want:   "ext. only (mobile)",
		},
		{
			name:   "short code shown raw",
			number: contact.PhoneNumber{Label: "cell", Value: "123"},
			region: "US",
			want:   "123 (mobile)",
		},
		{
			name:   "overlong number shown raw",
			number: contact.PhoneNumber{Label: "cell", Value: "12345678901234"},
			region: "US",
			want:   "12345678901234 (mobile)",
		},
		{
			name:   "no label keeps parentheses",
			number: contact.PhoneNumber{Value: "not a number"},
			region: "US",
			want:   "not a number ()",
		},
		{
			name:   "formatted without label",
			number: contact.PhoneNumber{Value: "650 253 0000"},
			region: "US",
			want:   "+1 650-253-0000 ()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Display(tt.number, tt.region))
		})
	}
}

func TestLocalizeLabel(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"_$!<Home>!$_":    "home",
		"_$!<HomeFAX>!$_": "home fax",
		"CELL":            "mobile",
		"iPhone":          "iPhone",
		"Boat":            "boat",
		"voice":           "",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, LocalizeLabel(in))
		})
	}
}

func TestValidateRegion(t *testing.T) {
	require.NoError(t, ValidateRegion("DE"))
	require.NoError(t, ValidateRegion("cn"))

	err := ValidateRegion("XX")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRegion, errors.GetCode(err))
}
