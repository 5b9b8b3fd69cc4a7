package phonetic

import (
	"strings"
	"unicode"
)

// NormalizeDigits returns only the decimal digits of text, in order.
// Any rune in Unicode category Nd counts, so non-ASCII digits are kept.
func NormalizeDigits(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// DialDigits is NormalizeDigits with every digit folded to ASCII, the form a
// tel URI carries. "٠١٢" becomes "012".
func DialDigits(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if v, ok := digitValue(r); ok {
			sb.WriteByte(byte('0' + v))
		}
	}
	return sb.String()
}

// digitValue returns the value of an Nd rune. Nd digits come in contiguous
// runs of ten starting at zero, so the offset into a range gives the value.
func digitValue(r rune) (int, bool) {
	if r >= '0' && r <= '9' {
		return int(r - '0'), true
	}
	if r < 0x80 {
		return 0, false
	}
	if r <= 0xFFFF {
		for _, rg := range unicode.Nd.R16 {
			if rune(rg.Lo) <= r && r <= rune(rg.Hi) && rg.Stride == 1 {
				return int(r-rune(rg.Lo)) % 10, true
			}
		}
		return 0, false
	}
	for _, rg := range unicode.Nd.R32 {
		if rune(rg.Lo) <= r && r <= rune(rg.Hi) && rg.Stride == 1 {
			return int(r-rune(rg.Lo)) % 10, true
		}
	}
	return 0, false
}
