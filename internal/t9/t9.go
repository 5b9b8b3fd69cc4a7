// Package t9 maps Latin letters onto telephone keypad digits and describes
// the dialer keypad layout.
package t9

import "strings"

// letterDigits maps 'a'..'z' to their keypad digit.
var letterDigits = [26]byte{
	'2', '2', '2', // abc
	'3', '3', '3', // def
	'4', '4', '4', // ghi
	'5', '5', '5', // jkl
	'6', '6', '6', // mno
	'7', '7', '7', '7', // pqrs
	'8', '8', '8', // tuv
	'9', '9', '9', '9', // wxyz
}

// Encode lower-cases letters and maps each a-z to its keypad digit.
// Runes without a mapping (digits, punctuation, spaces, other scripts)
// are dropped, so the output is never longer than the input.
func Encode(letters string) string {
	lower := strings.ToLower(letters)

	var sb strings.Builder
	sb.Grow(len(lower))
	for _, r := range lower {
		if d, ok := DigitFor(r); ok {
			sb.WriteByte(d)
		}
	}
	return sb.String()
}

// DigitFor returns the keypad digit for a lowercase Latin letter.
func DigitFor(r rune) (byte, bool) {
	if r < 'a' || r > 'z' {
		return 0, false
	}
	return letterDigits[r-'a'], true
}
