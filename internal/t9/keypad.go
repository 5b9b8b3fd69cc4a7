package t9

// KeyKind classifies keypad keys.
type KeyKind int

const (
	// KindDigit is a key that appends its digit to the query.
	KindDigit KeyKind = iota
	// KindSymbol is a key with no effect on the query (* and #).
	KindSymbol
	// KindBlank is an empty placeholder in the grid.
	KindBlank
	// KindCall places a call to the typed number.
	KindCall
	// KindDelete removes the last typed digit.
	KindDelete
)

// Key is one keypad button.
type Key struct {
	// Label is the main glyph ("2", "*", "Call").
	Label string
	// Letters is the secondary caption ("abc"), empty when there is none.
	Letters string
	Kind    KeyKind
}

// Digit returns the digit a KindDigit key appends.
func (k Key) Digit() (rune, bool) {
	if k.Kind != KindDigit || len(k.Label) != 1 {
		return 0, false
	}
	return rune(k.Label[0]), true
}

// Columns is the keypad grid width.
const Columns = 3

var (
	// KeyCall places a call.
	KeyCall = Key{Label: "Call", Kind: KindCall}
	// KeyDelete removes the last digit.
	KeyDelete = Key{Label: "⌫", Kind: KindDelete}
	// KeyBlank is the empty slot left of Call.
	KeyBlank = Key{Kind: KindBlank}
)

var fullLayout = []Key{
	{Label: "1", Kind: KindDigit},
	{Label: "2", Letters: "abc", Kind: KindDigit},
	{Label: "3", Letters: "def", Kind: KindDigit},
	{Label: "4", Letters: "ghi", Kind: KindDigit},
	{Label: "5", Letters: "jkl", Kind: KindDigit},
	{Label: "6", Letters: "mno", Kind: KindDigit},
	{Label: "7", Letters: "pqrs", Kind: KindDigit},
	{Label: "8", Letters: "tuv", Kind: KindDigit},
	{Label: "9", Letters: "wxyz", Kind: KindDigit},
	{Label: "*", Kind: KindSymbol},
	{Label: "0", Letters: "+", Kind: KindDigit},
	{Label: "#", Kind: KindSymbol},
	KeyBlank,
	KeyCall,
	KeyDelete,
}

// Layout returns the keypad keys in row-major order. The compact layout
// keeps only the bottom row (blank, Call, Delete).
func Layout(compact bool) []Key {
	keys := fullLayout
	if compact {
		keys = fullLayout[len(fullLayout)-Columns:]
	}
	out := make([]Key, len(keys))
	copy(out, keys)
	return out
}

// Rows splits a layout into rows of Columns keys.
func Rows(keys []Key) [][]Key {
	var rows [][]Key
	for i := 0; i < len(keys); i += Columns {
		end := i + Columns
		if end > len(keys) {
			end = len(keys)
		}
		rows = append(rows, keys[i:end])
	}
	return rows
}

// KeyFor resolves a typed character to its keypad key.
// Letters resolve to the digit key that carries them.
func KeyFor(r rune) (Key, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if d, ok := DigitFor(r); ok {
		r = rune(d)
	}
	for _, k := range fullLayout {
		if k.Kind != KindDigit && k.Kind != KindSymbol {
			continue
		}
		if len(k.Label) == 1 && rune(k.Label[0]) == r {
			return k, true
		}
	}
	return Key{}, false
}
