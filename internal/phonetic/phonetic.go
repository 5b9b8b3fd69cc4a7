// Package phonetic turns contact names and phone numbers into the plain forms
// the keypad search matches against: a Latin transliteration of a name with
// diacritics removed, and a number reduced to its digits.
package phonetic

import (
	"strings"
	"sync/atomic"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mozillazg/go-pinyin"
	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultCacheSize is the number of transliterations kept by the default
// Transliterator.
const DefaultCacheSize = 4096

var defaultTransliterator atomic.Pointer[Transliterator]

func init() {
	defaultTransliterator.Store(MustNewTransliterator(DefaultCacheSize))
}

// ToPhonetic transliterates name into a Latin-alphabet approximation with
// diacritics stripped, using the shared default Transliterator.
func ToPhonetic(name string) string {
	return defaultTransliterator.Load().ToPhonetic(name)
}

// SetCacheSize replaces the shared default Transliterator with one caching
// up to size results. Zero disables caching.
func SetCacheSize(size int) error {
	t, err := NewTransliterator(size)
	if err != nil {
		return err
	}
	defaultTransliterator.Store(t)
	return nil
}

// Transliterator converts names to their phonetic Latin form.
// Han ideographs become toneless Hanyu Pinyin syllables separated by spaces,
// other scripts go through Unicode-to-ASCII transliteration, and Latin text
// keeps its letters and case minus combining marks.
//
// Results are memoized in an LRU cache; the output for a given input never
// depends on cache state. A Transliterator is safe for concurrent use.
type Transliterator struct {
	cache *lru.Cache[string, string]
	args  pinyin.Args
}

// NewTransliterator creates a Transliterator caching up to cacheSize results.
// A cacheSize of zero or less disables caching.
func NewTransliterator(cacheSize int) (*Transliterator, error) {
	t := &Transliterator{args: pinyin.NewArgs()}
	t.args.Style = pinyin.Normal

	if cacheSize > 0 {
		c, err := lru.New[string, string](cacheSize)
		if err != nil {
			return nil, err
		}
		t.cache = c
	}
	return t, nil
}

// MustNewTransliterator is like NewTransliterator but panics on error.
func MustNewTransliterator(cacheSize int) *Transliterator {
	t, err := NewTransliterator(cacheSize)
	if err != nil {
		panic(err)
	}
	return t
}

// ToPhonetic returns the phonetic form of name. Empty input yields "".
func (t *Transliterator) ToPhonetic(name string) string {
	if name == "" {
		return ""
	}
	if t.cache != nil {
		if v, ok := t.cache.Get(name); ok {
			return v
		}
	}

	out := t.transliterate(name)

	if t.cache != nil {
		t.cache.Add(name, out)
	}
	return out
}

// Len reports how many entries are cached.
func (t *Transliterator) Len() int {
	if t.cache == nil {
		return 0
	}
	return t.cache.Len()
}

func (t *Transliterator) transliterate(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))

	// Split into alternating Han and non-Han runs.
	start := 0
	inHan := false
	for i, r := range name {
		han := unicode.Is(unicode.Han, r)
		if i == 0 {
			inHan = han
			continue
		}
		if han != inHan {
			t.writeRun(&sb, name[start:i], inHan)
			start = i
			inHan = han
		}
	}
	t.writeRun(&sb, name[start:], inHan)

	return sb.String()
}

func (t *Transliterator) writeRun(sb *strings.Builder, run string, han bool) {
	if run == "" {
		return
	}
	if han {
		sb.WriteString(strings.Join(pinyin.LazyPinyin(run, t.args), " "))
		return
	}
	sb.WriteString(unidecode.Unidecode(StripDiacritics(run)))
}

// StripDiacritics removes combining marks after canonical decomposition,
// so "José" becomes "Jose". Letters without a decomposition are kept.
func StripDiacritics(s string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripper, s)
	if err != nil {
		return s
	}
	return out
}
