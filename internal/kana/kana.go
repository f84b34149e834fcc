// Package kana normalizes Japanese answer and user-input strings into a
// grapheme sequence suitable for cell-by-cell comparison on a crossword
// grid: full-width katakana, the prolonged-sound mark, digits and Latin
// capitals, with hiragana folded up and small kana folded to full size.
package kana

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Grapheme is one normalized character as seen by the placement engine.
// Graphemes are compared by equality only.
type Grapheme rune

// smallKana maps small katakana to their full-sized counterparts.
var smallKana = map[rune]rune{
	'ァ': 'ア', 'ィ': 'イ', 'ゥ': 'ウ', 'ェ': 'エ', 'ォ': 'オ',
	'ッ': 'ツ', 'ャ': 'ヤ', 'ュ': 'ユ', 'ョ': 'ヨ', 'ヮ': 'ワ',
}

const (
	hiraganaLo = 0x3041
	hiraganaHi = 0x3096
	kanaShift  = 0x60
)

// Normalize decodes s as Unicode scalar values, NFC-composes it (folding
// any decomposed combining marks to their precomposed form before the
// kana tables are applied), and maps every rune through the hiragana,
// small-kana, and Latin-case rules. The result is total and idempotent.
func Normalize(s string) []Grapheme {
	composed := norm.NFC.String(s)
	out := make([]Grapheme, 0, len(composed))
	for _, r := range composed {
		out = append(out, Grapheme(normalizeRune(r)))
	}
	return out
}

// NormalizeString is Normalize rendered back to text, for JSON payloads
// and log lines where a grapheme sequence needs to look like a string.
func NormalizeString(s string) string {
	gs := Normalize(s)
	rs := make([]rune, len(gs))
	for i, g := range gs {
		rs[i] = rune(g)
	}
	return string(rs)
}

func normalizeRune(r rune) rune {
	if r >= hiraganaLo && r <= hiraganaHi {
		r += kanaShift
	}
	if full, ok := smallKana[r]; ok {
		return full
	}
	return unicode.ToUpper(r)
}

// Equal reports whether two grapheme sequences are identical.
func Equal(a, b []Grapheme) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders a grapheme sequence back to text.
func String(gs []Grapheme) string {
	rs := make([]rune, len(gs))
	for i, g := range gs {
		rs[i] = rune(g)
	}
	return string(rs)
}
