package kana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHiragana(t *testing.T) {
	require.Equal(t, "ネコ", NormalizeString("ねこ"))
}

func TestNormalizeSmallKana(t *testing.T) {
	cases := map[string]string{
		"ァ": "ア", "ィ": "イ", "ゥ": "ウ", "ェ": "エ", "ォ": "オ",
		"ッ": "ツ", "ャ": "ヤ", "ュ": "ユ", "ョ": "ヨ", "ヮ": "ワ",
	}
	for small, full := range cases {
		assert.Equal(t, full, NormalizeString(small), "folding %q", small)
	}
}

func TestNormalizeLatinUppercased(t *testing.T) {
	assert.Equal(t, "ABC", NormalizeString("abc"))
}

func TestNormalizePassThrough(t *testing.T) {
	// Prolonged-sound mark, digits, and already-full katakana are untouched.
	assert.Equal(t, "ウクライナー5", NormalizeString("ウクライナー5"))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"ねこ", "ネコ", "ウクライナ", "abc123", "ぴょんっ", "ラーメン",
	}
	for _, in := range inputs {
		once := NormalizeString(in)
		twice := NormalizeString(once)
		assert.Equal(t, once, twice, "idempotence for %q", in)
	}
}

func TestNormalizeMixedDuplicateCandidates(t *testing.T) {
	// Two different-looking candidate strings that normalize to the same
	// answer must compare equal grapheme-by-grapheme.
	a := Normalize("ねこ")
	b := Normalize("ネコ")
	require.True(t, Equal(a, b))
}

func TestEqualDifferentLengths(t *testing.T) {
	assert.False(t, Equal(Normalize("ネコ"), Normalize("ネ")))
}
