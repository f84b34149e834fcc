package xword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodul/crossword/internal/kana"
)

func TestPreprocessFiltersByLength(t *testing.T) {
	out := preprocess([]Candidate{
		{Answer: "ア", Clue: "too short"},
		{Answer: "ネコ", Clue: "cat"},
		{Answer: "ウクライナウクライナ", Clue: "too long for n=7"},
	}, 7)
	require.Len(t, out, 1)
	assert.Equal(t, "ネコ", kana.String(out[0].Answer))
}

func TestPreprocessDedupesFirstOccurrenceWins(t *testing.T) {
	out := preprocess([]Candidate{
		{Answer: "ねこ", Clue: "first"},
		{Answer: "ネコ", Clue: "second, dropped"},
	}, 7)
	require.Len(t, out, 1)
	assert.Equal(t, "first", out[0].Clue)
}

func TestPreprocessPrefersMidLengths(t *testing.T) {
	out := preprocess([]Candidate{
		{Answer: "アイ", Clue: "len2"},           // length 2
		{Answer: "アイウエ", Clue: "len4"},         // length 4
		{Answer: "アイウ", Clue: "len3"},          // length 3
	}, 7)
	require.Len(t, out, 3)
	// lengths 3-5 sort before the remainder; within the remainder,
	// shorter sorts before longer.
	assert.Equal(t, 3, len(out[0].Answer))
	assert.Equal(t, 4, len(out[1].Answer))
	assert.Equal(t, 2, len(out[2].Answer))
}

// S4: a single length-1 candidate filters to empty, so synthesis fails
// with InsufficientWords.
func TestSynthesizeInsufficientWords(t *testing.T) {
	_, _, err := Synthesize([]Candidate{{Answer: "ア", Clue: "A"}}, 7, SynthesizeOptions{Seed: 1})
	require.Error(t, err)
	assert.Equal(t, KindInsufficientWords, Kind(err))
}

// S1: a trivial seed of three intersecting words on a 7x7 grid.
func TestSynthesizeTrivialSeed(t *testing.T) {
	candidates := []Candidate{
		{Answer: "ネコ", Clue: "cat"},
		{Answer: "コト", Clue: "thing"},
		{Answer: "トリ", Clue: "bird"},
	}
	grid, placed, err := Synthesize(candidates, 7, SynthesizeOptions{Seed: 42})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(placed), 1)
	assertAdjacencyInvariant(t, grid, placed)
	assertTerminationInvariant(t, grid, placed)
	assertConsistencyInvariant(t, grid, placed)
}

// Determinism under seed: two calls with the same inputs and seed yield
// byte-identical grids.
func TestSynthesizeDeterministicUnderSeed(t *testing.T) {
	candidates := buildCandidatePool(25)
	a, placedA, err := Synthesize(candidates, 9, SynthesizeOptions{Seed: 7})
	require.NoError(t, err)
	b, placedB, err := Synthesize(candidates, 9, SynthesizeOptions{Seed: 7})
	require.NoError(t, err)

	assert.Equal(t, a.cells, b.cells)
	require.Len(t, placedB, len(placedA))
	for i := range placedA {
		assert.Equal(t, placedA[i].Row, placedB[i].Row)
		assert.Equal(t, placedA[i].Col, placedB[i].Col)
		assert.Equal(t, placedA[i].Orientation, placedB[i].Orientation)
	}
}

func TestSynthesizeInvariantsHoldOnLargerGrid(t *testing.T) {
	candidates := buildCandidatePool(40)
	grid, placed, err := Synthesize(candidates, 11, SynthesizeOptions{Seed: 99})
	require.NoError(t, err)
	require.NotEmpty(t, placed)
	assertAdjacencyInvariant(t, grid, placed)
	assertTerminationInvariant(t, grid, placed)
	assertConsistencyInvariant(t, grid, placed)
	assertUniqueNumbering(t, grid, placed)
}

// --- helpers ---

func buildCandidatePool(n int) []Candidate {
	// A pool of short-to-medium katakana strings built from a small
	// alphabet so many intersections are possible, mirroring the kind of
	// news-keyword bag the synthesizer is designed around.
	syllables := []string{"ネ", "コ", "ト", "リ", "ス", "ア", "イ", "ウ", "エ", "オ", "カ", "キ", "ク"}
	var out []Candidate
	for i := 0; i < n; i++ {
		length := 2 + i%4
		s := ""
		for j := 0; j < length; j++ {
			s += syllables[(i*3+j)%len(syllables)]
		}
		out = append(out, Candidate{Answer: s, Clue: "clue"})
	}
	return out
}

// assertAdjacencyInvariant checks spec.md §8 invariant 1: for every pair
// of orthogonally adjacent letter cells, some placed word contains both,
// consecutive in its grapheme sequence.
func assertAdjacencyInvariant(t *testing.T, g *Grid, placed []PlacedWord) {
	t.Helper()

	covers := func(r1, c1, r2, c2 int) bool {
		for _, pw := range placed {
			for i := 0; i < pw.Length-1; i++ {
				ar, ac := pw.Row, pw.Col
				br, bc := pw.Row, pw.Col
				if pw.Orientation == Across {
					ac += i
					bc += i + 1
				} else {
					ar += i
					br += i + 1
				}
				if (ar == r1 && ac == c1 && br == r2 && bc == c2) ||
					(ar == r2 && ac == c2 && br == r1 && bc == c1) {
					return true
				}
			}
		}
		return false
	}

	for r := 0; r < g.N; r++ {
		for c := 0; c < g.N; c++ {
			if g.At(r, c).Kind != Letter {
				continue
			}
			if c+1 < g.N && g.At(r, c+1).Kind == Letter {
				assert.True(t, covers(r, c, r, c+1), "uncovered adjacency at (%d,%d)-(%d,%d)", r, c, r, c+1)
			}
			if r+1 < g.N && g.At(r+1, c).Kind == Letter {
				assert.True(t, covers(r, c, r+1, c), "uncovered adjacency at (%d,%d)-(%d,%d)", r, c, r+1, c)
			}
		}
	}
}

func assertTerminationInvariant(t *testing.T, g *Grid, placed []PlacedWord) {
	t.Helper()
	for _, pw := range placed {
		if pw.Orientation == Across {
			if pw.Col-1 >= 0 {
				assert.Equal(t, Blocked, g.At(pw.Row, pw.Col-1).Kind)
			}
			endCol := pw.Col + pw.Length - 1
			if endCol+1 < g.N {
				assert.Equal(t, Blocked, g.At(pw.Row, endCol+1).Kind)
			}
		} else {
			if pw.Row-1 >= 0 {
				assert.Equal(t, Blocked, g.At(pw.Row-1, pw.Col).Kind)
			}
			endRow := pw.Row + pw.Length - 1
			if endRow+1 < g.N {
				assert.Equal(t, Blocked, g.At(endRow+1, pw.Col).Kind)
			}
		}
	}
}

func assertConsistencyInvariant(t *testing.T, g *Grid, placed []PlacedWord) {
	t.Helper()
	for _, pw := range placed {
		for i, gr := range pw.Answer {
			r, c := pw.Row, pw.Col
			if pw.Orientation == Across {
				c += i
			} else {
				r += i
			}
			assert.Equal(t, gr, g.At(r, c).G)
		}
	}
}

func assertUniqueNumbering(t *testing.T, g *Grid, placed []PlacedWord) {
	t.Helper()
	numbered := Number(g, placed)
	seen := make(map[int]bool)
	for _, pw := range numbered {
		require.NotZero(t, pw.Number)
		seen[pw.Number] = true
	}
	assert.LessOrEqual(t, len(seen), len(numbered))
}
