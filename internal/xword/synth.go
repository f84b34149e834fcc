package xword

import (
	"math/rand"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bodul/crossword/internal/kana"
)

const maxAttempts = 100

// targetWordCount implements spec.md §4.4's minimum-word target.
func targetWordCount(n int) int {
	switch {
	case n <= 7:
		return 6
	case n <= 10:
		return 18
	case n <= 12:
		return 25
	default:
		return 35
	}
}

const targetDensity = 0.80

// SynthesizeOptions configures one Synthesize call.
type SynthesizeOptions struct {
	// Seed seeds the per-attempt random generators. Zero means derive a
	// seed from the current time, so two default calls differ but a
	// caller that wants determinism (spec.md §8, §9) can pin one.
	Seed int64
	// Attempts overrides the default of 100 independent attempts.
	Attempts int
	// Budget bounds wall-clock time across all attempts. Zero means
	// unbounded. When it elapses, the best attempt found so far (if any)
	// is returned instead of InsufficientWords.
	Budget time.Duration
	// OnAttempt, if set, is called after every attempt with its index,
	// density, and word count. Used by the HTTP layer to stream progress
	// over SSE; the core itself never depends on it.
	OnAttempt func(attempt int, density float64, placed int)
}

// attemptResult is one attempt's outcome.
type attemptResult struct {
	grid    *Grid
	placed  []PlacedWord
	density float64
}

// better reports whether candidate beats current under the attempt
// selection rule of spec.md §4.4: higher density wins, ties broken by
// more placed words.
func (cur attemptResult) better(cand attemptResult) bool {
	if cand.density != cur.density {
		return cand.density > cur.density
	}
	return len(cand.placed) > len(cur.placed)
}

// Synthesize runs the randomized multi-attempt search of spec.md §4.4
// and returns the winning grid plus its placed words, or an *Error of
// KindInsufficientWords if no candidate survives preprocessing or no
// attempt placed anything.
func Synthesize(candidates []Candidate, n int, opts SynthesizeOptions) (*Grid, []PlacedWord, error) {
	filtered := preprocess(candidates, n)
	if len(filtered) == 0 {
		return nil, nil, newErr(KindInsufficientWords, "no candidates survived normalization and length filtering", nil)
	}

	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = maxAttempts
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	target := targetWordCount(n)

	var best attemptResult
	haveBest := false
	start := time.Now()

	for i := 0; i < attempts; i++ {
		if opts.Budget > 0 && time.Since(start) > opts.Budget {
			break
		}
		rng := rand.New(rand.NewSource(seed + int64(i)))
		res := runAttempt(filtered, n, rng)

		logrus.WithFields(logrus.Fields{
			"attempt": i,
			"density": res.density,
			"placed":  len(res.placed),
			"elapsed": time.Since(start),
		}).Debug("xword: synthesis attempt")

		if opts.OnAttempt != nil {
			opts.OnAttempt(i, res.density, len(res.placed))
		}

		if !haveBest || best.better(res) {
			best = res
			haveBest = true
		}
		if haveBest && best.density >= targetDensity && len(best.placed) >= target {
			break
		}
	}

	if !haveBest || len(best.placed) == 0 {
		return nil, nil, newErr(KindInsufficientWords, "no attempt placed any word", nil)
	}

	logrus.WithFields(logrus.Fields{
		"size":    n,
		"density": best.density,
		"placed":  len(best.placed),
		"elapsed": time.Since(start),
	}).Info("xword: synthesis finished")

	return best.grid, best.placed, nil
}

// preprocess normalizes, filters by length, dedupes by answer (first
// occurrence wins), and stable-sorts to prefer lengths 3-5 first, then
// shorter over longer within the remainder.
func preprocess(candidates []Candidate, n int) []normalizedCandidate {
	seen := make(map[string]bool)
	var out []normalizedCandidate
	for _, c := range candidates {
		g := kana.Normalize(c.Answer)
		if len(g) < 2 || len(g) > n {
			continue
		}
		key := kana.String(g)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, normalizedCandidate{Answer: g, Clue: c.Clue, ArticleRef: c.ArticleRef})
	}

	rank := func(l int) int {
		if l >= 3 && l <= 5 {
			return 0
		}
		return 1
	}
	sort.SliceStable(out, func(i, j int) bool {
		li, lj := len(out[i].Answer), len(out[j].Answer)
		ri, rj := rank(li), rank(lj)
		if ri != rj {
			return ri < rj
		}
		return li < lj
	})
	return out
}

// runAttempt performs one attempt of the seed/main/edge-fill passes.
func runAttempt(candidates []normalizedCandidate, n int, rng *rand.Rand) attemptResult {
	shuffled := make([]normalizedCandidate, len(candidates))
	copy(shuffled, candidates)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	grid := NewGrid(n)

	first := shuffled[0]
	row := n / 2
	col := (n - len(first.Answer)) / 2
	if !CanPlace(grid, first.Answer, row, col, true, false) {
		return attemptResult{grid: grid, placed: nil, density: 0}
	}
	grid.place(row, col, true, first.Answer)
	placed := []PlacedWord{{
		Answer: first.Answer, Clue: first.Clue, ArticleRef: first.ArticleRef,
		Row: row, Col: col, Orientation: Across, Length: len(first.Answer),
	}}
	remaining := shuffled[1:]

	var unplaced []normalizedCandidate
	for _, cand := range remaining {
		options := FindPlacements(grid, cand.Answer, true)
		if len(options) == 0 {
			unplaced = append(unplaced, cand)
			continue
		}
		best := options[0]
		grid.place(best.Row, best.Col, best.Horizontal, cand.Answer)
		placed = append(placed, PlacedWord{
			Answer: cand.Answer, Clue: cand.Clue, ArticleRef: cand.ArticleRef,
			Row: best.Row, Col: best.Col, Orientation: orientationOf(best.Horizontal),
			Length: len(cand.Answer),
		})
	}

	// Edge-fill pass: short un-placed words, no intersection required,
	// kept only if they touch a grid edge.
	var stillUnplaced []normalizedCandidate
	for _, cand := range unplaced {
		if len(cand.Answer) > 3 {
			stillUnplaced = append(stillUnplaced, cand)
			continue
		}
		options := FindPlacements(grid, cand.Answer, false)
		var edgeOptions []Placement
		for _, p := range options {
			if touchesEdge(p, len(cand.Answer), n) {
				edgeOptions = append(edgeOptions, p)
			}
		}
		if len(edgeOptions) == 0 {
			stillUnplaced = append(stillUnplaced, cand)
			continue
		}
		best := edgeOptions[0]
		grid.place(best.Row, best.Col, best.Horizontal, cand.Answer)
		placed = append(placed, PlacedWord{
			Answer: cand.Answer, Clue: cand.Clue, ArticleRef: cand.ArticleRef,
			Row: best.Row, Col: best.Col, Orientation: orientationOf(best.Horizontal),
			Length: len(cand.Answer),
		})
	}

	return attemptResult{grid: grid, placed: placed, density: grid.Density()}
}

func orientationOf(horizontal bool) Orientation {
	if horizontal {
		return Across
	}
	return Down
}

func touchesEdge(p Placement, length, n int) bool {
	endRow, endCol := p.Row, p.Col
	if p.Horizontal {
		endCol = p.Col + length - 1
	} else {
		endRow = p.Row + length - 1
	}
	return p.Row == 0 || p.Col == 0 || endRow == n-1 || endCol == n-1
}
