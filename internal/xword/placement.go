package xword

import (
	"sort"

	"github.com/bodul/crossword/internal/kana"
)

// Placement is one candidate position for a word against a partial grid.
type Placement struct {
	Row, Col      int
	Horizontal    bool
	Intersections int
}

// CanPlace decides whether word may occupy the run of cells starting at
// (row, col) extending horizontally or vertically for len(word) cells,
// per spec.md §4.3: in-bounds, termination invariant, adjacency
// invariant, and (if requireIntersection) at least one intersection.
func CanPlace(g *Grid, word []kana.Grapheme, row, col int, horizontal bool, requireIntersection bool) bool {
	l := len(word)
	if l == 0 {
		return false
	}

	endRow, endCol := row, col
	if horizontal {
		endCol = col + l - 1
	} else {
		endRow = row + l - 1
	}
	if row < 0 || col < 0 || endRow >= g.N || endCol >= g.N {
		return false
	}

	// Termination invariant: cell before the run and cell after the run,
	// if in bounds, must be Blocked.
	if horizontal {
		if col-1 >= 0 && g.At(row, col-1).Kind != Blocked {
			return false
		}
		if endCol+1 < g.N && g.At(row, endCol+1).Kind != Blocked {
			return false
		}
	} else {
		if row-1 >= 0 && g.At(row-1, col).Kind != Blocked {
			return false
		}
		if endRow+1 < g.N && g.At(endRow+1, col).Kind != Blocked {
			return false
		}
	}

	intersections := 0
	prevLetter := false
	for i := 0; i < l; i++ {
		r, c := row, col
		if horizontal {
			c += i
		} else {
			r += i
		}
		cell := g.At(r, c)
		gr := word[i]

		if cell.Kind == Letter {
			if cell.G != gr {
				return false
			}
			// Two consecutive letters along the run belong to a word
			// already placed in this direction; covering it would erase
			// that word's termination cells.
			if prevLetter {
				return false
			}
			prevLetter = true
			intersections++
			continue
		}
		prevLetter = false

		// Blocked cell: the two perpendicular neighbors, if in bounds,
		// must also be Blocked (adjacency invariant — no side-by-side
		// words that aren't the same word).
		if horizontal {
			if r-1 >= 0 && g.At(r-1, c).Kind != Blocked {
				return false
			}
			if r+1 < g.N && g.At(r+1, c).Kind != Blocked {
				return false
			}
		} else {
			if c-1 >= 0 && g.At(r, c-1).Kind != Blocked {
				return false
			}
			if c+1 < g.N && g.At(r, c+1).Kind != Blocked {
				return false
			}
		}
	}

	if requireIntersection && intersections == 0 {
		return false
	}
	return true
}

// FindPlacements enumerates all valid placements for word against g.
//
// The primary strategy iterates every currently placed letter cell and,
// for each grapheme of word matching that letter, computes the candidate
// (row, col) that would align word with that intersection in each
// orientation, then filters by CanPlace. If no intersecting placement
// exists and requireIntersection is false, it falls back to scanning
// every (row, col) and orientation. Results are sorted by intersection
// count descending, ties broken by (row, col, orientation) for a
// deterministic order given a deterministic grid.
func FindPlacements(g *Grid, word []kana.Grapheme, requireIntersection bool) []Placement {
	seen := make(map[[3]int]bool)
	var results []Placement

	add := func(row, col int, horizontal bool) {
		if !CanPlace(g, word, row, col, horizontal, requireIntersection) {
			return
		}
		h := 0
		if horizontal {
			h = 1
		}
		key := [3]int{row, col, h}
		if seen[key] {
			return
		}
		seen[key] = true
		results = append(results, Placement{
			Row: row, Col: col, Horizontal: horizontal,
			Intersections: countIntersections(g, word, row, col, horizontal),
		})
	}

	for r := 0; r < g.N; r++ {
		for c := 0; c < g.N; c++ {
			cell := g.At(r, c)
			if cell.Kind != Letter {
				continue
			}
			for i, gr := range word {
				if gr != cell.G {
					continue
				}
				// Align word's i-th grapheme with (r, c).
				add(r, c-i, true)
				add(r-i, c, false)
			}
		}
	}

	if len(results) == 0 && !requireIntersection {
		for r := 0; r < g.N; r++ {
			for c := 0; c < g.N; c++ {
				add(r, c, true)
				add(r, c, false)
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Intersections != results[j].Intersections {
			return results[i].Intersections > results[j].Intersections
		}
		if results[i].Row != results[j].Row {
			return results[i].Row < results[j].Row
		}
		if results[i].Col != results[j].Col {
			return results[i].Col < results[j].Col
		}
		return !results[i].Horizontal && results[j].Horizontal
	})
	return results
}

func countIntersections(g *Grid, word []kana.Grapheme, row, col int, horizontal bool) int {
	n := 0
	for i := range word {
		r, c := row, col
		if horizontal {
			c += i
		} else {
			r += i
		}
		if g.At(r, c).Kind == Letter {
			n++
		}
	}
	return n
}

// Place writes word onto g at (row, col), requiring a fresh successful
// CanPlace check so an internal-API caller can never silently corrupt
// the grid.
func Place(g *Grid, word []kana.Grapheme, row, col int, horizontal bool) error {
	if !CanPlace(g, word, row, col, horizontal, false) {
		return newErr(KindInternal, "place: invalid position", nil)
	}
	g.place(row, col, horizontal, word)
	return nil
}
