package xword

import "github.com/bodul/crossword/internal/kana"

// CellKind distinguishes a blocked cell from a letter cell.
type CellKind int

const (
	Blocked CellKind = iota
	Letter
)

// Cell is one position of the grid.
type Cell struct {
	Kind   CellKind
	G      kana.Grapheme
	Number int // 0 means unnumbered
}

// Grid is an N x N array of cells, owned exclusively by one synthesis
// attempt for its lifetime. It starts all-Blocked.
type Grid struct {
	N     int
	cells []Cell
}

// NewGrid creates an empty N x N grid.
func NewGrid(n int) *Grid {
	return &Grid{N: n, cells: make([]Cell, n*n)}
}

func (g *Grid) idx(r, c int) int { return r*g.N + c }

// InBounds reports whether (r, c) lies within the grid.
func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.N && c >= 0 && c < g.N
}

// At returns the cell at (r, c). Callers must check InBounds first.
func (g *Grid) At(r, c int) Cell {
	return g.cells[g.idx(r, c)]
}

// setNumber assigns a clue number to the cell at (r, c).
func (g *Grid) setNumber(r, c, number int) {
	i := g.idx(r, c)
	g.cells[i].Number = number
}

// place writes a contiguous run of graphemes starting at (row, col)
// without validating it. It is unexported so that code outside the
// package goes through Place, which re-validates with CanPlace first;
// inside the package, runAttempt calls it directly with positions that
// CanPlace or FindPlacements has just accepted.
func (g *Grid) place(row, col int, horizontal bool, word []kana.Grapheme) {
	for i, gr := range word {
		r, c := row, col
		if horizontal {
			c += i
		} else {
			r += i
		}
		g.cells[g.idx(r, c)] = Cell{Kind: Letter, G: gr}
	}
}

// Density returns the fraction of cells that hold a letter.
func (g *Grid) Density() float64 {
	if g.N == 0 {
		return 0
	}
	n := 0
	for _, c := range g.cells {
		if c.Kind == Letter {
			n++
		}
	}
	return float64(n) / float64(g.N*g.N)
}

// clone deep-copies the grid, used so one attempt's working grid never
// leaks into another's.
func (g *Grid) clone() *Grid {
	cp := &Grid{N: g.N, cells: make([]Cell, len(g.cells))}
	copy(cp.cells, g.cells)
	return cp
}
