package xword

import (
	"time"

	"github.com/bodul/crossword/internal/kana"
)

// Candidate is one answer/clue pair offered to the synthesizer, before
// normalization.
type Candidate struct {
	Answer     string `json:"answer"`
	Clue       string `json:"clue"`
	ArticleRef string `json:"article_ref,omitempty"`
}

// normalizedCandidate is a Candidate after normalize+filter+dedupe, kept
// internal to the synthesizer.
type normalizedCandidate struct {
	Answer     []kana.Grapheme
	Clue       string
	ArticleRef string
}

// Orientation is the axis a placed word runs along.
type Orientation int

const (
	Across Orientation = iota
	Down
)

// String renders the orientation the way it appears in clue keys and the
// player interface: "across" or "down".
func (o Orientation) String() string {
	if o == Down {
		return "down"
	}
	return "across"
}

// PlacedWord is a candidate that has been written onto the grid.
type PlacedWord struct {
	Answer      []kana.Grapheme
	Clue        string
	ArticleRef  string
	Row, Col    int
	Orientation Orientation
	Length      int
	Number      int
}

// ClueEntry is one entry of the exported across/down clue lists.
type ClueEntry struct {
	Number     int    `json:"number"`
	Clue       string `json:"clue"`
	Length     int    `json:"length"`
	Row        int    `json:"row"`
	Col        int    `json:"col"`
	ArticleRef string `json:"article_ref,omitempty"`
}

// CellView is the JSON-facing shape of a Cell.
type CellView struct {
	Blocked bool   `json:"blocked"`
	Letter  string `json:"letter,omitempty"`
	Number  int    `json:"number,omitempty"`
}

// Record is the puzzle record of spec.md §3: immutable once produced.
// Answers is populated by synthesis and by Store.getWithAnswers, but is
// never serialized to a player-facing caller (see Record.Strip).
type Record struct {
	ID        string                `json:"id"`
	CreatedAt time.Time             `json:"created_at"`
	Size      int                   `json:"size"`
	Grid      [][]CellView          `json:"grid"`
	Words     []PlacedWord          `json:"words,omitempty"`
	Clues     Clues                 `json:"clues"`
	Answers   map[string]string     `json:"answers,omitempty"`
}

// Clues buckets placed words by orientation, each ascending by number.
type Clues struct {
	Across []ClueEntry `json:"across"`
	Down   []ClueEntry `json:"down"`
}

// Strip returns a copy of rec with Answers removed and every word's
// Answer cleared, for any response that crosses the external interface
// boundary (spec.md §3, §6). rec's own Words slice is not modified.
func (rec Record) Strip() Record {
	rec.Answers = nil
	if rec.Words != nil {
		words := make([]PlacedWord, len(rec.Words))
		copy(words, rec.Words)
		for i := range words {
			words[i].Answer = nil
		}
		rec.Words = words
	}
	return rec
}

// Summary is the shape returned by List: spec.md §6.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Size      int       `json:"size"`
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"created_at"`
}

// CheckResult is the output of Check.
type CheckResult struct {
	Correct   []string `json:"correct"`
	Incorrect []string `json:"incorrect"`
}

// HintResult is the output of Hint.
type HintResult struct {
	Hint     string `json:"hint"`
	Revealed int    `json:"revealed"`
	Total    int    `json:"total"`
}

// MinSize and MaxSize bound the requested grid size (spec.md §6).
const (
	MinSize = 5
	MaxSize = 15
)

// ClampSize clamps n into [MinSize, MaxSize], the driver behavior spec.md
// §7 assigns to InvalidSize ("the driver clamps silently rather than
// raising, so this is observable only through the clamped output").
func ClampSize(n int) int {
	if n < MinSize {
		return MinSize
	}
	if n > MaxSize {
		return MaxSize
	}
	return n
}

// ParseOrientation parses the case-sensitive "across"/"down" strings of
// spec.md §6.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "across":
		return Across, nil
	case "down":
		return Down, nil
	default:
		return 0, newErr(KindBadRequest, "orientation must be \"across\" or \"down\"", nil)
	}
}
