package xword

import (
	"fmt"
	"sort"
	"time"

	"github.com/bodul/crossword/internal/kana"
)

// fullWidthUnderscore is the hint placeholder character, U+FF3F.
const fullWidthUnderscore = "＿"

// Number assigns clue numbers in reading order (row-major,
// top-to-bottom, left-to-right) per spec.md §4.5, writes them onto g's
// cells, and sets PlacedWord.Number for every entry of placed (matched
// by starting position and orientation).
func Number(g *Grid, placed []PlacedWord) []PlacedWord {
	starts := make(map[[3]int]int) // (row, col, orientation) -> number
	next := 1

	for r := 0; r < g.N; r++ {
		for c := 0; c < g.N; c++ {
			if g.At(r, c).Kind != Letter {
				continue
			}
			startsAcross := (c == 0 || g.At(r, c-1).Kind == Blocked) &&
				c < g.N-1 && g.At(r, c+1).Kind == Letter
			startsDown := (r == 0 || g.At(r-1, c).Kind == Blocked) &&
				r < g.N-1 && g.At(r+1, c).Kind == Letter
			if !startsAcross && !startsDown {
				continue
			}
			g.setNumber(r, c, next)
			if startsAcross {
				starts[[3]int{r, c, int(Across)}] = next
			}
			if startsDown {
				starts[[3]int{r, c, int(Down)}] = next
			}
			next++
		}
	}

	out := make([]PlacedWord, len(placed))
	for i, pw := range placed {
		pw.Number = starts[[3]int{pw.Row, pw.Col, int(pw.Orientation)}]
		out[i] = pw
	}
	return out
}

// Export builds the immutable puzzle Record from a numbered grid and its
// placed words.
func Export(id string, createdAt time.Time, n int, g *Grid, placed []PlacedWord) Record {
	gridView := make([][]CellView, n)
	for r := 0; r < n; r++ {
		gridView[r] = make([]CellView, n)
		for c := 0; c < n; c++ {
			cell := g.At(r, c)
			if cell.Kind == Blocked {
				gridView[r][c] = CellView{Blocked: true}
				continue
			}
			gridView[r][c] = CellView{
				Blocked: false,
				Letter:  string(rune(cell.G)),
				Number:  cell.Number,
			}
		}
	}

	answers := make(map[string]string, len(placed))
	var across, down []ClueEntry
	for _, pw := range placed {
		key := answerKey(pw.Number, pw.Orientation)
		answers[key] = kana.String(pw.Answer)
		entry := ClueEntry{
			Number: pw.Number, Clue: pw.Clue, Length: pw.Length,
			Row: pw.Row, Col: pw.Col, ArticleRef: pw.ArticleRef,
		}
		if pw.Orientation == Across {
			across = append(across, entry)
		} else {
			down = append(down, entry)
		}
	}
	sort.Slice(across, func(i, j int) bool { return across[i].Number < across[j].Number })
	sort.Slice(down, func(i, j int) bool { return down[i].Number < down[j].Number })

	return Record{
		ID:        id,
		CreatedAt: createdAt,
		Size:      n,
		Grid:      gridView,
		Words:     placed,
		Clues:     Clues{Across: across, Down: down},
		Answers:   answers,
	}
}

func answerKey(number int, o Orientation) string {
	return fmt.Sprintf("%d-%s", number, o)
}

// Check compares user-supplied answers against rec's stored answers.
// Keys absent from userAnswers are omitted; unknown keys in userAnswers
// are ignored. rec must carry its Answers (i.e. not have been Stripped).
func Check(rec Record, userAnswers map[string]string) CheckResult {
	var res CheckResult
	for key, stored := range rec.Answers {
		user, ok := userAnswers[key]
		if !ok {
			continue
		}
		if kana.NormalizeString(user) == stored {
			res.Correct = append(res.Correct, key)
		} else {
			res.Incorrect = append(res.Incorrect, key)
		}
	}
	sort.Strings(res.Correct)
	sort.Strings(res.Incorrect)
	return res
}

// Hint reveals the first grapheme of the stored answer for
// (number, orientation) and masks the rest with the full-width
// underscore. Fails with KindUnknownClue if the key is absent.
func Hint(rec Record, number int, orientation Orientation) (HintResult, error) {
	key := answerKey(number, orientation)
	answer, ok := rec.Answers[key]
	if !ok {
		return HintResult{}, newErr(KindUnknownClue, fmt.Sprintf("no such clue: %s", key), nil)
	}
	gs := []rune(answer)
	if len(gs) == 0 {
		return HintResult{}, newErr(KindInternal, "stored answer is empty", nil)
	}
	hint := string(gs[0])
	for i := 1; i < len(gs); i++ {
		hint += fullWidthUnderscore
	}
	return HintResult{Hint: hint, Revealed: 1, Total: len(gs)}, nil
}
