package xword

import (
	"time"

	"github.com/google/uuid"
)

// Build runs Synthesize, Number, and Export in sequence, producing a
// fresh immutable Record with a new ID and creation timestamp. This is
// the producer interface of spec.md §6.
func Build(candidates []Candidate, n int, opts SynthesizeOptions) (Record, error) {
	n = ClampSize(n)
	grid, placed, err := Synthesize(candidates, n, opts)
	if err != nil {
		return Record{}, err
	}
	numbered := Number(grid, placed)
	rec := Export(uuid.NewString(), time.Now(), n, grid, numbered)
	return rec, nil
}
