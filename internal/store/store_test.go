package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodul/crossword/internal/xword"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecord(id string) xword.Record {
	return xword.Record{
		ID:        id,
		CreatedAt: time.Now(),
		Size:      5,
		Grid:      [][]xword.CellView{{{Blocked: true}}},
		Words:     []xword.PlacedWord{{Clue: "cat", Length: 2}},
		Clues: xword.Clues{
			Across: []xword.ClueEntry{{Number: 1, Clue: "cat", Length: 2}},
		},
		Answers: map[string]string{"1-across": "ネコ"},
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rec := sampleRecord("id-1")

	require.NoError(t, s.Put(ctx, rec))

	got, err := s.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Size, got.Size)
	assert.Nil(t, got.Answers, "player-facing Get must strip answers")
}

func TestGetWithAnswersKeepsAnswers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rec := sampleRecord("id-1")
	require.NoError(t, s.Put(ctx, rec))

	got, err := s.getWithAnswers(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "ネコ", got.Answers["1-across"])
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Equal(t, xword.KindNotFound, xword.Kind(err))
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := sampleRecord("id-older")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := sampleRecord("id-newer")
	newer.CreatedAt = time.Now()

	require.NoError(t, s.Put(ctx, older))
	require.NoError(t, s.Put(ctx, newer))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "id-newer", list[0].ID)
	assert.Equal(t, "id-older", list[1].ID)
}

func TestDeleteAtomic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, sampleRecord("id-1")))

	require.NoError(t, s.Delete(ctx, "id-1"))

	_, err := s.Get(ctx, "id-1")
	require.Error(t, err)
	assert.Equal(t, xword.KindNotFound, xword.Kind(err))
}

func TestDeleteNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.Delete(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Equal(t, xword.KindNotFound, xword.Kind(err))
}

func TestPutUpsertsExistingID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rec := sampleRecord("id-1")
	require.NoError(t, s.Put(ctx, rec))

	rec.Size = 9
	require.NoError(t, s.Put(ctx, rec))

	got, err := s.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, 9, got.Size)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
