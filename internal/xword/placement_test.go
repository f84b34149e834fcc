package xword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodul/crossword/internal/kana"
)

func w(s string) []kana.Grapheme { return kana.Normalize(s) }

func TestCanPlaceSeedWord(t *testing.T) {
	g := NewGrid(7)
	assert.True(t, CanPlace(g, w("ネコ"), 3, 2, true, false))
}

func TestCanPlaceOutOfBounds(t *testing.T) {
	g := NewGrid(7)
	assert.False(t, CanPlace(g, w("ネコ"), 3, 6, true, false))
}

func TestCanPlaceRejectsSideBySideAdjacency(t *testing.T) {
	// S5: ネコ horizontal at (0,0)-(0,1). リス horizontal at (1,0)-(1,1)
	// has no intersection, but its cells are perpendicular-adjacent to
	// ネコ's letters, violating the adjacency invariant.
	g := NewGrid(7)
	require.NoError(t, Place(g, w("ネコ"), 0, 0, true))
	assert.False(t, CanPlace(g, w("リス"), 1, 0, true, false))
}

func TestCanPlaceRequiresTerminationBlocked(t *testing.T) {
	g := NewGrid(7)
	require.NoError(t, Place(g, w("ネコ"), 3, 2, true))
	// トリ placed horizontally right after ネコ with no gap would need
	// the cell before it (ネコ's last letter) to be Blocked; it's a
	// Letter, so this placement is rejected.
	assert.False(t, CanPlace(g, w("トリ"), 3, 4, true, false))
}

func TestCanPlaceIntersectionMustMatchGrapheme(t *testing.T) {
	g := NewGrid(7)
	require.NoError(t, Place(g, w("ネコ"), 3, 2, true))
	// A down word crossing the コ cell (3,3) must start with コ.
	assert.True(t, CanPlace(g, w("コト"), 3, 3, false, true))
	assert.False(t, CanPlace(g, w("トリ"), 3, 3, false, true))
}

func TestFindPlacementsSortedByIntersectionsDescending(t *testing.T) {
	g := NewGrid(9)
	require.NoError(t, Place(g, w("ネコ"), 4, 3, true))
	require.NoError(t, Place(g, w("コト"), 4, 4, false))

	placements := FindPlacements(g, w("トリ"), true)
	require.NotEmpty(t, placements)
	for i := 1; i < len(placements); i++ {
		assert.GreaterOrEqual(t, placements[i-1].Intersections, placements[i].Intersections)
	}
}

func TestFindPlacementsRequireIntersectionEmptyOnFreshGrid(t *testing.T) {
	g := NewGrid(7)
	assert.Empty(t, FindPlacements(g, w("ネコ"), true))
}

func TestFindPlacementsFallbackScanWhenNoIntersectionRequired(t *testing.T) {
	g := NewGrid(7)
	placements := FindPlacements(g, w("ネコ"), false)
	assert.NotEmpty(t, placements)
}

func TestPlaceRequiresPriorCanPlace(t *testing.T) {
	g := NewGrid(7)
	require.NoError(t, Place(g, w("ネコ"), 3, 2, true))
	// Violates the termination invariant, see TestCanPlaceRequiresTerminationBlocked.
	err := Place(g, w("トリ"), 3, 4, true)
	require.Error(t, err)
	assert.Equal(t, KindInternal, Kind(err))
}
