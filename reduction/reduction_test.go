package reduction

import (
	"testing"

	"github.com/crosswordsmith/xwfill/dictionary"
	"github.com/crosswordsmith/xwfill/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, rows ...string) grid.Grid {
	t.Helper()
	w := len(rows[0])
	cells := make([]byte, 0, w*len(rows))
	for _, r := range rows {
		cells = append(cells, []byte(r)...)
	}
	g, err := grid.New(w, len(rows), cells)
	require.NoError(t, err)
	return g
}

func TestRuns_MinimalGrid(t *testing.T) {
	g := mustGrid(t, ".AS", ".R.", "ETA")
	runs := Runs(g)

	var across, down int
	for _, r := range runs {
		if r.Across {
			across++
		} else {
			down++
		}
		assert.GreaterOrEqual(t, r.Length, 1)
	}
	assert.Equal(t, 3, across)
	assert.Equal(t, 3, down)
}

func TestBuild_ColumnCountCompressedSkipsFixedCells(t *testing.T) {
	// A 3x3 grid with 6 fixed cells (A, S, R, E, T, A) and 3 open
	// cells (the two dots in column 0 and the dot at (1,2)):
	// compressed mode should allocate exactly 3 slices.
	g := mustGrid(t, ".AS", ".R.", "ETA")
	dict := dictionary.NewWordList([]string{"has", "ire", "eta", "art", "sea"})

	m, slices, _, err := Build(g, dict, Options{})
	require.NoError(t, err)
	defer m.Free()

	assert.Equal(t, 3, slices.NumSlices())
	assert.Equal(t, 54*3, m.NumColumns())
}

func TestBuild_NaiveModeAllocatesEveryCell(t *testing.T) {
	g := mustGrid(t, ".AS", ".R.", "ETA")
	dict := dictionary.NewWordList([]string{"has", "ire", "eta"})

	m, slices, _, err := Build(g, dict, Options{Naive: true})
	require.NoError(t, err)
	defer m.Free()

	assert.Equal(t, 9, slices.NumSlices())
}

func TestBuild_DuplicatePruningRemovesAlreadyPlacedWord(t *testing.T) {
	g := mustGrid(t, "cat")
	dict := dictionary.NewWordList([]string{"cat", "bat"})

	_, _, stats, err := Build(g, dict, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.AlreadyPlaced)
	assert.Equal(t, 1, stats.Unplaceable) // "bat" has the wrong fixed letter
}

func TestBuild_AllowDuplicateWordsKeepsAlreadyPlacedWord(t *testing.T) {
	g := mustGrid(t, "cat")
	dict := dictionary.NewWordList([]string{"cat"})

	_, _, stats, err := Build(g, dict, Options{AllowDuplicateWords: true})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.AlreadyPlaced)
	assert.Equal(t, 1, stats.Rows)
}

func TestBuild_UnplaceableWordNotCounted(t *testing.T) {
	g := mustGrid(t, "b0g")
	dict := dictionary.NewWordList([]string{"bag", "beg", "big", "bog", "bug", "byg", "bfg"})

	_, _, stats, err := Build(g, dict, Options{})
	require.NoError(t, err)
	// y is a vowel (spec §9), so bag/beg/big/bog/bug/byg all fit; only bfg doesn't.
	assert.Equal(t, 6, stats.Rows)
	assert.Equal(t, 1, stats.Unplaceable)
}
