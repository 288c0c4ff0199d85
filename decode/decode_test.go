package decode

import (
	"testing"

	"github.com/crosswordsmith/xwfill/dictionary"
	"github.com/crosswordsmith/xwfill/grid"
	"github.com/crosswordsmith/xwfill/reduction"
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

func TestDecoder_DecodeReconstructsFilledGrid(t *testing.T) {
	g := mustGrid(t, ".AS", ".R.", "ETA")
	dict := dictionary.NewWordList([]string{"has", "hie", "ire", "eta", "art", "sea"})

	m, slices, _, err := reduction.Build(g, dict, reduction.Options{})
	require.NoError(t, err)
	defer m.Free()

	dec := New(g, slices, false, 0, 0)

	var filled []grid.Grid
	m.Solve(dec.Callback(func(out grid.Grid) { filled = append(filled, out) }))

	require.Len(t, filled, 1)
	assert.Equal(t, "has\nire\neta", filled[0].Repr())
	assert.Equal(t, 1, dec.PrintedSoFar())
	assert.Equal(t, 0, dec.SkippedSoFar())
}

func TestDecoder_CallbackStopsAtMaxSolutions(t *testing.T) {
	g := mustGrid(t, "b0g")
	dict := dictionary.NewWordList([]string{"bag", "beg", "big"})

	m, slices, _, err := reduction.Build(g, dict, reduction.Options{})
	require.NoError(t, err)
	defer m.Free()

	dec := New(g, slices, false, 0, 1)

	var filled []grid.Grid
	m.Solve(dec.Callback(func(out grid.Grid) { filled = append(filled, out) }))

	assert.Len(t, filled, 1)
	assert.Equal(t, 1, dec.PrintedSoFar())
}

func TestDecoder_CallbackHonoursEveryNth(t *testing.T) {
	g := mustGrid(t, "b0g")
	dict := dictionary.NewWordList([]string{"bag", "beg", "big", "bog"})

	m, slices, _, err := reduction.Build(g, dict, reduction.Options{})
	require.NoError(t, err)
	defer m.Free()

	dec := New(g, slices, false, 2, 0)

	var filled []grid.Grid
	m.Solve(dec.Callback(func(out grid.Grid) { filled = append(filled, out) }))

	// The S-heuristic branches on the "a" right-half column, so covers
	// arrive as beg, big, bog, bag; every 2nd keeps the 1st and 3rd.
	require.Len(t, filled, 2)
	assert.Equal(t, "beg", filled[0].Repr())
	assert.Equal(t, "bog", filled[1].Repr())
	assert.Equal(t, 2, dec.SkippedSoFar())
}

func TestDecoder_DecodeRejectsDuplicateRuns(t *testing.T) {
	g := mustGrid(t, "cat", "...", "cat")
	dict := dictionary.NewWordList([]string{"coc", "aba", "tot", "obo"})

	m, slices, _, err := reduction.Build(g, dict, reduction.Options{})
	require.NoError(t, err)
	defer m.Free()

	dec := New(g, slices, false, 0, 0)

	var filled []grid.Grid
	m.Solve(dec.Callback(func(out grid.Grid) { filled = append(filled, out) }))

	assert.Empty(t, filled, "the only cover duplicates the cat/cat runs and must be rejected")
}
