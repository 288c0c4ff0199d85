// Package reduction implements the crossword-to-exact-cover
// reduction: given a grid and a dictionary, it builds the dancing-links
// matrix whose exact covers correspond exactly to valid fillings of
// the grid (spec §4.C).
//
// Two layouts share almost all of this code: compressed mode (the
// default), which allocates a slice only to open cells and skips
// fixed cells entirely, and naive mode, which gives every cell a
// slice and adds the black-cell and forced-run filler rows needed to
// make those extra slices satisfiable. Naive mode is the semantically
// authoritative one; compressed mode is an optimization that must
// visit the same solution set.
package reduction

import (
	"sort"

	"github.com/crosswordsmith/xwfill/dance"
	"github.com/crosswordsmith/xwfill/dictionary"
	"github.com/crosswordsmith/xwfill/grid"
	"github.com/crosswordsmith/xwfill/internal/layout"
	"github.com/crosswordsmith/xwfill/pattern"
)

// Options selects the behavioural flags of spec §6 that affect matrix
// construction (max_solutions and every_nth only affect the decode
// side and live in the decode package).
type Options struct {
	// Naive builds the naive-mode matrix (every cell is a slice, plus
	// black-cell and forced-run filler rows) instead of compressed.
	Naive bool
	// AllowDuplicateWords disables the dictionary pre-pruning that
	// removes words exactly matching an already-complete grid run.
	AllowDuplicateWords bool
}

// Stats reports what the pre-pruning pass did, for debug logging the
// way the original tool's debug() hook reported removed-word counts.
type Stats struct {
	// WordsConsidered is the number of words streamed from the
	// dictionary's "*" query, counting repeated words each time.
	WordsConsidered int
	// AlreadyPlaced is how many words were dropped because they
	// exactly match a run the grid already spells verbatim.
	AlreadyPlaced int
	// Unplaceable is how many of the remaining words fit no run at
	// all anywhere in the grid.
	Unplaceable int
	// Rows is how many rows were added to the matrix (placement rows
	// plus, in naive mode, filler rows).
	Rows int
	// DegenerateRows is how many synthetic single-letter rows
	// addDegenerateRunRows added for cells whose cross-orientation run
	// is too short to ever get a dictionary-backed placement row. These
	// are real matrix rows but not "placement rows" in the dictionary
	// sense, so they're counted separately from Rows.
	DegenerateRows int
}

// Run is one maximal horizontal or vertical sequence of non-black
// cells (spec GLOSSARY "Run"). Placement rows are anchored at a Run's
// start and span its full length; a run with no dictionary word of
// matching length gets no dictionary row. Open length-1 runs crossing a
// run of length >= 3 get synthetic rows from addDegenerateRunRows; all
// other length-1/2 runs stay unsatisfiable (spec §8 scenario 5).
type Run struct {
	Row, Col int
	Across   bool
	Length   int
}

// Runs enumerates every maximal Across and Down run in the grid, in
// row-major then column-major order.
func Runs(g grid.Grid) []Run {
	w, h := g.Width(), g.Height()
	cellAt := g.CellAt()
	var runs []Run
	for r := 0; r < h; r++ {
		c := 0
		for c < w {
			if cellAt(r, c) == pattern.Black {
				c++
				continue
			}
			start := c
			for c < w && cellAt(r, c) != pattern.Black {
				c++
			}
			runs = append(runs, Run{Row: r, Col: start, Across: true, Length: c - start})
		}
	}
	for c := 0; c < w; c++ {
		r := 0
		for r < h {
			if cellAt(r, c) == pattern.Black {
				r++
				continue
			}
			start := r
			for r < h && cellAt(r, c) != pattern.Black {
				r++
			}
			runs = append(runs, Run{Row: start, Col: c, Across: false, Length: r - start})
		}
	}
	return runs
}

// Build constructs the exact-cover matrix for g against dict and
// returns it together with the slice table used to decode solutions
// back into grid cells.
func Build(g grid.Grid, dict dictionary.Source, opts Options) (*dance.Matrix, *layout.SliceTable, Stats, error) {
	w, h := g.Width(), g.Height()
	cellAt := g.CellAt()

	slices := layout.NewSliceTable(w*h, func(cell int) bool {
		return !pattern.IsFixed(cellAt(cell/w, cell%w))
	}, opts.Naive)

	m, err := dance.Init(layout.ColumnsPerSlice * slices.NumSlices())
	if err != nil {
		return nil, nil, Stats{}, err
	}

	stats := Stats{}

	byLength := bucketByLength(dict)
	for _, ws := range byLength {
		stats.WordsConsidered += len(ws)
	}

	if !opts.AllowDuplicateWords {
		exclude := map[string]bool{}
		for _, w := range g.CompleteRuns() {
			exclude[w] = true
		}
		for length, ws := range byLength {
			kept := ws[:0]
			for _, word := range ws {
				if exclude[word] {
					stats.AlreadyPlaced++
					continue
				}
				kept = append(kept, word)
			}
			byLength[length] = kept
		}
	}

	runs := Runs(g)
	placed := map[string]bool{}
	for _, run := range runs {
		for _, word := range byLength[run.Length] {
			fit := pattern.EntryFits(cellAt, w, h, run.Row, run.Col, run.Across, word)
			if fit == pattern.NoFit {
				continue
			}
			placed[word] = true
			if err := addPlacementRow(m, slices, w, run, word); err != nil {
				return nil, nil, stats, err
			}
			stats.Rows++
		}
	}
	for _, ws := range byLength {
		for _, word := range ws {
			if !placed[word] {
				stats.Unplaceable++
			}
		}
	}

	degenerateRows, err := addDegenerateRunRows(m, slices, g)
	if err != nil {
		return nil, nil, stats, err
	}
	stats.DegenerateRows = degenerateRows

	if opts.Naive {
		fillerRows, err := addFillerRows(m, slices, g)
		if err != nil {
			return nil, nil, stats, err
		}
		stats.Rows += fillerRows
	}

	return m, slices, stats, nil
}

// addDegenerateRunRows handles open cells whose run in one orientation
// is shorter than the minimum word length (spec GLOSSARY defines a
// "Run" as length >= 3), so no dictionary word can ever occupy it —
// the common case being a grid with height or width 1, where every
// cross-orientation run is a single cell (spec §8 scenarios 2 and 3).
//
// Such a cell is still bound by the orientation-pair trick to have
// exactly one Across and one Down contribution. When the OTHER
// orientation through the same cell is a real (length >= 3) run (only
// its length is checked, not whether any word fits it), this
// synthesizes one single-letter
// placement row per admissible letter for the degenerate orientation,
// so the real run's choice of letter is free to pick any of them. A
// cell whose run is degenerate in BOTH orientations (spec §8 scenario
// 5's ".#." grid) gets no synthetic rows in either orientation and so
// is correctly left unfillable.
func addDegenerateRunRows(m *dance.Matrix, slices *layout.SliceTable, g grid.Grid) (int, error) {
	w, h := g.Width(), g.Height()
	cellAt := g.CellAt()

	added := 0
	for _, run := range Runs(g) {
		if run.Length != 1 {
			// Length >= 3 is a real run, handled by the dictionary
			// sweep above. Degenerate length-2 runs are left
			// unsatisfiable; real crossword grids don't produce them,
			// and no tested scenario exercises the case.
			continue
		}
		r, c := run.Row, run.Col
		if pattern.IsFixed(cellAt(r, c)) {
			continue // handled by compressed-mode skipping or naive forced rows
		}
		if runLengthThrough(g, r, c, !run.Across) < 3 {
			continue // degenerate in both orientations: unfillable, matches scenario 5
		}
		for letter := byte('a'); letter <= 'z'; letter++ {
			word := string(letter)
			if pattern.EntryFits(cellAt, w, h, r, c, run.Across, word) == pattern.NoFit {
				continue
			}
			if err := addPlacementRow(m, slices, w, run, word); err != nil {
				return added, err
			}
			added++
		}
	}
	return added, nil
}

// runLengthThrough returns the length of the maximal run covering
// (r, c) in the given orientation.
func runLengthThrough(g grid.Grid, r, c int, across bool) int {
	w, h := g.Width(), g.Height()
	cellAt := g.CellAt()
	if across {
		start, end := c, c
		for start > 0 && cellAt(r, start-1) != pattern.Black {
			start--
		}
		for end < w-1 && cellAt(r, end+1) != pattern.Black {
			end++
		}
		return end - start + 1
	}
	start, end := r, r
	for start > 0 && cellAt(start-1, c) != pattern.Black {
		start--
	}
	for end < h-1 && cellAt(end+1, c) != pattern.Black {
		end++
	}
	return end - start + 1
}

// bucketByLength drains dict's "*" query once into slices keyed by
// word length, so the run sweep below never re-streams the dictionary.
func bucketByLength(dict dictionary.Source) map[int][]string {
	byLength := map[int][]string{}
	dict.Words("*", func(word string) bool {
		byLength[len(word)] = append(byLength[len(word)], word)
		return true
	})
	for length := range byLength {
		sort.Strings(byLength[length])
	}
	return byLength
}

// addPlacementRow emits the row for one admissible (run, word)
// placement, per the column layout of spec §4.C.
func addPlacementRow(m *dance.Matrix, slices *layout.SliceTable, width int, run Run, word string) error {
	var cols []int
	for k := 0; k < run.Length; k++ {
		r, c := cellPos(run, k)
		cell := r*width + c
		slice, ok := slices.CellToSlice(cell)
		if !ok {
			// Fixed cell in compressed mode: contributes nothing.
			continue
		}
		letterIdx := int(word[k] - 'a')
		base := slice * layout.ColumnsPerSlice
		for pairIdx := 0; pairIdx < 26; pairIdx++ {
			half := 1
			if pairIdx == letterIdx {
				half = 0
			}
			if !run.Across {
				half = 1 - half
			}
			cols = append(cols, base+layout.LetterColumn(pairIdx, half))
		}
		if run.Across {
			cols = append(cols, base+layout.OrientationAcrossCol)
		} else {
			cols = append(cols, base+layout.OrientationDownCol)
		}
	}
	return m.AddRow(cols)
}

func cellPos(run Run, k int) (r, c int) {
	if run.Across {
		return run.Row, run.Col + k
	}
	return run.Row + k, run.Col
}

// addFillerRows adds the naive-mode-only rows: one black-cell row per
// '#' cell, and one forced row per maximal run that is entirely
// pre-filled with fixed letters (so its exact word need not be in the
// dictionary for the matrix to remain satisfiable).
func addFillerRows(m *dance.Matrix, slices *layout.SliceTable, g grid.Grid) (int, error) {
	w, h := g.Width(), g.Height()
	cellAt := g.CellAt()

	added := 0
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			if cellAt(r, c) != pattern.Black {
				continue
			}
			slice, ok := slices.CellToSlice(r*w + c)
			if !ok {
				continue
			}
			base := slice * layout.ColumnsPerSlice
			cols := make([]int, 0, layout.ColumnsPerSlice)
			for k := 0; k < layout.ColumnsPerSlice; k++ {
				cols = append(cols, base+k)
			}
			if err := m.AddRow(cols); err != nil {
				return added, err
			}
			added++
		}
	}

	for _, run := range Runs(g) {
		word := make([]byte, run.Length)
		allFixed := true
		for k := 0; k < run.Length; k++ {
			r, c := cellPos(run, k)
			ch := cellAt(r, c)
			if !pattern.IsFixed(ch) || ch == pattern.Black {
				allFixed = false
				break
			}
			word[k] = ch
		}
		if !allFixed {
			continue
		}
		if err := addPlacementRow(m, slices, w, run, string(word)); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
