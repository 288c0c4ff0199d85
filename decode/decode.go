// Package decode reconstructs a filled grid from one exact cover
// produced by the dance solver, and rejects covers that would leave
// two identical complete runs in the grid (spec §4.D).
package decode

import (
	"github.com/crosswordsmith/xwfill/dance"
	"github.com/crosswordsmith/xwfill/grid"
	"github.com/crosswordsmith/xwfill/internal/layout"
)

// Decoder turns dance solution stacks into filled grids. It owns the
// per-search "print every Nth, stop after M" counters explicitly
// rather than as package-level state, so two concurrent decodes (or
// two calls in the same process) never share state (spec §5, §9).
type Decoder struct {
	base   grid.Grid
	slices *layout.SliceTable
	width  int

	allowDuplicateWords bool
	everyNth            int
	maxSolutions        int

	acceptableSoFar int
	printedSoFar    int
	skippedSoFar    int
}

// New builds a Decoder for grids filled against the given slice table.
// everyNth <= 1 means every acceptable solution is emitted; maxSolutions
// <= 0 means no cap.
func New(base grid.Grid, slices *layout.SliceTable, allowDuplicateWords bool, everyNth, maxSolutions int) *Decoder {
	if everyNth < 1 {
		everyNth = 1
	}
	return &Decoder{
		base:                base,
		slices:              slices,
		width:               base.Width(),
		allowDuplicateWords: allowDuplicateWords,
		everyNth:            everyNth,
		maxSolutions:        maxSolutions,
	}
}

// BailSentinel is returned by Callback to the dance solver once
// maxSolutions acceptable solutions have been emitted.
const BailSentinel int64 = -1

// PrintedSoFar and SkippedSoFar report the decoder's running counts,
// mirroring the original tool's printed_so_far/skipped_so_far: every
// non-duplicate cover increments one or the other, duplicates
// increment neither.
func (d *Decoder) PrintedSoFar() int { return d.printedSoFar }
func (d *Decoder) SkippedSoFar() int { return d.skippedSoFar }

// Callback adapts Decoder to dance.SolutionFunc. sink is invoked once
// per emitted (non-duplicate, non-skipped-by-everyNth) solution grid.
func (d *Decoder) Callback(sink func(grid.Grid)) dance.SolutionFunc {
	return func(solution []dance.NodeRef) int64 {
		filled, ok := d.Decode(solution)
		if !ok {
			// Duplicate run: dropped silently, never counted.
			return 0
		}

		d.acceptableSoFar++
		if (d.acceptableSoFar-1)%d.everyNth != 0 {
			d.skippedSoFar++
			return 0
		}

		sink(filled)
		d.printedSoFar++
		if d.maxSolutions > 0 && d.printedSoFar >= d.maxSolutions {
			return BailSentinel
		}
		return 1
	}
}

// Decode reconstructs one filled grid from a chosen row set. ok is
// false if duplicate-word rejection is enabled and the filled grid
// contains two identical complete runs.
func (d *Decoder) Decode(solution []dance.NodeRef) (filled grid.Grid, ok bool) {
	filled = d.base.Clone()

	for _, node := range solution {
		across, isFiller := classifyRow(node)
		if isFiller || !across {
			continue
		}
		d.writeAcrossRow(&filled, node)
	}

	if !d.allowDuplicateWords {
		if _, dup := filled.DuplicateWord(); dup {
			return grid.Grid{}, false
		}
	}
	return filled, true
}

// classifyRow walks a chosen row's horizontal ring once and reports
// whether it is an Across placement row, and whether it is a filler
// row (naive-mode black-cell row, which touches both orientation
// halves of its one slice) that carries no letters to write.
func classifyRow(start dance.NodeRef) (across, isFiller bool) {
	localOrientation := map[int]struct{ across, down bool }{}
	n := start
	for {
		local := n.Column() % layout.ColumnsPerSlice
		slice := n.Column() / layout.ColumnsPerSlice
		switch local {
		case layout.OrientationAcrossCol:
			o := localOrientation[slice]
			o.across = true
			localOrientation[slice] = o
			across = true
		case layout.OrientationDownCol:
			o := localOrientation[slice]
			o.down = true
			localOrientation[slice] = o
		}
		n = n.Right()
		if n == start {
			break
		}
	}
	for _, o := range localOrientation {
		if o.across && o.down {
			return false, true
		}
	}
	return across, false
}

// writeAcrossRow decodes the letters of one chosen Across placement
// row and writes them into filled. Each cell's letter is read off the
// letter-pair that carries the "left half" 1 (spec §4.D step 3).
func (d *Decoder) writeAcrossRow(filled *grid.Grid, start dance.NodeRef) {
	leftHalf := map[int]int{} // slice -> pair index m whose left half is set
	n := start
	for {
		local := n.Column() % layout.ColumnsPerSlice
		slice := n.Column() / layout.ColumnsPerSlice
		if local < layout.OrientationAcrossCol && local%2 == 0 {
			leftHalf[slice] = local / 2
		}
		n = n.Right()
		if n == start {
			break
		}
	}
	for slice, m := range leftHalf {
		cell := d.slices.SliceToCell(slice)
		r, c := cell/d.width, cell%d.width
		filled.Set(r, c, byte('a'+m))
	}
}
