// Package layout carries the pure bookkeeping shared by the reduction
// encoder and the solution decoder: the 54-column-per-slice exact-cover
// layout (spec §4.C) and the cell<->slice index mapping (spec §3's
// "slice table") that lets the compressed matrix mode skip fixed
// cells entirely.
package layout

// ColumnsPerSlice is the width of one grid cell's block of exact-cover
// columns: 26 letter column-pairs (a..z) plus one orientation
// column-pair, each pair being two columns wide.
const ColumnsPerSlice = 54

// OrientationPairIndex is the pair index (0..26) of the orientation
// column-pair within a slice.
const OrientationPairIndex = 26

// OrientationAcrossCol and OrientationDownCol are the local (0..53)
// column offsets within a slice that an Across or Down row places its
// orientation marker in.
const (
	OrientationAcrossCol = 2*OrientationPairIndex + 0
	OrientationDownCol   = 2*OrientationPairIndex + 1
)

// LetterColumn returns the local column offset within a slice for
// letter index m (0..25) and half (0 = left, 1 = right).
func LetterColumn(m, half int) int { return 2*m + half }

// SliceTable maps between a grid's row-major cell index and the dense
// 0..K-1 slice index used to size the exact-cover matrix.
//
// In naive mode every cell is its own slice (K = w*h, identity
// mapping). In compressed mode only open cells (not already fixed to
// a letter or black) get a slice; fixed cells have no slice at all.
type SliceTable struct {
	cellToSlice []int32 // -1 if this cell has no slice
	sliceToCell []int32
}

// NewSliceTable builds the table for a grid of numCells cells. isOpen
// reports whether a given row-major cell index should receive a
// slice; naive forces every cell to receive one regardless of isOpen.
func NewSliceTable(numCells int, isOpen func(cell int) bool, naive bool) *SliceTable {
	t := &SliceTable{cellToSlice: make([]int32, numCells)}
	if naive {
		t.sliceToCell = make([]int32, numCells)
		for i := 0; i < numCells; i++ {
			t.cellToSlice[i] = int32(i)
			t.sliceToCell[i] = int32(i)
		}
		return t
	}
	for i := range t.cellToSlice {
		t.cellToSlice[i] = -1
	}
	for i := 0; i < numCells; i++ {
		if isOpen(i) {
			t.cellToSlice[i] = int32(len(t.sliceToCell))
			t.sliceToCell = append(t.sliceToCell, int32(i))
		}
	}
	return t
}

// NumSlices returns K, the number of slices (and hence ColumnsPerSlice*K
// is the matrix's column count).
func (t *SliceTable) NumSlices() int { return len(t.sliceToCell) }

// CellToSlice returns the slice index for a cell, or ok=false if the
// cell has no slice (a fixed cell under compressed mode).
func (t *SliceTable) CellToSlice(cell int) (slice int, ok bool) {
	v := t.cellToSlice[cell]
	if v < 0 {
		return 0, false
	}
	return int(v), true
}

// SliceToCell returns the row-major cell index a slice corresponds to.
func (t *SliceTable) SliceToCell(slice int) int { return int(t.sliceToCell[slice]) }
