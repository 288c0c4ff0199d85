package layout

import "testing"

func TestLetterColumn_LeftAndRightHalvesAreAdjacent(t *testing.T) {
	if got := LetterColumn(5, 0); got != 10 {
		t.Fatalf("LetterColumn(5, 0) = %d, want 10", got)
	}
	if got := LetterColumn(5, 1); got != 11 {
		t.Fatalf("LetterColumn(5, 1) = %d, want 11", got)
	}
}

func TestOrientationColumns_FollowTheLetterPairs(t *testing.T) {
	if OrientationAcrossCol != 52 || OrientationDownCol != 53 {
		t.Fatalf("orientation columns = (%d, %d), want (52, 53)", OrientationAcrossCol, OrientationDownCol)
	}
}

func TestNewSliceTable_NaiveAssignsEveryCellIdentically(t *testing.T) {
	table := NewSliceTable(6, func(cell int) bool { return cell%2 == 0 }, true)
	if table.NumSlices() != 6 {
		t.Fatalf("NumSlices() = %d, want 6", table.NumSlices())
	}
	for cell := 0; cell < 6; cell++ {
		slice, ok := table.CellToSlice(cell)
		if !ok || slice != cell {
			t.Fatalf("CellToSlice(%d) = (%d, %v), want (%d, true)", cell, slice, ok, cell)
		}
	}
}

func TestNewSliceTable_CompressedSkipsClosedCells(t *testing.T) {
	open := map[int]bool{1: true, 3: true, 4: true}
	table := NewSliceTable(5, func(cell int) bool { return open[cell] }, false)

	if table.NumSlices() != 3 {
		t.Fatalf("NumSlices() = %d, want 3", table.NumSlices())
	}
	if _, ok := table.CellToSlice(0); ok {
		t.Fatal("CellToSlice(0) should have no slice: cell 0 is not open")
	}
	for _, cell := range []int{1, 3, 4} {
		if _, ok := table.CellToSlice(cell); !ok {
			t.Fatalf("CellToSlice(%d) should have a slice: cell %d is open", cell, cell)
		}
	}
}

func TestSliceToCell_RoundTripsWithCellToSlice(t *testing.T) {
	open := map[int]bool{0: true, 2: true}
	table := NewSliceTable(3, func(cell int) bool { return open[cell] }, false)

	for cell := range open {
		slice, ok := table.CellToSlice(cell)
		if !ok {
			t.Fatalf("CellToSlice(%d) unexpectedly missing", cell)
		}
		if got := table.SliceToCell(slice); got != cell {
			t.Fatalf("SliceToCell(%d) = %d, want %d", slice, got, cell)
		}
	}
}
