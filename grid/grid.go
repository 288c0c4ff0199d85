// Package grid holds the crossword grid itself: parsing, validation,
// and the handful of read/write operations the rest of the module
// needs (pattern matching, reduction, decoding duplicate detection).
package grid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/crosswordsmith/xwfill/pattern"
)

// ErrMalformedGrid is wrapped by every validation failure New and
// Parse can return.
var ErrMalformedGrid = errors.New("grid: malformed grid")

// Grid is an immutable-by-convention rectangular array of cells, each
// one of: a lowercase letter, '#' (black), '.' (open), '0' (any
// vowel), or '1' (any consonant). Callers that need to mutate a grid
// (the decoder, building a filled copy) should Clone it first.
type Grid struct {
	w, h  int
	cells []byte
}

// New validates and builds a Grid from row-major cell data. Uppercase
// letters are folded to lowercase; any other character is rejected.
func New(w, h int, cells []byte) (Grid, error) {
	if w <= 0 || h <= 0 {
		return Grid{}, fmt.Errorf("%w: non-positive dimensions %dx%d", ErrMalformedGrid, w, h)
	}
	if len(cells) != w*h {
		return Grid{}, fmt.Errorf("%w: expected %d cells for a %dx%d grid, got %d", ErrMalformedGrid, w*h, w, h, len(cells))
	}
	out := make([]byte, len(cells))
	for i, c := range cells {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		switch {
		case c == pattern.Black, c == pattern.Open, c == pattern.AnyVowel, c == pattern.AnyConst:
			out[i] = c
		case c >= 'a' && c <= 'z':
			out[i] = c
		default:
			return Grid{}, fmt.Errorf("%w: illegal cell %q at index %d", ErrMalformedGrid, c, i)
		}
	}
	return Grid{w: w, h: h, cells: out}, nil
}

// Parse reads a grid from text, one row per line. A backtick, dot, or
// question mark all denote an open cell; letters are folded to
// lowercase. Leading blank lines are skipped; the first non-blank line
// fixes the grid's width, and parsing stops at the first line whose
// length disagrees with it.
func Parse(r io.Reader) (Grid, error) {
	sc := bufio.NewScanner(r)
	var lines []string
	width := -1
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if width < 0 {
			if line == "" {
				continue
			}
			width = len(line)
		} else if len(line) != width {
			break
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return Grid{}, err
	}
	if len(lines) == 0 {
		return Grid{}, fmt.Errorf("%w: no rows found", ErrMalformedGrid)
	}

	cells := make([]byte, width*len(lines))
	for j, line := range lines {
		for i := 0; i < width; i++ {
			ch := line[i]
			switch ch {
			case '`', '?':
				ch = pattern.Open
			}
			cells[j*width+i] = ch
		}
	}
	return New(width, len(lines), cells)
}

// Width returns the number of columns.
func (g Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g Grid) Height() int { return g.h }

// At returns the cell at (r, c).
func (g Grid) At(r, c int) byte { return g.cells[r*g.w+c] }

// Set overwrites the cell at (r, c). Callers must not call Set on a
// Grid shared with another goroutine or held elsewhere; Clone first.
func (g *Grid) Set(r, c int, ch byte) { g.cells[r*g.w+c] = ch }

// Clone returns an independent copy whose cells can be mutated via Set
// without affecting the original.
func (g Grid) Clone() Grid {
	cells := make([]byte, len(g.cells))
	copy(cells, g.cells)
	return Grid{w: g.w, h: g.h, cells: cells}
}

// CellAt adapts Grid to the pattern package's CellAt signature.
func (g Grid) CellAt() pattern.CellAt {
	return func(r, c int) byte { return g.At(r, c) }
}

// Repr renders the grid as one line of text per row.
func (g Grid) Repr() string {
	lines := make([]string, g.h)
	for j := 0; j < g.h; j++ {
		lines[j] = string(g.cells[j*g.w : (j+1)*g.w])
	}
	return strings.Join(lines, "\n")
}

// CompleteRuns returns every maximal Across and Down run that
// contains no wildcard cell ('.', '0', or '1') — a run that already
// spells a definite word, verbatim. Runs of any length, including
// length 1, are eligible. Order is Across runs row by row, then Down
// runs column by column; duplicates are not removed.
func (g Grid) CompleteRuns() []string {
	var words []string
	for j := 0; j < g.h; j++ {
		i := 0
		for i < g.w {
			if g.At(j, i) == pattern.Black {
				i++
				continue
			}
			start := i
			valid := true
			for i < g.w && g.At(j, i) != pattern.Black {
				if !isLetter(g.At(j, i)) {
					valid = false
				}
				i++
			}
			if valid {
				words = append(words, string(g.cells[j*g.w+start:j*g.w+i]))
			}
		}
	}
	for i := 0; i < g.w; i++ {
		j := 0
		for j < g.h {
			if g.At(j, i) == pattern.Black {
				j++
				continue
			}
			valid := true
			var run []byte
			for j < g.h && g.At(j, i) != pattern.Black {
				c := g.At(j, i)
				if !isLetter(c) {
					valid = false
				}
				run = append(run, c)
				j++
			}
			if valid {
				words = append(words, string(run))
			}
		}
	}
	return words
}

// DuplicateWord reports the lexicographically first word that occurs
// twice among the grid's complete runs (see CompleteRuns).
func (g Grid) DuplicateWord() (word string, found bool) {
	words := g.CompleteRuns()
	sort.Strings(words)
	for k := 0; k+1 < len(words); k++ {
		if words[k] == words[k+1] {
			return words[k], true
		}
	}
	return "", false
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' }
