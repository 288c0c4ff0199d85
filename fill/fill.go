// Package fill is the filler driver: it wires the pattern matcher,
// the reduction encoder, the dance exact-cover engine, and the
// solution decoder into the single entry point spec §2's data-flow
// diagram describes. Everything here is a thin seam over those four
// packages — no algorithmic content of its own.
package fill

import (
	"fmt"

	"github.com/crosswordsmith/xwfill/decode"
	"github.com/crosswordsmith/xwfill/dictionary"
	"github.com/crosswordsmith/xwfill/grid"
	"github.com/crosswordsmith/xwfill/reduction"
)

// Options gathers every behavioural flag spec §6 names.
type Options struct {
	// AllowDuplicateWords disables the duplicate-run precondition
	// check, the dictionary's already-placed pruning, and the
	// decoder's duplicate-solution filter, all at once.
	AllowDuplicateWords bool
	// MaxSolutions caps the number of emitted solutions; 0 means
	// unlimited.
	MaxSolutions int
	// EveryNth emits only every Nth otherwise-acceptable solution;
	// values below 1 are treated as 1 (emit every one).
	EveryNth int
	// NaiveMatrix builds the naive all-cells-are-slices matrix with
	// filler rows instead of the compressed one.
	NaiveMatrix bool
}

// ErrDuplicateRuns is returned by Solve when the input grid already
// contains two identical complete runs and AllowDuplicateWords is
// false (spec §4.C "Initial duplicate check").
var ErrDuplicateRuns = fmt.Errorf("fill: grid already contains a duplicate complete run")

// Stats reports what the run did, for CLI/httpapi debug logging.
type Stats struct {
	reduction.Stats
	Columns      int
	Rows         int
	Solutions    int
	SkippedSoFar int
}

// Solve runs the filler against g and dict and invokes sink once per
// emitted filled grid, in the deterministic order spec §5 describes.
// It returns once the dance search completes or bails out because
// MaxSolutions was reached.
func Solve(g grid.Grid, dict dictionary.Source, opts Options, sink func(grid.Grid)) (Stats, error) {
	if !opts.AllowDuplicateWords {
		if word, dup := g.DuplicateWord(); dup {
			return Stats{}, fmt.Errorf("%w: %q", ErrDuplicateRuns, word)
		}
	}

	m, slices, rstats, err := reduction.Build(g, dict, reduction.Options{
		Naive:               opts.NaiveMatrix,
		AllowDuplicateWords: opts.AllowDuplicateWords,
	})
	if err != nil {
		return Stats{}, fmt.Errorf("fill: building matrix: %w", err)
	}
	defer m.Free()

	dec := decode.New(g, slices, opts.AllowDuplicateWords, opts.EveryNth, opts.MaxSolutions)

	solutions := 0
	m.Solve(dec.Callback(func(filled grid.Grid) {
		solutions++
		sink(filled)
	}))

	return Stats{
		Stats:        rstats,
		Columns:      m.NumColumns(),
		Rows:         m.NumRows(),
		Solutions:    solutions,
		SkippedSoFar: dec.SkippedSoFar(),
	}, nil
}

// SolveAll is a convenience wrapper over Solve that collects every
// emitted grid's textual representation instead of streaming them.
func SolveAll(g grid.Grid, dict dictionary.Source, opts Options) ([]string, Stats, error) {
	var out []string
	stats, err := Solve(g, dict, opts, func(filled grid.Grid) {
		out = append(out, filled.Repr())
	})
	return out, stats, err
}
