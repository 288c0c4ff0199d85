// Command xwfill fills a crossword grid against a dictionary using the
// Dancing Links exact-cover engine. It keeps the teacher's CLI shape
// (profiling flags, a context.WithTimeout wrapping the whole run, a
// bufio.Scanner word-list loader) generalized to load a grid file and
// preferred/obscure/excluded word lists instead of generating a grid
// from scratch.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/namsral/flag"
	"github.com/rs/zerolog"

	"github.com/crosswordsmith/xwfill/dictionary"
	"github.com/crosswordsmith/xwfill/fill"
	"github.com/crosswordsmith/xwfill/grid"
)

func main() {
	fs := flag.NewFlagSetWithEnvPrefix("xwfill", "XWFILL", flag.ContinueOnError)

	gridFile := fs.String("grid", "", "the grid file to load (required)")
	dictFile := fs.String("d", "", "the dictionary file to load, one word per line (required)")
	obscureFile := fs.String("obscure", "", "an additional dictionary file of obscure words")
	excludedFile := fs.String("excluded", "", "a dictionary file of words to exclude from both of the above")
	outFile := fs.String("o", "", "the file to write solutions to (default: stdout)")

	minWordLength := fs.Int("min_length", 3, "words shorter than this are dropped when loading dictionary files")
	maxSolutions := fs.Int("n", 0, "stop after this many solutions (0: unlimited)")
	everyNth := fs.Int("every", 1, "print only every Nth acceptable solution")
	allowDuplicateWords := fs.Bool("allow_duplicate_words", false, "allow the same word to fill more than one run")
	naive := fs.Bool("naive", false, "use the naive (every-cell-is-a-slice) matrix instead of the compressed one")

	debug := fs.Bool("debug", false, "enable debug logging")
	timeout := fs.Duration("timeout", 1*time.Minute, "the timeout for loading the dictionary files; it does not bound grid loading or the solve itself, which has no internal timeout")

	profile := fs.Bool("profile", false, "profile the run")
	profileFile := fs.String("profile-file", "cpu.pprof", "the file to write the CPU profile to")
	memoryProfileFile := fs.String("memory-profile-file", "mem.pprof", "the file to write the memory profile to")

	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := newLogger(*debug)

	if *gridFile == "" || *dictFile == "" {
		logger.Fatal().Msg("-grid and -d are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *profile {
		f, err := os.Create(*profileFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("creating CPU profile file")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Fatal().Err(err).Msg("starting CPU profile")
		}
		defer pprof.StopCPUProfile()

		mf, err := os.Create(*memoryProfileFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("creating memory profile file")
		}
		defer mf.Close()
		defer pprof.WriteHeapProfile(mf)
	}

	g, err := loadGrid(*gridFile)
	if err != nil {
		logger.Fatal().Err(err).Str("file", *gridFile).Msg("loading grid")
	}
	// "so the user can see whether we got it right", per the original
	// load_grid's behavior.
	logger.Info().Msgf("loaded %dx%d grid:\n%s", g.Width(), g.Height(), g.Repr())

	words, err := loadWordList(ctx, *dictFile, *minWordLength)
	if err != nil {
		logger.Fatal().Err(err).Str("file", *dictFile).Msg("loading dictionary")
	}
	if *obscureFile != "" {
		obscure, err := loadWordList(ctx, *obscureFile, *minWordLength)
		if err != nil {
			logger.Fatal().Err(err).Str("file", *obscureFile).Msg("loading obscure words")
		}
		words = append(words, obscure...)
	}
	if *excludedFile != "" {
		excluded, err := loadWordList(ctx, *excludedFile, *minWordLength)
		if err != nil {
			logger.Fatal().Err(err).Str("file", *excludedFile).Msg("loading excluded words")
		}
		words = excludeWords(words, excluded)
	}
	logger.Debug().Int("words", len(words)).Msg("dictionary loaded")

	out := os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			logger.Fatal().Err(err).Str("file", *outFile).Msg("creating output file")
		}
		defer f.Close()
		out = f
	}

	opts := fill.Options{
		AllowDuplicateWords: *allowDuplicateWords,
		MaxSolutions:        *maxSolutions,
		EveryNth:            *everyNth,
		NaiveMatrix:         *naive,
	}

	dict := dictionary.NewWordList(words)
	printed := 0
	stats, err := fill.Solve(g, dict, opts, func(filled grid.Grid) {
		printed++
		fmt.Fprintf(out, "--------------------------------\n%s\n", filled.Repr())
		logger.Debug().Int("solution", printed).Msg("solution emitted")
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("solving")
	}

	logger.Info().
		Int("columns", stats.Columns).
		Int("rows", stats.Rows).
		Int("already_placed", stats.AlreadyPlaced).
		Int("unplaceable", stats.Unplaceable).
		Int("solutions", stats.Solutions).
		Int("skipped", stats.SkippedSoFar).
		Msg("done")

	if ctx.Err() != nil {
		logger.Warn().Err(ctx.Err()).Msg("run did not finish before the timeout")
	}
}

func newLogger(debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func loadGrid(path string) (grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return grid.Grid{}, err
	}
	defer f.Close()
	return grid.Parse(f)
}

// loadWordList mirrors the teacher's loadFromFile: lowercase, trim,
// skip blank lines and '#'-prefixed comments, drop words shorter than
// minWordLength.
func loadWordList(ctx context.Context, path string, minWordLength int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		if len(word) < minWordLength {
			continue
		}
		words = append(words, word)
	}
	return words, scanner.Err()
}

func excludeWords(words, excluded []string) []string {
	drop := make(map[string]bool, len(excluded))
	for _, w := range excluded {
		drop[w] = true
	}
	kept := words[:0]
	for _, w := range words {
		if !drop[w] {
			kept = append(kept, w)
		}
	}
	return kept
}
