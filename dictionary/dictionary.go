// Package dictionary defines the word-source contract the filler
// consumes, plus a minimal in-memory implementation of it. The
// original C program kept a compressed on-disk dictionary format and
// command-line tools to build and query it; persisting or compressing
// that store is explicitly out of scope here, so this package only
// needs to satisfy Source.
package dictionary

import (
	"bufio"
	"io"
	"strings"
)

// Source streams every word it knows about matching pattern to visit,
// stopping early if visit returns false. The filler always queries
// with pattern "*" today; pattern is threaded through anyway so a
// future Source backed by a real index (a trie, a compressed store)
// can narrow its own scan instead of being forced to stream
// everything.
type Source interface {
	Words(pattern string, visit func(word string) bool)
}

// WordList is a Source backed by a plain slice of words held in
// memory, case-folded to lowercase at construction time.
type WordList struct {
	words []string
}

// NewWordList builds a WordList from a slice of words.
func NewWordList(words []string) *WordList {
	wl := &WordList{words: make([]string, len(words))}
	for i, w := range words {
		wl.words[i] = strings.ToLower(w)
	}
	return wl
}

// Load reads one word per line from r, skipping blank lines and lines
// beginning with '#' (a comment convention, not a grid cell).
func Load(r io.Reader) (*WordList, error) {
	sc := bufio.NewScanner(r)
	var words []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.ToLower(line))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &WordList{words: words}, nil
}

// Words implements Source. pattern is ignored beyond the documented
// "*" convention: WordList has no index to narrow against, so it
// always streams its full contents and lets the caller filter.
func (wl *WordList) Words(pattern string, visit func(word string) bool) {
	for _, w := range wl.words {
		if !visit(w) {
			return
		}
	}
}

// Len reports how many words the list holds.
func (wl *WordList) Len() int { return len(wl.words) }
