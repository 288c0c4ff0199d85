// Package httpapi exposes the filler as an HTTP Cloud Function, the
// way the teacher's src/main.go exposed its grid generator at
// /generate-grid: same CORS and JSON envelope conventions, same
// BigQuery-backed word lookup, now filling a supplied grid instead of
// generating one from scratch.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/crosswordsmith/xwfill/dictionary"
	"github.com/crosswordsmith/xwfill/fill"
	"github.com/crosswordsmith/xwfill/grid"
)

// FillGridRequest is the JSON body /fill-grid accepts.
type FillGridRequest struct {
	Grid                string   `json:"grid"`
	WordScope           string   `json:"wordScope"`
	IncludeObscure      bool     `json:"includeObscure"`
	PreferredWords      []string `json:"preferredWords"`
	ObscureWords        []string `json:"obscureWords"`
	ExcludedWords       []string `json:"excludedWords"`
	MaxSolutions        int      `json:"maxSolutions"`
	EveryNth            int      `json:"everyNth"`
	AllowDuplicateWords bool     `json:"allowDuplicateWords"`
	Naive               bool     `json:"naive"`
}

// FillGridResponse is the JSON body /fill-grid returns.
type FillGridResponse struct {
	Success   bool     `json:"success"`
	Solutions []string `json:"solutions"`
	Error     string   `json:"error,omitempty"`
}

// WordSource abstracts the BigQuery lookup so tests can substitute a
// fake without touching the network; BigQuerySource is the production
// implementation.
type WordSource interface {
	Words(ctx context.Context, scope string, includeObscure bool) (regular, obscure []string, err error)
}

// Handler serves /fill-grid. words is nil in deployments that only
// ever supply preferredWords/obscureWords/excludedWords inline.
type Handler struct {
	words WordSource
}

// NewHandler builds a Handler backed by words for requests that name
// a wordScope.
func NewHandler(words WordSource) *Handler {
	return &Handler{words: words}
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

// FillGrid is the HTTP Cloud Function entry point, registered against
// /fill-grid the way generateGrid was registered against
// /generate-grid.
func (h *Handler) FillGrid(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "method %s not allowed"}`, r.Method)
		return
	}

	var req FillGridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("invalid JSON body")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(FillGridResponse{Error: fmt.Sprintf("invalid JSON: %v", err)})
		return
	}

	solutions, err := h.execute(r.Context(), req)
	resp := FillGridResponse{Success: err == nil, Solutions: solutions}
	if err != nil {
		resp.Error = err.Error()
	} else if len(solutions) == 0 {
		resp.Error = "no solution fills this grid with the given word lists"
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Msg("marshaling response")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "internal server error"}`)
	}
}

func (h *Handler) execute(ctx context.Context, req FillGridRequest) ([]string, error) {
	if req.Grid == "" {
		return nil, fmt.Errorf("grid must not be empty")
	}

	g, err := grid.Parse(strings.NewReader(req.Grid))
	if err != nil {
		return nil, fmt.Errorf("parsing grid: %w", err)
	}

	for i, word := range req.PreferredWords {
		req.PreferredWords[i] = strings.ToLower(word)
	}
	for i, word := range req.ObscureWords {
		req.ObscureWords[i] = strings.ToLower(word)
	}
	for i, word := range req.ExcludedWords {
		req.ExcludedWords[i] = strings.ToLower(word)
	}

	words := append([]string{}, req.PreferredWords...)
	if req.WordScope != "" {
		if h.words == nil {
			return nil, fmt.Errorf("wordScope given but no word source is configured")
		}
		regular, obscure, err := h.words.Words(ctx, req.WordScope, req.IncludeObscure)
		if err != nil {
			return nil, fmt.Errorf("looking up word scope %q: %w", req.WordScope, err)
		}
		log.Debug().Str("scope", req.WordScope).Int("regular", len(regular)).Int("obscure", len(obscure)).Msg("loaded words")
		words = append(words, regular...)
		if req.IncludeObscure {
			words = append(words, obscure...)
		}
	}
	words = append(words, req.ObscureWords...)
	if len(words) == 0 {
		return nil, fmt.Errorf("no words supplied: set preferredWords or wordScope")
	}
	words = excludeWords(words, req.ExcludedWords)

	dict := dictionary.NewWordList(words)
	opts := fill.Options{
		AllowDuplicateWords: req.AllowDuplicateWords,
		MaxSolutions:        req.MaxSolutions,
		EveryNth:            req.EveryNth,
		NaiveMatrix:         req.Naive,
	}

	var out []string
	stats, err := fill.Solve(g, dict, opts, func(filled grid.Grid) {
		out = append(out, filled.Repr())
	})
	if err != nil {
		return nil, fmt.Errorf("fill.Solve: %w", err)
	}
	log.Info().
		Int("rows", stats.Rows).
		Int("columns", stats.Columns).
		Int("solutions", stats.Solutions).
		Msg("fill-grid request completed")

	return out, nil
}

func excludeWords(words, excluded []string) []string {
	if len(excluded) == 0 {
		return words
	}
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
