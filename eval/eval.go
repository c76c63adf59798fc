// Package eval - Korpus-Evaluation gegen einen laufenden Server
//
// Dieses Modul enthaelt:
// - LoadPairs: laedt parallele Quell-/Referenzdateien
// - Run: uebersetzt den Korpus nebenlaeufig und bewertet die Ergebnisse
// - similarity: normalisierte Levenshtein-Aehnlichkeit in [0, 1]
package eval

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/7blacky7/uebersetzer/api"
)

var ErrNoPairs = errors.New("eval: no sentence pairs to evaluate")

// Pair is one source sentence with its reference translation.
type Pair struct {
	Source    string
	Reference string
}

// Score is the evaluation result of a single pair.
type Score struct {
	Pair

	Result     string
	Similarity float64
	DurationMS int64
	Err        error
}

// Result aggregates the scores of one evaluation run.
type Result struct {
	Scores []Score

	MeanSimilarity float64
	Failed         int
}

// LoadPairs reads parallel corpus files line by line. limit <= 0 loads
// everything; blank source lines are skipped together with their
// reference line.
func LoadPairs(sourcePath, referencePath string, limit int) ([]Pair, error) {
	sourceLines, err := readLines(sourcePath)
	if err != nil {
		return nil, err
	}

	referenceLines, err := readLines(referencePath)
	if err != nil {
		return nil, err
	}

	if len(sourceLines) != len(referenceLines) {
		return nil, fmt.Errorf("eval: corpus files disagree: %d source lines, %d reference lines",
			len(sourceLines), len(referenceLines))
	}

	var pairs []Pair
	for i := range sourceLines {
		if strings.TrimSpace(sourceLines[i]) == "" {
			continue
		}
		pairs = append(pairs, Pair{Source: sourceLines[i], Reference: referenceLines[i]})
		if limit > 0 && len(pairs) == limit {
			break
		}
	}

	return pairs, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	return lines, scanner.Err()
}

// similarity ist 1 fuer identische Saetze und faellt linear mit der
// Edit-Distanz
func similarity(result, reference string) float64 {
	result = strings.TrimSpace(result)
	reference = strings.TrimSpace(reference)

	if result == "" && reference == "" {
		return 1
	}

	longest := max(len([]rune(result)), len([]rune(reference)))
	if longest == 0 {
		return 1
	}

	distance := levenshtein.ComputeDistance(result, reference)
	return 1 - float64(distance)/float64(longest)
}

// Run translates all pairs through the client, at most concurrency
// requests in flight. Per-pair failures are recorded, not fatal.
func Run(ctx context.Context, client *api.Client, pairs []Pair, concurrency int) (*Result, error) {
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}
	if concurrency < 1 {
		concurrency = 1
	}

	scores := make([]Score, len(pairs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, pair := range pairs {
		g.Go(func() error {
			resp, err := client.Translate(ctx, &api.TranslateRequest{Text: pair.Source})

			score := Score{Pair: pair, Err: err}
			if err == nil {
				score.Result = resp.Result
				score.Similarity = similarity(resp.Result, pair.Reference)
				score.DurationMS = resp.Duration
			}

			mu.Lock()
			scores[i] = score
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Scores: scores}
	var similarities []float64
	for _, s := range scores {
		if s.Err != nil {
			result.Failed++
			continue
		}
		similarities = append(similarities, s.Similarity)
	}

	if len(similarities) > 0 {
		result.MeanSimilarity = stat.Mean(similarities, nil)
	}

	return result, nil
}

// Worst returns the n lowest-scoring successful pairs.
func (r *Result) Worst(n int) []Score {
	var ok []Score
	for _, s := range r.Scores {
		if s.Err == nil {
			ok = append(ok, s)
		}
	}

	sort.Slice(ok, func(i, j int) bool { return ok[i].Similarity < ok[j].Similarity })

	if n > len(ok) {
		n = len(ok)
	}
	return ok[:n]
}
