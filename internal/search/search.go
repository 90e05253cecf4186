// Package search ranks package names against a query by Sørensen–Dice
// similarity over character bigrams.
package search

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

const (
	DefaultLimit    = 5
	DefaultMinScore = 0.7

	suggestLimit    = 3
	suggestMinScore = 0.5
)

type Match struct {
	Name  string
	Score float64
}

type Searcher struct {
	metric   strutil.StringMetric
	limit    int
	minScore float64
}

type Option func(*Searcher)

// WithLimit caps the number of results. Values below 1 are ignored.
func WithLimit(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithMinScore drops results scoring at or below score.
func WithMinScore(score float64) Option {
	return func(s *Searcher) {
		s.minScore = score
	}
}

func New(opts ...Option) *Searcher {
	dice := metrics.NewSorensenDice()
	dice.CaseSensitive = false

	s := &Searcher{
		metric:   dice,
		limit:    DefaultLimit,
		minScore: DefaultMinScore,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns the best names for query, highest score first. Names with
// equal scores keep their catalog order.
func (s *Searcher) Search(query string, names []string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	var matches []Match
	for _, name := range names {
		score := strutil.Similarity(query, name, s.metric)
		if score > s.minScore {
			matches = append(matches, Match{Name: name, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > s.limit {
		matches = matches[:s.limit]
	}
	return matches
}

// Suggest returns a few loosely similar names, for "did you mean" hints.
func Suggest(query string, names []string) []string {
	s := New(WithLimit(suggestLimit), WithMinScore(suggestMinScore))

	var out []string
	for _, m := range s.Search(query, names) {
		if m.Name == query {
			continue
		}
		out = append(out, m.Name)
	}
	return out
}
