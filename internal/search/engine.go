package search

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/pders01/sietch/internal/storage"
)

// Result is a journal entry matched by a query.
type Result struct {
	Entry   *storage.Entry
	Score   float64
	Matches []Match
}

// Match represents where text was found
type Match struct {
	Field  string // "name", "message", "record_id", "op"
	Text   string
	Weight float64
}

// Engine scans the journal directly. It is the fallback when no index is
// configured and the reference the bleve engine is tested against.
type Engine struct {
	store *storage.Store
}

func NewEngine(store *storage.Store) *Engine {
	return &Engine{store: store}
}

// DocCount is the number of journal entries the scan covers.
func (e *Engine) DocCount() (int, error) {
	return e.store.Count()
}

// Search scores every journal entry against query, best first.
func (e *Engine) Search(query string, limit int) ([]*Result, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return []*Result{}, nil
	}

	terms := tokenize(query)
	if len(terms) == 0 {
		return []*Result{}, nil
	}

	entries, err := e.store.List(0)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, 0)
	for _, entry := range entries {
		if result := e.searchEntry(entry, terms); result != nil {
			results = append(results, result)
		}
	}

	// Stable keeps newest-first among equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (e *Engine) searchEntry(entry *storage.Entry, terms []string) *Result {
	fields := []struct {
		name   string
		text   string
		weight float64
	}{
		{"name", entry.Name, 4.0},
		{"message", entry.Message, 2.0},
		{"record_id", entry.RecordID, 1.0},
		{"op", string(entry.Op), 0.5},
	}

	var matches []Match
	var total float64
	for _, f := range fields {
		if score := scoreField(f.text, terms, f.weight); score > 0 {
			matches = append(matches, Match{Field: f.name, Text: truncate(f.text, 100), Weight: score})
			total += score
		}
	}
	if total == 0 {
		return nil
	}
	return &Result{Entry: entry, Score: total, Matches: matches}
}

// scoreField calculates relevance score for a field
func scoreField(text string, terms []string, weight float64) float64 {
	if text == "" {
		return 0
	}

	lower := strings.ToLower(text)
	words := tokenize(text)
	if len(words) == 0 {
		return 0
	}

	var score float64
	matchedTerms := 0

	for _, term := range terms {
		if strings.Contains(lower, term) {
			score += 2.0
			matchedTerms++
		}

		for _, word := range words {
			switch {
			case word == term:
				score += 1.5
				matchedTerms++
			case strings.HasPrefix(word, term) || strings.HasSuffix(word, term):
				score += 1.0
				matchedTerms++
			case strings.Contains(word, term):
				score += 0.5
				matchedTerms++
			}
		}
	}

	if len(terms) > 1 && matchedTerms > 1 {
		score *= 1.0 + float64(matchedTerms)/float64(len(terms))
	}

	tf := float64(matchedTerms) / float64(len(words))
	score *= 1.0 + math.Log(1.0+tf)

	return score * weight
}

// tokenize breaks text into lowercase searchable terms, skipping single chars.
func tokenize(text string) []string {
	var terms []string
	current := strings.Builder{}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(unicode.ToLower(r))
		} else if current.Len() > 0 {
			if term := current.String(); len([]rune(term)) > 1 {
				terms = append(terms, term)
			}
			current.Reset()
		}
	}

	if len([]rune(current.String())) > 1 {
		terms = append(terms, current.String())
	}

	return terms
}

func truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen-1]) + "…"
}
