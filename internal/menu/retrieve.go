package menu

import (
	"regexp"
	"sort"
	"strings"

	"github.com/spec-kit/menu-assistant/internal/domain"
)

// DefaultMaxResults bounds how many items a retrieval returns.
const DefaultMaxResults = 40

// genericTriggers short-circuit retrieval for vague or menu-wide questions in
// either language.
var genericTriggers = []string{
	"recommend", "suggest", "menu", "best", "what",
	"enfant", "child", "children", "kids",
	"menu enfant", "children's menu", "kids menu",
	"prix", "price", "coût", "cost",
}

var tokenSplit = regexp.MustCompile(`\W+`)

// RetrieveRelevant narrows the catalogue to items relevant to the query.
// Generic trigger terms return the first maxResults items unfiltered;
// otherwise items are scored by token occurrences across all bilingual
// fields (2 for an exact substring hit, 1 for a naive plural hit), sorted by
// descending score with original order breaking ties.
func RetrieveRelevant(items []domain.MenuItem, query string, maxResults int) []domain.MenuItem {
	if query == "" || len(items) == 0 {
		return nil
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	text := strings.ToLower(query)
	for _, trigger := range genericTriggers {
		if strings.Contains(text, trigger) {
			return capSlice(items, maxResults)
		}
	}

	tokens := tokenize(text)

	type scored struct {
		item  domain.MenuItem
		score int
	}
	var matches []scored
	for _, it := range items {
		hay := it.SearchText()
		score := 0
		for _, tk := range tokens {
			if len(tk) < 2 {
				continue
			}
			if strings.Contains(hay, tk) {
				score += 2
			}
			if strings.Contains(hay, tk+"s") {
				score++
			}
		}
		if score > 0 {
			matches = append(matches, scored{item: it, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]domain.MenuItem, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.item)
	}
	return capSlice(out, maxResults)
}

func tokenize(text string) []string {
	parts := tokenSplit.Split(text, -1)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func capSlice(items []domain.MenuItem, max int) []domain.MenuItem {
	if len(items) > max {
		return items[:max]
	}
	return items
}
