// Package search ranks hydrated agreements against a free-text query using
// weighted approximate matching. The collection is re-fetched and re-ranked
// on every call; nothing is indexed or cached.
package search

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/nurpe/supply-agreements/internal/model"
)

// Substring matches require at least this many characters.
const minSubstringLen = 2

// Token similarity below this contributes nothing.
const fuzzyFloor = 0.6

// Field weights, highest for the supplier name, lowest for the status.
const (
	weightSupplierName = 1.0
	weightSupplierOrg  = 0.85
	weightCustomerName = 0.8
	weightCustomerOrg  = 0.7
	weightWarehouse    = 0.55
	weightMaterial     = 0.45
	weightStatus       = 0.3
)

type Ranker struct {
	minScore float64
}

func NewRanker(minScore float64) *Ranker {
	return &Ranker{minScore: minScore}
}

type scored struct {
	view  model.AgreementView
	score float64
}

// Rank returns the agreements matching query in descending relevance order.
// Agreements scoring below the configured minimum are dropped; no match
// yields an empty slice.
func (r *Ranker) Rank(query string, agreements []model.AgreementView) []model.AgreementView {
	folded := Fold(query)
	if folded == "" {
		return []model.AgreementView{}
	}

	matches := make([]scored, 0, len(agreements))
	for _, view := range agreements {
		score := r.score(folded, view)
		if score >= r.minScore {
			matches = append(matches, scored{view: view, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].view.ID < matches[j].view.ID
	})

	result := make([]model.AgreementView, 0, len(matches))
	for _, match := range matches {
		result = append(result, match.view)
	}
	return result
}

func (r *Ranker) score(query string, view model.AgreementView) float64 {
	total := 0.0
	add := func(weight float64, value string) {
		total += weight * similarity(query, Fold(value))
	}

	add(weightSupplierName, view.Supplier.Name)
	add(weightSupplierOrg, view.Supplier.Organization.Name)
	add(weightCustomerName, view.Customer.Name)
	add(weightCustomerOrg, view.Customer.Organization.Name)
	add(weightWarehouse, view.SupplierWarehouse.Name)
	add(weightWarehouse, view.CustomerWarehouse.Name)
	for _, line := range view.Materials {
		add(weightMaterial, line.Material.Name)
	}
	if view.Status != nil {
		add(weightStatus, *view.Status)
	}
	return total
}

// similarity compares a folded query against a folded field value. Exact
// match scores 1, substrings score by coverage, otherwise the best
// edit-distance similarity over the field's tokens counts when it clears the
// fuzzy floor.
func similarity(query, field string) float64 {
	if query == "" || field == "" {
		return 0
	}
	if query == field {
		return 1
	}
	if len([]rune(query)) >= minSubstringLen && strings.Contains(field, query) {
		return 0.7 + 0.3*float64(len(query))/float64(len(field))
	}

	best := 0.0
	for _, token := range strings.Fields(field) {
		if sim := editSimilarity(query, token); sim > best {
			best = sim
		}
	}
	if best < fuzzyFloor {
		return 0
	}
	return best * 0.8
}

// Fold lowercases and strips diacritics so that "Muñoz" matches "munoz".
func Fold(s string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripper, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

func editSimilarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
