package logic

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold normalizes text for case-insensitive comparison
func Fold(s string) string {
	return cases.Fold().String(s)
}

// HasPrefixFold reports whether label starts with prefix, ignoring case
func HasPrefixFold(label, prefix string) bool {
	return strings.HasPrefix(Fold(label), Fold(prefix))
}

// PrefixMatches returns the indices of labels that start with query,
// ignoring case, in list order. The result is never nil.
func PrefixMatches(labels []string, query string) []int {
	matches := make([]int, 0, len(labels))
	folded := Fold(query)
	for i, label := range labels {
		if strings.HasPrefix(Fold(label), folded) {
			matches = append(matches, i)
		}
	}
	return matches
}

// NarrowMatches filters an existing match set against a longer query.
// Every label matching the longer query also matched its prefix, so the
// result equals PrefixMatches(labels, query) when prev was computed for a
// prefix of query.
func NarrowMatches(labels []string, prev []int, query string) []int {
	matches := make([]int, 0, len(prev))
	folded := Fold(query)
	for _, i := range prev {
		if i < 0 || i >= len(labels) {
			continue
		}
		if strings.HasPrefix(Fold(labels[i]), folded) {
			matches = append(matches, i)
		}
	}
	return matches
}
