package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// fold normalizes to NFC and applies simple case folding, so "GARCÍA",
// "garcía" and a decomposed "garcía" compare equal.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Matches reports whether query is a case-insensitive substring of the
// book's title or author. An empty query matches every book.
func Matches(b Book, query string) bool {
	if query == "" {
		return true
	}
	q := fold(query)
	return strings.Contains(fold(b.Title), q) || strings.Contains(fold(b.Author), q)
}

// Visibility computes, for every book, whether it stays visible under query.
func Visibility(books []Book, query string) map[int64]bool {
	visible := make(map[int64]bool, len(books))
	q := fold(query)
	for _, b := range books {
		visible[b.ID] = q == "" ||
			strings.Contains(fold(b.Title), q) ||
			strings.Contains(fold(b.Author), q)
	}
	return visible
}

// Filter returns the books matching query, preserving order.
func Filter(books []Book, query string) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if Matches(b, query) {
			out = append(out, b)
		}
	}
	return out
}
