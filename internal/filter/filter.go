// Package filter narrows a book snapshot by keyword, genre, and favorite flag.
// Every axis is an independent predicate; Apply is their conjunction.
package filter

import (
	"strings"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// AllGenres is the genre selection that disables genre filtering.
const AllGenres = "-"

// Criteria is the active filter state. The zero value passes every book.
type Criteria struct {
	Keyword       string `json:"keyword,omitempty"`
	Genre         string `json:"genre,omitempty"`
	FavoritesOnly bool   `json:"favorites_only,omitempty"`
}

// Predicate reports whether a book passes one filter axis.
type Predicate func(types.Book) bool

// Keyword passes books whose title, author, or genre contains kw, ignoring
// case. An empty kw passes everything.
func Keyword(kw string) Predicate {
	needle := strings.ToLower(kw)
	if needle == "" {
		return pass
	}
	return func(b types.Book) bool {
		return strings.Contains(strings.ToLower(b.Title), needle) ||
			strings.Contains(strings.ToLower(b.Author), needle) ||
			strings.Contains(strings.ToLower(b.Genre), needle)
	}
}

// Genre passes books whose genre equals genre exactly. AllGenres and the
// empty string pass everything.
func Genre(genre string) Predicate {
	if genre == "" || genre == AllGenres {
		return pass
	}
	return func(b types.Book) bool {
		return b.Genre == genre
	}
}

// Favorites passes only favorites when only is true, and everything otherwise.
func Favorites(only bool) Predicate {
	if !only {
		return pass
	}
	return func(b types.Book) bool {
		return b.Favorite
	}
}

// All combines predicates with AND. No predicates passes everything.
func All(preds ...Predicate) Predicate {
	return func(b types.Book) bool {
		for _, p := range preds {
			if !p(b) {
				return false
			}
		}
		return true
	}
}

// Where returns the books that pass pred, in input order. The result is a
// fresh, non-nil slice; books is not modified.
func Where(books []types.Book, pred Predicate) []types.Book {
	out := make([]types.Book, 0, len(books))
	for _, b := range books {
		if pred(b) {
			out = append(out, b)
		}
	}
	return out
}

// Predicate returns the conjunction of the three axes of c.
func (c Criteria) Predicate() Predicate {
	return All(Keyword(c.Keyword), Genre(c.Genre), Favorites(c.FavoritesOnly))
}

// IsZero reports whether c passes every book.
func (c Criteria) IsZero() bool {
	return c.Keyword == "" && (c.Genre == "" || c.Genre == AllGenres) && !c.FavoritesOnly
}

// Apply returns the books that satisfy every axis of c, in input order.
func Apply(books []types.Book, c Criteria) []types.Book {
	return Where(books, c.Predicate())
}

func pass(types.Book) bool { return true }
