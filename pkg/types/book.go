package types

import "strings"

// Book is a single catalogue record.
type Book struct {
	ID       int64  `json:"id"`       // Assigned by the store on creation; 0 until persisted.
	Title    string `json:"title"`    // Required, non-empty.
	Author   string `json:"author"`   // Required, non-empty.
	Genre    string `json:"genre"`    // Free text; not checked against the genre registry.
	Favorite bool   `json:"favorite"` // Defaults to false.
}

// NewBook returns an unpersisted book with favorite unset.
func NewBook(title, author, genre string) Book {
	return Book{Title: title, Author: author, Genre: genre}
}

// Persisted reports whether the store has assigned an ID.
func (b Book) Persisted() bool {
	return b.ID > 0
}

// Validate checks the required fields. Whitespace-only values count as empty.
func (b Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(b.Author) == "" {
		return ErrEmptyAuthor
	}
	return nil
}
