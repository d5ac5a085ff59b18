package types

import "context"

// BookStore is the durable, authoritative book collection.
type BookStore interface {
	// Create persists a new book and returns its freshly assigned ID.
	// Returns ErrValidation if title or author is empty; nothing is written.
	Create(ctx context.Context, title, author, genre string) (int64, error)

	// Get returns the book with the given ID, or ErrNotFound.
	Get(ctx context.Context, id int64) (Book, error)

	// List returns every book ordered by ID.
	List(ctx context.Context) ([]Book, error)

	// Delete removes the book. Deleting an absent ID is a no-op.
	Delete(ctx context.Context, id int64) error

	// SetFavorite sets the favorite flag only. Absent IDs are a no-op.
	SetFavorite(ctx context.Context, id int64, favorite bool) error

	// Update replaces every mutable field of the book with book.ID.
	// Returns ErrNotFound if no such book exists and ErrValidation if the
	// replacement has an empty title or author.
	Update(ctx context.Context, book Book) error

	// Search returns books whose title, author, or genre contains keyword,
	// ignoring case. An empty keyword matches every book.
	Search(ctx context.Context, keyword string) ([]Book, error)
}

// Catalogue is a storage backend holding a BookStore. Callers attach to a
// backend, work with its store, and detach when done.
type Catalogue interface {
	// Attach opens the backend described by config. Returns
	// ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// Books returns the book store, or ErrDetached.
	Books() (BookStore, error)

	// Export writes every book to path as JSON lines.
	Export(ctx context.Context, path string) error

	// Import creates a new book for each valid JSON line in path and returns
	// how many were created.
	Import(ctx context.Context, path string) (int, error)
}
