// This file implements the books table accessor for the SQLite backend.
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"

	sqlitedrv "modernc.org/sqlite"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Compile-time interface check: booksTable must implement BookStore.
var _ types.BookStore = (*booksTable)(nil)

// booksTable implements BookStore. Reads take the backend read lock and
// mutations take the write lock, so a detached backend is observed
// consistently.
type booksTable struct {
	backend *Backend
}

const selectBooks = "SELECT id, title, author, genre, favorite FROM books"

// likeEscaper escapes LIKE wildcards so keywords match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// foldFunc is the SQL name of the Unicode lower-casing function used by
// Search. SQLite's built-in lower() and LIKE fold ASCII only.
const foldFunc = "shelf_lower"

func init() {
	sqlitedrv.MustRegisterDeterministicScalarFunction(foldFunc, 1, foldValue)
}

// foldValue lower-cases a text argument the way filter.Keyword does.
func foldValue(_ *sqlitedrv.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// Create validates and inserts a new book with favorite unset.
func (bt *booksTable) Create(ctx context.Context, title, author, genre string) (int64, error) {
	book := types.NewBook(strings.TrimSpace(title), strings.TrimSpace(author), strings.TrimSpace(genre))
	if err := book.Validate(); err != nil {
		return 0, err
	}

	bt.backend.mu.Lock()
	defer bt.backend.mu.Unlock()
	db, err := bt.backend.conn()
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx,
		"INSERT INTO books (title, author, genre, favorite) VALUES (?, ?, ?, 0)",
		book.Title, book.Author, book.Genre,
	)
	if err != nil {
		return 0, storageErr("inserting book", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("reading new book id", err)
	}

	bt.backend.afterMutation(ctx)
	return id, nil
}

// Get retrieves a book by ID.
func (bt *booksTable) Get(ctx context.Context, id int64) (types.Book, error) {
	bt.backend.mu.RLock()
	defer bt.backend.mu.RUnlock()
	db, err := bt.backend.conn()
	if err != nil {
		return types.Book{}, err
	}

	row := db.QueryRowContext(ctx, selectBooks+" WHERE id = ?", id)
	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Book{}, types.ErrNotFound
		}
		return types.Book{}, storageErr("getting book", err)
	}
	return book, nil
}

// List returns every book ordered by ID.
func (bt *booksTable) List(ctx context.Context) ([]types.Book, error) {
	bt.backend.mu.RLock()
	defer bt.backend.mu.RUnlock()
	db, err := bt.backend.conn()
	if err != nil {
		return nil, err
	}

	return queryBooks(ctx, db, selectBooks+" ORDER BY id")
}

// Delete removes a book. A missing ID is not an error.
func (bt *booksTable) Delete(ctx context.Context, id int64) error {
	bt.backend.mu.Lock()
	defer bt.backend.mu.Unlock()
	db, err := bt.backend.conn()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return storageErr("deleting book", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("reading delete result", err)
	}
	if n > 0 {
		bt.backend.afterMutation(ctx)
	}
	return nil
}

// SetFavorite updates only the favorite flag. A missing ID is not an error.
func (bt *booksTable) SetFavorite(ctx context.Context, id int64, favorite bool) error {
	bt.backend.mu.Lock()
	defer bt.backend.mu.Unlock()
	db, err := bt.backend.conn()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, "UPDATE books SET favorite = ? WHERE id = ?", boolToInt(favorite), id)
	if err != nil {
		return storageErr("setting favorite", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("reading favorite result", err)
	}
	if n > 0 {
		bt.backend.afterMutation(ctx)
	}
	return nil
}

// Update replaces title, author, genre and favorite of the book with book.ID.
func (bt *booksTable) Update(ctx context.Context, book types.Book) error {
	if err := book.Validate(); err != nil {
		return err
	}
	if !book.Persisted() {
		return types.ErrNotFound
	}

	bt.backend.mu.Lock()
	defer bt.backend.mu.Unlock()
	db, err := bt.backend.conn()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx,
		"UPDATE books SET title = ?, author = ?, genre = ?, favorite = ? WHERE id = ?",
		book.Title, book.Author, book.Genre, boolToInt(book.Favorite), book.ID,
	)
	if err != nil {
		return storageErr("updating book", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("reading update result", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}

	bt.backend.afterMutation(ctx)
	return nil
}

// Search matches keyword as a literal substring of title, author or genre,
// ignoring case. Both sides are folded with strings.ToLower so results agree
// with the in-memory keyword filter for non-ASCII text.
func (bt *booksTable) Search(ctx context.Context, keyword string) ([]types.Book, error) {
	bt.backend.mu.RLock()
	defer bt.backend.mu.RUnlock()
	db, err := bt.backend.conn()
	if err != nil {
		return nil, err
	}

	pattern := "%" + likeEscaper.Replace(strings.ToLower(keyword)) + "%"
	return queryBooks(ctx, db,
		selectBooks+` WHERE `+foldFunc+`(title) LIKE ? ESCAPE '\'`+
			` OR `+foldFunc+`(author) LIKE ? ESCAPE '\'`+
			` OR `+foldFunc+`(genre) LIKE ? ESCAPE '\' ORDER BY id`,
		pattern, pattern, pattern,
	)
}

// conn returns the open database or ErrDetached.
// The caller must hold b.mu (read or write lock).
func (b *Backend) conn() (*sql.DB, error) {
	if !b.attached || b.db == nil {
		return nil, types.ErrDetached
	}
	return b.db, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanBook hydrates one books row.
func scanBook(row rowScanner) (types.Book, error) {
	var b types.Book
	var favorite int
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &favorite); err != nil {
		return types.Book{}, err
	}
	b.Favorite = favorite != 0
	return b, nil
}

// queryBooks runs a books query and hydrates every row. The result is never
// nil so callers can tell "no rows" from a failed query by the error alone.
func queryBooks(ctx context.Context, db *sql.DB, query string, args ...any) ([]types.Book, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("querying books", err)
	}
	defer rows.Close()

	books := []types.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, storageErr("scanning book", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating books", err)
	}
	return books, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
