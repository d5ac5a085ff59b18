// Schema DDL and connection pragmas for the books database.

package sqlite

// Schema DDL. Statements are idempotent: the database file is durable and
// reopened on every Attach.
const (
	// AUTOINCREMENT keeps IDs from being reused after deletion.
	createBooks = `CREATE TABLE IF NOT EXISTS books (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    author TEXT NOT NULL,
    genre TEXT NOT NULL DEFAULT '',
    favorite INTEGER NOT NULL DEFAULT 0
);`
)

// Index DDL for the filter columns.
const (
	idxBooksGenre    = `CREATE INDEX IF NOT EXISTS idx_books_genre ON books(genre);`
	idxBooksFavorite = `CREATE INDEX IF NOT EXISTS idx_books_favorite ON books(favorite);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createBooks,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxBooksGenre,
	idxBooksFavorite,
}

// pragmas are applied to every new connection before the schema.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = FULL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA temp_store = MEMORY",
}
