// This file provides the JSONL export, import, and mirror for the catalogue.
package sqlite

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/mesh-intelligence/shelf/internal/logger"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// maxLineSize bounds a single JSONL record.
const maxLineSize = 1 << 20

// bookRecord is the JSONL shape of one book. It mirrors types.Book but is
// kept separate so the file format does not move with the domain type.
type bookRecord struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Genre    string `json:"genre"`
	Favorite bool   `json:"favorite"`
}

func recordFromBook(b types.Book) bookRecord {
	return bookRecord{ID: b.ID, Title: b.Title, Author: b.Author, Genre: b.Genre, Favorite: b.Favorite}
}

// readJSONL reads path and returns the records that decode cleanly. Blank
// and malformed lines are skipped; skipped counts how many non-blank lines
// were dropped.
func readJSONL(path string) (records []bookRecord, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec bookRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			logger.Debug("skipping malformed line", "path", path, "line", lineNo, "error", err)
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, skipped, nil
}

// encodeJSONL renders books one JSON object per line.
func encodeJSONL(books []types.Book) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, b := range books {
		if err := enc.Encode(recordFromBook(b)); err != nil {
			return nil, fmt.Errorf("encoding book %d: %w", b.ID, err)
		}
	}
	return buf.Bytes(), nil
}

// writeJSONL atomically replaces path with the JSONL rendering of books.
func writeJSONL(path string, books []types.Book) error {
	data, err := encodeJSONL(books)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// writeMirror rewrites books.jsonl from the database.
// The caller must hold the b.mu write lock.
func (b *Backend) writeMirror(ctx context.Context) error {
	db, err := b.conn()
	if err != nil {
		return err
	}
	books, err := queryBooks(ctx, db, selectBooks+" ORDER BY id")
	if err != nil {
		return err
	}
	return writeJSONL(b.mirrorPath(), books)
}

// Export writes every book to path as JSONL, ordered by ID.
func (b *Backend) Export(ctx context.Context, path string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	db, err := b.conn()
	if err != nil {
		return err
	}

	books, err := queryBooks(ctx, db, selectBooks+" ORDER BY id")
	if err != nil {
		return err
	}
	if err := writeJSONL(path, books); err != nil {
		return fmt.Errorf("%w: export: %w", types.ErrStorage, err)
	}
	logger.Info("exported catalogue", "path", path, "books", len(books))
	return nil
}

// Import appends the books in a JSONL file to the catalogue and returns how
// many were added. Blank, malformed, and invalid lines are skipped. Imported
// books get fresh IDs; the favorite flag is kept. All rows are inserted in one
// transaction, so a storage failure adds nothing.
func (b *Backend) Import(ctx context.Context, path string) (int, error) {
	records, skipped, err := readJSONL(path)
	if err != nil {
		return 0, fmt.Errorf("%w: import: %w", types.ErrStorage, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	db, err := b.conn()
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storageErr("begin import", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO books (title, author, genre, favorite) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, storageErr("prepare import", err)
	}
	defer stmt.Close()

	added := 0
	for _, rec := range records {
		book := types.Book{
			Title:    strings.TrimSpace(rec.Title),
			Author:   strings.TrimSpace(rec.Author),
			Genre:    strings.TrimSpace(rec.Genre),
			Favorite: rec.Favorite,
		}
		if err := book.Validate(); err != nil {
			skipped++
			continue
		}
		if _, err := stmt.ExecContext(ctx, book.Title, book.Author, book.Genre, boolToInt(book.Favorite)); err != nil {
			return 0, storageErr("import insert", err)
		}
		added++
	}

	if err := tx.Commit(); err != nil {
		return 0, storageErr("commit import", err)
	}

	if added > 0 {
		b.afterMutation(ctx)
	}
	logger.Info("imported catalogue", "path", path, "added", added, "skipped", skipped)
	return added, nil
}
