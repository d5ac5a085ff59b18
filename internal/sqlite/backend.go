// Package sqlite implements the SQLite storage backend for the shelf catalogue.
// The database file is the source of truth; books.jsonl is an optional
// human-readable mirror controlled by the sync strategy.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/shelf/internal/logger"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// File names inside the data directory.
const (
	DatabaseFile = "shelf.db"
	MirrorFile   = "books.jsonl"
)

// Compile-time interface check: Backend must implement Catalogue.
var _ types.Catalogue = (*Backend)(nil)

// Backend implements the Catalogue interface on a single SQLite file.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	books    *booksTable

	// Mirror state. dirty is set by mutations under the on_close strategy.
	syncStrategy string
	dirty        bool
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach validates config, creates DataDir if needed, opens the database,
// and applies the schema. Existing data is kept.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating data dir: %w", types.ErrStorage, err)
	}
	config.DataDir = dataDir

	db, err := openDatabase(context.Background(), filepath.Join(dataDir, DatabaseFile))
	if err != nil {
		return err
	}

	b.db = db
	b.config = config
	b.syncStrategy = config.GetSyncStrategy()
	b.dirty = false
	b.books = &booksTable{backend: b}
	b.attached = true

	logger.Info("attached catalogue", "data_dir", dataDir, "sync_strategy", b.syncStrategy)
	return nil
}

// Detach releases all resources held by the backend. Under the on_close
// strategy the mirror is rewritten first if anything changed. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.syncStrategy == types.SyncOnClose && b.takeDirty() {
		if err := b.writeMirror(context.Background()); err != nil {
			return fmt.Errorf("flush mirror: %w", err)
		}
	}

	if err := b.db.Close(); err != nil {
		return fmt.Errorf("%w: closing database: %w", types.ErrStorage, err)
	}
	b.db = nil
	b.books = nil
	b.attached = false

	logger.Info("detached catalogue", "data_dir", b.config.DataDir)
	return nil
}

// Books returns the book store. Returns ErrDetached if the backend is not
// attached.
func (b *Backend) Books() (types.BookStore, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.books, nil
}

// openDatabase opens the SQLite file with a single connection, applies
// pragmas, and creates the schema.
func openDatabase(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %w", types.ErrStorage, err)
	}
	// One connection keeps pragmas in effect and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping sqlite: %w", types.ErrStorage, err)
	}

	for _, stmt := range pragmas {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: apply pragma %q: %w", types.ErrStorage, stmt, err)
		}
	}

	for _, stmt := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: apply schema: %w", types.ErrStorage, err)
		}
	}

	return db, nil
}

// afterMutation keeps the mirror in line with the sync strategy. The
// mutation is already committed, so a mirror failure is logged, not returned.
// The caller must hold the b.mu write lock.
func (b *Backend) afterMutation(ctx context.Context) {
	switch b.syncStrategy {
	case types.SyncImmediate:
		if err := b.writeMirror(ctx); err != nil {
			logger.Warn("mirror write failed", "path", b.mirrorPath(), "error", err)
		}
	case types.SyncOnClose:
		b.dirty = true
	}
}

// mirrorPath returns the books.jsonl path inside the data directory.
func (b *Backend) mirrorPath() string {
	return filepath.Join(b.config.DataDir, MirrorFile)
}

// takeDirty reports and clears the dirty flag.
// The caller must hold the b.mu write lock.
func (b *Backend) takeDirty() bool {
	d := b.dirty
	b.dirty = false
	return d
}

// storageErr wraps a database failure so callers can match ErrStorage while
// keeping the driver error in the chain.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", types.ErrStorage, op, err)
}
