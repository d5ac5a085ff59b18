// Package view binds a BookStore to a filtered, row-indexed table view.
//
// A Binding owns two lists: the snapshot (every book, as last read from the
// store) and the displayed rows (the snapshot narrowed by the active
// criteria). Row indexes always refer to the displayed rows. Cell edits are
// written through to the store; a failed write leaves both lists as they were.
package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mesh-intelligence/shelf/internal/filter"
	"github.com/mesh-intelligence/shelf/internal/logger"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// ErrBusy is returned when an operation starts while another is in flight.
var ErrBusy = errors.New("binding is busy")

// State is the binding's lifecycle state.
type State int

// Binding states.
const (
	Idle State = iota
	Editing
	Refreshing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Refreshing:
		return "refreshing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Binding adapts a BookStore to a table view. It is safe for concurrent use,
// but overlapping Refresh or SetCell calls fail with ErrBusy instead of
// queueing. The mutex is released while the store is called.
type Binding struct {
	store types.BookStore

	mu       sync.Mutex
	state    State
	criteria filter.Criteria
	snapshot []types.Book
	rows     []types.Book
}

// NewBinding returns an empty binding over store. Call Refresh to load it.
func NewBinding(store types.BookStore, c filter.Criteria) *Binding {
	return &Binding{
		store:    store,
		criteria: c,
		snapshot: []types.Book{},
		rows:     []types.Book{},
	}
}

// State returns the current lifecycle state.
func (v *Binding) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Criteria returns the active filter criteria.
func (v *Binding) Criteria() filter.Criteria {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.criteria
}

// SetCriteria replaces the filter and re-applies it to the current snapshot.
// The store is not consulted.
func (v *Binding) SetCriteria(c filter.Criteria) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != Idle {
		return ErrBusy
	}
	v.criteria = c
	v.rows = filter.Apply(v.snapshot, c)
	return nil
}

// Refresh reloads the snapshot from the store and re-applies the criteria.
// On failure the previous snapshot and rows are kept.
func (v *Binding) Refresh(ctx context.Context) error {
	if err := v.begin(Refreshing); err != nil {
		return err
	}
	return v.refresh(ctx)
}

// refresh runs with the state already set to Refreshing and always returns
// the binding to Idle.
func (v *Binding) refresh(ctx context.Context) error {
	books, err := v.store.List(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = Idle
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	v.snapshot = books
	v.rows = filter.Apply(books, v.criteria)
	logger.Debug("view refreshed", "books", len(books), "rows", len(v.rows))
	return nil
}

// Len returns the number of displayed rows.
func (v *Binding) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.rows)
}

// Rows returns a copy of the displayed rows.
func (v *Binding) Rows() []types.Book {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]types.Book{}, v.rows...)
}

// Snapshot returns a copy of every book from the last successful refresh.
func (v *Binding) Snapshot() []types.Book {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]types.Book{}, v.snapshot...)
}

// Columns returns the editable fields in display order.
func (v *Binding) Columns() []types.Field {
	return types.Fields()
}

// Row returns the displayed book at index i.
func (v *Binding) Row(i int) (types.Book, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rowLocked(i)
}

// Cell returns the value of field on the displayed row i.
func (v *Binding) Cell(i int, field types.Field) (any, error) {
	b, err := v.Row(i)
	if err != nil {
		return nil, err
	}
	return field.Get(b), nil
}

// SetCell assigns value to field on displayed row i and writes the book
// through to the store, then refreshes. If the value is rejected or the store
// write fails, the row is restored and the error returned. A failed refresh
// after a successful write keeps the edit and returns the refresh error.
func (v *Binding) SetCell(ctx context.Context, i int, field types.Field, value any) error {
	v.mu.Lock()
	if v.state != Idle {
		v.mu.Unlock()
		return ErrBusy
	}
	original, err := v.rowLocked(i)
	if err != nil {
		v.mu.Unlock()
		return err
	}
	edited := original
	if err := field.Set(&edited, value); err != nil {
		v.mu.Unlock()
		return err
	}
	v.state = Editing
	v.replaceLocked(i, edited)
	v.mu.Unlock()

	if err := v.store.Update(ctx, edited); err != nil {
		v.mu.Lock()
		v.replaceLocked(i, original)
		v.state = Idle
		v.mu.Unlock()
		logger.Debug("cell edit rolled back", "row", i, "field", field.Name, "error", err)
		return err
	}

	v.mu.Lock()
	v.state = Refreshing
	v.mu.Unlock()
	return v.refresh(ctx)
}

// begin moves the binding from Idle to next, or returns ErrBusy.
func (v *Binding) begin(next State) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != Idle {
		return ErrBusy
	}
	v.state = next
	return nil
}

func (v *Binding) rowLocked(i int) (types.Book, error) {
	if i < 0 || i >= len(v.rows) {
		return types.Book{}, fmt.Errorf("%w: %d not in [0, %d)", types.ErrIndexOutOfRange, i, len(v.rows))
	}
	return v.rows[i], nil
}

// replaceLocked writes b into displayed row i and the matching snapshot entry.
func (v *Binding) replaceLocked(i int, b types.Book) {
	v.rows[i] = b
	for j := range v.snapshot {
		if v.snapshot[j].ID == b.ID {
			v.snapshot[j] = b
			break
		}
	}
}
