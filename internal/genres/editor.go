package genres

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mesh-intelligence/shelf/internal/filter"
)

// DefaultGenres seeds a new catalogue.
var DefaultGenres = []string{
	"Fiction",
	"Non-Fiction",
	"Mystery",
	"Sci-Fi",
	"Fantasy",
	"Romance",
	"Biography",
	"History",
	"Poetry",
}

// Editor applies add and remove edits to an in-memory genre list.
type Editor struct {
	list []string
}

// NewEditor starts an edit session over a copy of list.
func NewEditor(list []string) *Editor {
	return &Editor{list: slices.Clone(list)}
}

// Add appends name after trimming it. Blank names return ErrEmptyName and
// names already present (exact match) return ErrDuplicate.
func (e *Editor) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if slices.Contains(e.list, name) {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	e.list = append(e.list, name)
	return nil
}

// Remove deletes each named genre. Names not in the list are ignored.
// It returns how many entries were removed.
func (e *Editor) Remove(names ...string) int {
	before := len(e.list)
	e.list = slices.DeleteFunc(e.list, func(g string) bool {
		return slices.Contains(names, g)
	})
	return before - len(e.list)
}

// List returns a copy of the current list in order.
func (e *Editor) List() []string {
	out := make([]string, len(e.list))
	copy(out, e.list)
	return out
}

// FilterChoices returns list with the all-genres option first, for genre
// filter pickers.
func FilterChoices(list []string) []string {
	return append([]string{filter.AllGenres}, list...)
}
