// Package sqlite provides the public factory for the SQLite catalogue
// backend while keeping its implementation internal.
package sqlite

import (
	"github.com/mesh-intelligence/shelf/internal/sqlite"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// NewBackend creates a new SQLite catalogue. The backend is not attached;
// call Attach with a Config to open it.
//
// Example:
//
//	catalogue := sqlite.NewBackend()
//	err := catalogue.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".shelf-db",
//	})
//	defer catalogue.Detach()
func NewBackend() types.Catalogue {
	return sqlite.NewBackend()
}
