package types

import "errors"

// Config holds backend selection and parameters for Catalogue.Attach.
type Config struct {
	Backend      string `json:"backend" yaml:"backend"`
	DataDir      string `json:"data_dir" yaml:"data_dir"`
	SyncStrategy string `json:"sync_strategy,omitempty" yaml:"sync_strategy,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Sync strategies control when the books.jsonl mirror is rewritten.
const (
	SyncNone      = "none"      // Never; the database is the only copy.
	SyncImmediate = "immediate" // After every mutation.
	SyncOnClose   = "on_close"  // Once at Detach, if anything changed.
)

// Config validation errors.
var (
	ErrBackendEmpty        = errors.New("backend must not be empty")
	ErrBackendUnknown      = errors.New("unknown backend")
	ErrSyncStrategyUnknown = errors.New("unknown sync strategy")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

var knownSyncStrategies = map[string]bool{
	"":            true,
	SyncNone:      true,
	SyncImmediate: true,
	SyncOnClose:   true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if !knownSyncStrategies[c.SyncStrategy] {
		return ErrSyncStrategyUnknown
	}
	return nil
}

// GetSyncStrategy returns the effective sync strategy, defaulting to SyncNone.
func (c Config) GetSyncStrategy() string {
	if c.SyncStrategy == "" {
		return SyncNone
	}
	return c.SyncStrategy
}
