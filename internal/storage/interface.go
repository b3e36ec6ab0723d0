package storage

import "errors"

var (
	// ErrNotLoaded is returned when an item is accessed before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrNotInitialized is returned by Load when the backing store does not exist yet
	ErrNotInitialized = errors.New("storage not initialized, run 'mixcheck init' first")
)

// Provider is a local key-value store holding serialized records under
// versioned keys. Each call is atomic on its own; callers composing a
// read-modify-write get no isolation from other writers.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Items
	GetItem(key string) (value string, found bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error

	// Utils
	GetConfigPath() string
}

// SchemaStore is implemented by the SQL-backed providers.
type SchemaStore interface {
	// SchemaVersions reports the applied and the newest embedded migration.
	SchemaVersions() (current, latest int, err error)
}
