package storage

import (
	"context"
	"errors"
)

// Common errors.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrClosed      = errors.New("kv engine closed")
	ErrNotUTF8     = errors.New("value is not valid UTF-8")
)

// Engine names accepted by KVConfig.Engine.
const (
	EngineMemory = "memory"
	EngineFile   = "file"
	EngineSQLite = "sqlite"
	EngineBadger = "badger"
)

// Backend is a string key/value store shared between snapkeep and the host
// application.
//
// Implementations report faults as errors; the Adapter turns them into
// absent/false results for the core. Implementations must be safe for
// concurrent use, but callers never rely on multi-key atomicity.
type Backend interface {
	// Get retrieves a value by key.
	// Returns ErrKeyNotFound if the key doesn't exist.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a key-value pair, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Scan visits every key that starts with prefix. An empty prefix visits
	// the whole store. The callback returns false to stop iteration.
	Scan(ctx context.Context, prefix string, fn func(key, value string) bool) error

	// Close releases the backend's resources.
	Close() error
}

// KeyScanner is implemented by backends that can enumerate keys without
// reading or decoding their values.
type KeyScanner interface {
	ScanKeys(ctx context.Context, prefix string, fn func(key string) bool) error
}

// ScanKeys visits every key of b that starts with prefix. Values are never
// handed out, and are not read at all when b implements KeyScanner.
func ScanKeys(ctx context.Context, b Backend, prefix string, fn func(key string) bool) error {
	if ks, ok := b.(KeyScanner); ok {
		return ks.ScanKeys(ctx, prefix, fn)
	}
	return b.Scan(ctx, prefix, func(key, _ string) bool {
		return fn(key)
	})
}

// KVConfig selects and configures a backend.
type KVConfig struct {
	// Engine is one of "memory", "file", "sqlite", "badger".
	// Default: "file"
	Engine string

	// Path is the store location: a JSON file for "file", a database file
	// for "sqlite" and a directory for "badger". Ignored by "memory".
	Path string

	// Badger-specific configuration
	Badger BadgerConfig
}

// BadgerConfig contains Badger-specific tuning parameters.
type BadgerConfig struct {
	// GCInterval is the interval between automatic GC runs.
	// Default: 10m
	GCInterval string

	// GCThreshold is the GC discard ratio threshold (0.0-1.0).
	// Default: 0.5
	GCThreshold float64

	// CacheSize is the block cache size in bytes.
	// Default: 16MB
	CacheSize int64

	// ValueLogFileSize is the max value log file size in bytes.
	// Default: 64MB
	ValueLogFileSize int64

	// SyncWrites enables sync writes (fsync after each write).
	// Default: true
	SyncWrites bool
}

// DefaultKVConfig returns the default KV configuration.
func DefaultKVConfig(path string) KVConfig {
	return KVConfig{
		Engine: EngineFile,
		Path:   path,
		Badger: DefaultBadgerConfig(),
	}
}

// DefaultBadgerConfig returns the default Badger configuration.
func DefaultBadgerConfig() BadgerConfig {
	return BadgerConfig{
		GCInterval:       "10m",
		GCThreshold:      0.5,
		CacheSize:        16 << 20, // 16MB
		ValueLogFileSize: 64 << 20, // 64MB
		SyncWrites:       true,
	}
}

// KVStats contains storage engine statistics.
type KVStats struct {
	// TotalSize is the total disk usage in bytes.
	TotalSize uint64

	// LSMSize is the LSM tree size.
	LSMSize uint64

	// ValueLogSize is the value log size.
	ValueLogSize uint64

	// LastGCTime is the last GC run timestamp (Unix milliseconds).
	LastGCTime int64
}
