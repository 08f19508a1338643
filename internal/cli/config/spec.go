package config

import (
	"github.com/yndnr/snapkeep-go/internal/storage"
)

// Config is the root configuration for snapkeep.
type Config struct {
	Storage  StorageSection  `koanf:"storage" json:"storage" yaml:"storage"`
	Host     HostSection     `koanf:"host" json:"host" yaml:"host"`
	List     ListSection     `koanf:"list" json:"list" yaml:"list"`
	Security SecuritySection `koanf:"security" json:"security" yaml:"security"`
	Log      LogSection      `koanf:"log" json:"log" yaml:"log"`
}

// StorageSection selects and configures the key-value engine.
type StorageSection struct {
	// Engine is one of memory, file, sqlite, badger.
	Engine string `koanf:"engine" json:"engine" yaml:"engine"`
	// Path is the store file (file, sqlite) or directory (badger).
	// Empty selects a per-engine default under the user data directory.
	Path   string        `koanf:"path" json:"path" yaml:"path"`
	Badger BadgerSection `koanf:"badger" json:"badger" yaml:"badger"`
}

// BadgerSection tunes the badger engine.
type BadgerSection struct {
	GCInterval       string  `koanf:"gc_interval" json:"gc_interval" yaml:"gc_interval"`
	GCThreshold      float64 `koanf:"gc_threshold" json:"gc_threshold" yaml:"gc_threshold"`
	CacheSize        int64   `koanf:"cache_size" json:"cache_size" yaml:"cache_size"`
	ValueLogFileSize int64   `koanf:"value_log_file_size" json:"value_log_file_size" yaml:"value_log_file_size"`
	SyncWrites       bool    `koanf:"sync_writes" json:"sync_writes" yaml:"sync_writes"`
}

// HostSection describes the host application.
type HostSection struct {
	// ConfigKey is the key holding the host's active configuration.
	ConfigKey string `koanf:"config_key" json:"config_key" yaml:"config_key"`
}

// ListSection configures listings.
type ListSection struct {
	// Locale is a BCP 47 tag used to collate snapshot names.
	Locale string `koanf:"locale" json:"locale" yaml:"locale"`
}

// SecuritySection configures at-rest encryption of snapshot payloads.
type SecuritySection struct {
	// EncryptionKey enables sealing when non-empty.
	EncryptionKey string `koanf:"encryption_key" json:"encryption_key" yaml:"encryption_key"`
	// Algorithm is aes-gcm, chacha20-poly1305, or empty for auto.
	Algorithm string `koanf:"algorithm" json:"algorithm" yaml:"algorithm"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" json:"level" yaml:"level"`
	Format string `koanf:"format" json:"format" yaml:"format"`
}

// KVConfig converts the storage section into the engine configuration.
func (s StorageSection) KVConfig() storage.KVConfig {
	return storage.KVConfig{
		Engine: s.Engine,
		Path:   s.Path,
		Badger: storage.BadgerConfig{
			GCInterval:       s.Badger.GCInterval,
			GCThreshold:      s.Badger.GCThreshold,
			CacheSize:        s.Badger.CacheSize,
			ValueLogFileSize: s.Badger.ValueLogFileSize,
			SyncWrites:       s.Badger.SyncWrites,
		},
	}
}
