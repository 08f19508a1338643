package config

import (
	"os"
	"path/filepath"

	"github.com/yndnr/snapkeep-go/internal/core/domain"
	"github.com/yndnr/snapkeep-go/internal/storage"
)

// Default configuration values.
const (
	DefaultEngine    = storage.EngineFile
	DefaultLocale    = "und"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	appDir = "snapkeep"
)

// defaultStoreNames are the per-engine store names under DataDir.
var defaultStoreNames = map[string]string{
	storage.EngineFile:   "localstorage.json",
	storage.EngineSQLite: "localstorage.db",
	storage.EngineBadger: "badger",
}

// Default returns the default configuration.
func Default() *Config {
	badger := storage.DefaultBadgerConfig()
	return &Config{
		Storage: StorageSection{
			Engine: DefaultEngine,
			Badger: BadgerSection{
				GCInterval:       badger.GCInterval,
				GCThreshold:      badger.GCThreshold,
				CacheSize:        badger.CacheSize,
				ValueLogFileSize: badger.ValueLogFileSize,
				SyncWrites:       badger.SyncWrites,
			},
		},
		Host: HostSection{
			ConfigKey: domain.DefaultHostConfigKey,
		},
		List: ListSection{
			Locale: DefaultLocale,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// defaultMap flattens Default() into dotted keys for the loader. Every
// key listed here can be set from the environment.
func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"storage.engine":                     d.Storage.Engine,
		"storage.path":                       d.Storage.Path,
		"storage.badger.gc_interval":         d.Storage.Badger.GCInterval,
		"storage.badger.gc_threshold":        d.Storage.Badger.GCThreshold,
		"storage.badger.cache_size":          d.Storage.Badger.CacheSize,
		"storage.badger.value_log_file_size": d.Storage.Badger.ValueLogFileSize,
		"storage.badger.sync_writes":         d.Storage.Badger.SyncWrites,
		"host.config_key":                    d.Host.ConfigKey,
		"list.locale":                        d.List.Locale,
		"security.encryption_key":            d.Security.EncryptionKey,
		"security.algorithm":                 d.Security.Algorithm,
		"log.level":                          d.Log.Level,
		"log.format":                         d.Log.Format,
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, appDir, "config.yaml")
}

// DataDir returns the directory holding default stores.
func DataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, appDir)
}

// DefaultStorePath returns the default store location for engine, or ""
// for engines without one.
func DefaultStorePath(engine string) string {
	name, ok := defaultStoreNames[engine]
	if !ok {
		return ""
	}
	return filepath.Join(DataDir(), name)
}
