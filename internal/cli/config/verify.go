package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/yndnr/snapkeep-go/internal/core/domain"
	"github.com/yndnr/snapkeep-go/internal/storage"
	"github.com/yndnr/snapkeep-go/pkg/crypto/adaptive"
)

// Verify validates the configuration. Failures are domain.ErrInvalidConfig
// with the offending key in the details.
func Verify(cfg *Config) error {
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	if err := verifyHost(&cfg.Host); err != nil {
		return err
	}
	if _, err := cfg.List.Tag(); err != nil {
		return err
	}
	if err := verifySecurity(&cfg.Security); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

// Tag parses the collation locale.
func (l ListSection) Tag() (language.Tag, error) {
	if l.Locale == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(l.Locale)
	if err != nil {
		return language.Und, invalid("list.locale", fmt.Sprintf("%q is not a BCP 47 tag", l.Locale))
	}
	return tag, nil
}

func verifyStorage(cfg *StorageSection) error {
	switch cfg.Engine {
	case storage.EngineMemory:
		return nil
	case storage.EngineFile, storage.EngineSQLite:
	case storage.EngineBadger:
		if err := verifyBadger(&cfg.Badger); err != nil {
			return err
		}
	default:
		return invalid("storage.engine", fmt.Sprintf("unknown engine %q (memory, file, sqlite, badger)", cfg.Engine))
	}

	if cfg.Path == "" {
		return invalid("storage.path", "required for engine "+cfg.Engine)
	}
	return nil
}

func verifyBadger(cfg *BadgerSection) error {
	interval, err := time.ParseDuration(cfg.GCInterval)
	if err != nil || interval <= 0 {
		return invalid("storage.badger.gc_interval", fmt.Sprintf("%q is not a positive duration", cfg.GCInterval))
	}
	if cfg.GCThreshold <= 0 || cfg.GCThreshold >= 1 {
		return invalid("storage.badger.gc_threshold", "must be between 0 and 1")
	}
	if cfg.CacheSize < 0 || cfg.ValueLogFileSize < 0 {
		return invalid("storage.badger", "sizes must not be negative")
	}
	return nil
}

func verifyHost(cfg *HostSection) error {
	key := cfg.ConfigKey
	switch {
	case strings.TrimSpace(key) == "":
		return invalid("host.config_key", "required")
	case domain.IsManagedKey(key), key == domain.UIStateKey:
		return invalid("host.config_key", fmt.Sprintf("%q is reserved by snapkeep", key))
	}
	return nil
}

func verifySecurity(cfg *SecuritySection) error {
	switch adaptive.CipherType(cfg.Algorithm) {
	case "", adaptive.CipherAESGCM, adaptive.CipherChaCha20:
	default:
		return invalid("security.algorithm", fmt.Sprintf("unknown algorithm %q", cfg.Algorithm))
	}
	if cfg.EncryptionKey != "" && len(cfg.EncryptionKey) < adaptive.MinSecretLength {
		return invalid("security.encryption_key", fmt.Sprintf("must be at least %d characters", adaptive.MinSecretLength))
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return invalid("log.level", fmt.Sprintf("unknown level %q", cfg.Level))
	}
	switch strings.ToLower(cfg.Format) {
	case "text", "json", "console":
	default:
		return invalid("log.format", fmt.Sprintf("unknown format %q", cfg.Format))
	}
	return nil
}

func invalid(key, reason string) error {
	return domain.ErrInvalidConfig.WithDetails(key + ": " + reason)
}
