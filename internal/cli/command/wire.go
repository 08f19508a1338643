package command

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/yndnr/snapkeep-go/internal/cli/config"
	"github.com/yndnr/snapkeep-go/internal/core/domain"
	"github.com/yndnr/snapkeep-go/internal/core/service"
	"github.com/yndnr/snapkeep-go/internal/storage"
	"github.com/yndnr/snapkeep-go/internal/storage/file"
	"github.com/yndnr/snapkeep-go/internal/storage/memory"
	"github.com/yndnr/snapkeep-go/internal/storage/sqlite"
	"github.com/yndnr/snapkeep-go/internal/telemetry/logger"
	"github.com/yndnr/snapkeep-go/internal/telemetry/metric"
	"github.com/yndnr/snapkeep-go/pkg/crypto/adaptive"
)

// sealInfo separates the payload key from other keys derived from the
// same secret.
const sealInfo = "snapkeep payload"

// Services bundles the core services over one opened store.
type Services struct {
	Snapshots *service.SnapshotStore
	Bridge    *service.ConfigBridge
	UIState   *service.UIStateStore

	backend storage.Backend
}

// Close closes the underlying store.
func (s *Services) Close() error {
	return s.backend.Close()
}

// Services opens the configured store on first use and returns the core
// services bound to it.
func (e *Env) Services() (*Services, error) {
	if e.services != nil {
		return e.services, nil
	}

	slogger := logger.Slog(e.Logger)
	backend, err := openBackend(e.Config, slogger, e.Metrics)
	if err != nil {
		return nil, err
	}

	tag, err := e.Config.List.Tag()
	if err != nil {
		backend.Close()
		return nil, err
	}

	kv := storage.NewAdapter(backend,
		storage.WithAdapterLogger(slogger),
		storage.WithFaultObserver(e.Metrics),
	)
	opts := []service.Option{
		service.WithLocale(tag),
		service.WithObserver(e.Metrics),
	}

	e.services = &Services{
		Snapshots: service.NewSnapshotStore(kv, opts...),
		Bridge:    service.NewConfigBridge(kv, e.Config.Host.ConfigKey, opts...),
		UIState:   service.NewUIStateStore(kv, opts...),
		backend:   backend,
	}
	return e.services, nil
}

// openBackend opens the engine named by cfg and, when an encryption key is
// configured, seals snapshot payloads.
func openBackend(cfg *config.Config, log *slog.Logger, metrics *metric.Registry) (storage.Backend, error) {
	backend, err := openEngine(cfg.Storage, log, metrics)
	if err != nil {
		return nil, err
	}

	if cfg.Security.EncryptionKey == "" {
		return backend, nil
	}

	c, err := adaptive.FromSecret([]byte(cfg.Security.EncryptionKey), adaptive.CipherType(cfg.Security.Algorithm), sealInfo)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("init payload cipher: %w", err), backend.Close())
	}
	log.Debug("payload sealing enabled", "algorithm", string(c.Type()))
	return storage.NewSealedBackend(backend, c, isPayloadKey), nil
}

func openEngine(cfg config.StorageSection, log *slog.Logger, metrics *metric.Registry) (storage.Backend, error) {
	switch cfg.Engine {
	case storage.EngineMemory:
		return memory.NewStore(), nil
	case storage.EngineFile:
		return file.NewStore(cfg.Path)
	case storage.EngineSQLite:
		return sqlite.NewStore(cfg.Path)
	case storage.EngineBadger:
		engine, err := storage.NewBadgerEngine(cfg.KVConfig(), log)
		if err != nil {
			return nil, err
		}
		return engine.RegisterMetrics(metrics.Registerer()), nil
	default:
		return nil, domain.ErrInvalidConfig.WithDetails("storage.engine: unknown engine " + cfg.Engine)
	}
}

// isPayloadKey selects the values the sealed backend encrypts.
func isPayloadKey(key string) bool {
	return domain.IsManagedKey(key) && !domain.IsMetaKey(key)
}
