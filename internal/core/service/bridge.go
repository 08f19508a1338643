package service

import (
	"context"
	"strings"

	"github.com/yndnr/snapkeep-go/internal/core/domain"
	"github.com/yndnr/snapkeep-go/internal/telemetry/logger"
)

// SnapshotReader reads snapshot payloads without recording an operation of
// its own. *SnapshotStore implements it.
type SnapshotReader interface {
	read(ctx context.Context, storageKey string) (string, error)
}

// ConfigBridge reads and overwrites the host application's active
// configuration key. It never parses the blob beyond a first-character
// check, and it never triggers the host's reload.
type ConfigBridge struct {
	kv      KV
	hostKey string
	opts    options
}

// NewConfigBridge creates a bridge for hostKey. An empty hostKey selects
// domain.DefaultHostConfigKey.
func NewConfigBridge(kv KV, hostKey string, opts ...Option) *ConfigBridge {
	if hostKey == "" {
		hostKey = domain.DefaultHostConfigKey
	}
	return &ConfigBridge{
		kv:      kv,
		hostKey: hostKey,
		opts:    newOptions(opts),
	}
}

// HostKey returns the active configuration key.
func (b *ConfigBridge) HostKey() string {
	return b.hostKey
}

// CaptureCurrent returns the active configuration unchanged.
//
// An unset or empty value is ErrHostConfigMissing. A value whose first
// non-whitespace character is not '{' is ErrHostConfigMalformed.
func (b *ConfigBridge) CaptureCurrent(ctx context.Context) (blob string, err error) {
	defer func() { b.opts.observer.ObserveOperation(OpCapture, err) }()

	blob, ok := b.kv.Get(ctx, b.hostKey)
	if !ok || blob == "" {
		return "", domain.ErrHostConfigMissing.WithDetails("key " + b.hostKey)
	}
	if !strings.HasPrefix(strings.TrimSpace(blob), "{") {
		return "", domain.ErrHostConfigMalformed.WithDetails("expected a JSON object in " + b.hostKey)
	}
	return blob, nil
}

// Apply overwrites the active configuration with payload verbatim. The
// host must reload to pick it up.
func (b *ConfigBridge) Apply(ctx context.Context, payload string) (err error) {
	defer func() { b.opts.observer.ObserveOperation(OpApply, err) }()
	return b.apply(ctx, payload)
}

func (b *ConfigBridge) apply(ctx context.Context, payload string) error {
	if !b.kv.Set(ctx, b.hostKey, payload) {
		return domain.ErrApplyFailed.WithDetails("write " + b.hostKey)
	}
	logger.L(ctx).Debug("host configuration applied",
		"host_key", b.hostKey,
		"size", len(payload))
	return nil
}

// Load reads the snapshot at storageKey and applies it. It is recorded as a
// single load operation.
func (b *ConfigBridge) Load(ctx context.Context, snapshots SnapshotReader, storageKey string) (err error) {
	defer func() { b.opts.observer.ObserveOperation(OpLoad, err) }()

	payload, err := snapshots.read(ctx, storageKey)
	if err != nil {
		return err
	}
	return b.apply(ctx, payload)
}
