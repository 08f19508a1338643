package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

// Adapter operation names, used as log fields and metric labels.
const (
	OpGet    = "get"
	OpSet    = "set"
	OpDelete = "delete"
	OpScan   = "scan"
)

// FaultObserver is notified whenever the adapter absorbs a backend fault.
type FaultObserver interface {
	ObserveFault(op string)
}

// Adapter is the persistence adapter the core talks to. It never returns
// an error: every backend fault (quota, access denied, store closed, even a
// panic inside the backend) is logged and converted into an absent value
// or a false result.
type Adapter struct {
	backend  Backend
	logger   *slog.Logger
	observer FaultObserver
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithAdapterLogger sets the logger used to report absorbed faults.
func WithAdapterLogger(logger *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithFaultObserver registers an observer for absorbed faults.
func WithFaultObserver(o FaultObserver) AdapterOption {
	return func(a *Adapter) {
		a.observer = o
	}
}

// NewAdapter wraps backend.
func NewAdapter(backend Backend, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		backend: backend,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Backend returns the wrapped backend.
func (a *Adapter) Backend() Backend {
	return a.backend
}

// Get returns the value stored under key. ok is false when the key is
// absent or the backend failed.
func (a *Adapter) Get(ctx context.Context, key string) (value string, ok bool) {
	err := a.guard(ctx, OpGet, key, func() error {
		var err error
		value, err = a.backend.Get(ctx, key)
		return err
	})
	if err != nil {
		return "", false
	}
	return value, true
}

// Set stores value under key and reports whether the write succeeded.
func (a *Adapter) Set(ctx context.Context, key, value string) bool {
	return a.guard(ctx, OpSet, key, func() error {
		return a.backend.Set(ctx, key, value)
	}) == nil
}

// Delete removes key and reports whether the removal succeeded.
// Removing an absent key succeeds.
func (a *Adapter) Delete(ctx context.Context, key string) bool {
	return a.guard(ctx, OpDelete, key, func() error {
		return a.backend.Delete(ctx, key)
	}) == nil
}

// Keys returns every key starting with prefix, in byte order. ok is false
// when the enumeration failed part-way; no partial result is returned.
//
// The cost is a scan of the backend's key space: engines with ordered keys
// seek to the prefix, the others visit every key in the store.
func (a *Adapter) Keys(ctx context.Context, prefix string) (keys []string, ok bool) {
	err := a.guard(ctx, OpScan, prefix, func() error {
		keys = keys[:0]
		return ScanKeys(ctx, a.backend, prefix, func(key string) bool {
			keys = append(keys, key)
			return true
		})
	})
	if err != nil {
		return nil, false
	}
	sort.Strings(keys)
	return keys, true
}

// guard runs fn, converting a returned error or a panic into a logged
// fault. ErrKeyNotFound is an ordinary absence, not a fault.
func (a *Adapter) guard(ctx context.Context, op, key string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("backend panic: %v", r)
			a.fault(ctx, op, key, err)
		}
	}()

	err = fn()
	if err == nil || errors.Is(err, ErrKeyNotFound) {
		return err
	}
	a.fault(ctx, op, key, err)
	return err
}

func (a *Adapter) fault(ctx context.Context, op, key string, err error) {
	a.logger.WarnContext(ctx, "storage fault absorbed",
		"op", op,
		"key", key,
		"error", err)
	if a.observer != nil {
		a.observer.ObserveFault(op)
	}
}
