package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/yndnr/snapkeep-go/internal/storage"
)

// Store is an in-memory key-value backend.
type Store struct {
	mu     sync.RWMutex
	data   map[string]string
	faults map[string]func(key string) error
	closed bool
}

var _ storage.Backend = (*Store)(nil)

// Option configures the Store.
type Option func(*Store)

// WithFaults installs fault hooks keyed by operation name (storage.OpGet,
// storage.OpSet, storage.OpDelete, storage.OpScan). A hook returning a
// non-nil error makes that call fail without touching the data.
func WithFaults(faults map[string]func(key string) error) Option {
	return func(s *Store) {
		for op, fn := range faults {
			s.faults[op] = fn
		}
	}
}

// WithData seeds the store.
func WithData(data map[string]string) Option {
	return func(s *Store) {
		for k, v := range data {
			s.data[k] = v
		}
	}
}

// NewStore creates an empty in-memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		data:   make(map[string]string),
		faults: make(map[string]func(string) error),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetFault installs or clears (fn == nil) the fault hook for op.
func (s *Store) SetFault(op string, fn func(key string) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = fn
}

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check(storage.OpGet, key); err != nil {
		return "", err
	}
	v, ok := s.data[key]
	if !ok {
		return "", storage.ErrKeyNotFound
	}
	return v, nil
}

// Set stores value under key.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(storage.OpSet, key); err != nil {
		return err
	}
	s.data[key] = value
	return nil
}

// Delete removes key.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(storage.OpDelete, key); err != nil {
		return err
	}
	delete(s.data, key)
	return nil
}

// Scan visits keys with the given prefix in byte order.
func (s *Store) Scan(ctx context.Context, prefix string, fn func(key, value string) bool) error {
	s.mu.RLock()
	if err := s.check(storage.OpScan, prefix); err != nil {
		s.mu.RUnlock()
		return err
	}
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	values := make(map[string]string, len(keys))
	for _, k := range keys {
		values[k] = s.data[k]
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !fn(k, values[k]) {
			break
		}
	}
	return nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Close marks the store closed. Subsequent calls return storage.ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// check must be called with s.mu held.
func (s *Store) check(op, key string) error {
	if s.closed {
		return storage.ErrClosed
	}
	if fn, ok := s.faults[op]; ok {
		return fn(key)
	}
	return nil
}
