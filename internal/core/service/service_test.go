package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/yndnr/snapkeep-go/internal/storage"
	"github.com/yndnr/snapkeep-go/internal/storage/memory"
	"github.com/yndnr/snapkeep-go/internal/telemetry/logger"
)

var errInjected = errors.New("injected fault")

// fixedClock returns a clock frozen at 2024-03-05 14:07:59 local time.
func fixedClock() func() time.Time {
	t := time.Date(2024, 3, 5, 14, 7, 59, 0, time.Local)
	return func() time.Time { return t }
}

type recordingObserver struct {
	mu        sync.Mutex
	ops       []string
	errs      []error
	snapshots int
}

func (r *recordingObserver) ObserveOperation(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
	r.errs = append(r.errs, err)
}

func (r *recordingObserver) SetSnapshots(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = n
}

// newKV returns an adapter over a fresh memory backend, plus the backend
// for direct inspection and fault injection.
func newKV(opts ...memory.Option) (*storage.Adapter, *memory.Store) {
	backend := memory.NewStore(opts...)
	return storage.NewAdapter(backend, storage.WithAdapterLogger(logger.Slog(logger.Discard()))), backend
}

// failWhen returns a fault hook that fails for keys matching pred.
func failWhen(pred func(key string) bool) func(string) error {
	return func(key string) error {
		if pred(key) {
			return errInjected
		}
		return nil
	}
}

func isMeta(key string) bool { return strings.HasSuffix(key, "__meta") }

func raw(t interface{ Helper() }, b *memory.Store, key string) (string, bool) {
	t.Helper()
	v, err := b.Get(context.Background(), key)
	if err != nil {
		return "", false
	}
	return v, true
}
