package service

import (
	"context"

	"github.com/yndnr/snapkeep-go/internal/core/domain"
)

// UIStateStore persists the presentation layer's panel state under
// domain.UIStateKey.
type UIStateStore struct {
	kv   KV
	opts options
}

// NewUIStateStore creates a UIStateStore over kv.
func NewUIStateStore(kv KV, opts ...Option) *UIStateStore {
	return &UIStateStore{kv: kv, opts: newOptions(opts)}
}

// Load returns the stored state, or the zero state when it is absent or
// unreadable.
func (u *UIStateStore) Load(ctx context.Context) domain.UIState {
	raw, _ := u.kv.Get(ctx, domain.UIStateKey)
	return domain.ParseUIState(raw)
}

// Save stores state.
func (u *UIStateStore) Save(ctx context.Context, state domain.UIState) (err error) {
	defer func() { u.opts.observer.ObserveOperation(OpUIState, err) }()

	raw, err := state.Encode()
	if err != nil {
		return domain.ErrStorageFault.WithDetails("encode ui state").WithCause(err)
	}
	if !u.kv.Set(ctx, domain.UIStateKey, raw) {
		return domain.ErrStorageFault.WithDetails("write " + domain.UIStateKey)
	}
	return nil
}
