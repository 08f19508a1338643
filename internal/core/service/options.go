package service

import (
	"context"
	"time"

	"golang.org/x/text/language"
)

// KV is the persistence contract the services depend on. storage.Adapter
// implements it: faults come back as absent values or false, never as
// errors.
type KV interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) bool
	Delete(ctx context.Context, key string) bool
	Keys(ctx context.Context, prefix string) ([]string, bool)
}

// Observer receives operation outcomes. metric.Registry implements it.
type Observer interface {
	ObserveOperation(op string, err error)
	SetSnapshots(n int)
}

// Operation names reported to the Observer.
const (
	OpSave    = "save"
	OpList    = "list"
	OpRead    = "read"
	OpExport  = "export"
	OpDelete  = "delete"
	OpCapture = "capture"
	OpApply   = "apply"
	OpLoad    = "load"
	OpUIState = "ui_state"
)

type options struct {
	clock    func() time.Time
	locale   language.Tag
	observer Observer
}

// Option configures a service.
type Option func(*options)

// WithClock sets the time source used for savedAt labels.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLocale sets the collation locale used to order listings.
func WithLocale(tag language.Tag) Option {
	return func(o *options) {
		o.locale = tag
	}
}

// WithObserver registers an operation observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		clock:    time.Now,
		locale:   language.Und,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type nopObserver struct{}

func (nopObserver) ObserveOperation(string, error) {}
func (nopObserver) SetSnapshots(int)               {}
