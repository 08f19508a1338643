package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/yndnr/snapkeep-go/pkg/crypto/adaptive"
)

// sealedMarker prefixes every encrypted value. Values without it are read
// back unchanged, so enabling encryption on an existing store is safe.
const sealedMarker = "sealed:v1:"

// SealedBackend encrypts the values of selected keys before they reach the
// wrapped backend. The storage key is bound as additional data, so a sealed
// value copied under another key does not open.
type SealedBackend struct {
	inner  Backend
	cipher adaptive.Cipher
	match  func(key string) bool
}

var (
	_ Backend    = (*SealedBackend)(nil)
	_ KeyScanner = (*SealedBackend)(nil)
)

// NewSealedBackend wraps inner. match selects the keys whose values are
// sealed; a nil match seals every key.
func NewSealedBackend(inner Backend, c adaptive.Cipher, match func(key string) bool) *SealedBackend {
	if match == nil {
		match = func(string) bool { return true }
	}
	return &SealedBackend{inner: inner, cipher: c, match: match}
}

// Get returns the opened value.
func (s *SealedBackend) Get(ctx context.Context, key string) (string, error) {
	value, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return s.open(key, value)
}

// Set seals value when key is selected.
func (s *SealedBackend) Set(ctx context.Context, key, value string) error {
	if s.match(key) {
		sealed, err := s.cipher.Encrypt([]byte(value), []byte(key))
		if err != nil {
			return fmt.Errorf("seal %s: %w", key, err)
		}
		value = sealedMarker + base64.StdEncoding.EncodeToString(sealed)
	}
	return s.inner.Set(ctx, key, value)
}

// Delete removes key.
func (s *SealedBackend) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

// Scan visits keys with opened values. A value that fails to open stops
// the scan with an error.
func (s *SealedBackend) Scan(ctx context.Context, prefix string, fn func(key, value string) bool) error {
	var openErr error
	err := s.inner.Scan(ctx, prefix, func(key, value string) bool {
		opened, err := s.open(key, value)
		if err != nil {
			openErr = err
			return false
		}
		return fn(key, opened)
	})
	if err != nil {
		return err
	}
	return openErr
}

// ScanKeys visits keys without opening their values, so a value sealed
// under another secret does not hide the keys around it.
func (s *SealedBackend) ScanKeys(ctx context.Context, prefix string, fn func(key string) bool) error {
	return ScanKeys(ctx, s.inner, prefix, fn)
}

// Close closes the wrapped backend.
func (s *SealedBackend) Close() error {
	return s.inner.Close()
}

func (s *SealedBackend) open(key, value string) (string, error) {
	if !s.match(key) || !strings.HasPrefix(value, sealedMarker) {
		return value, nil
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, sealedMarker))
	if err != nil {
		return "", fmt.Errorf("open %s: decode: %w", key, err)
	}
	plaintext, err := s.cipher.Decrypt(raw, []byte(key))
	if err != nil {
		return "", fmt.Errorf("open %s: %w", key, err)
	}
	return string(plaintext), nil
}
