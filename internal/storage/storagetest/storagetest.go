// Package storagetest provides a shared conformance suite for
// storage.Backend implementations. Each engine wires this suite to verify
// it satisfies the full Backend contract.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/yndnr/snapkeep-go/internal/storage"
)

// TestBackend runs the conformance suite. newBackend must return a fresh,
// empty backend for each sub-test; closing it is the caller's concern.
func TestBackend(t *testing.T, newBackend func(t *testing.T) storage.Backend) {
	t.Run("GetMissing", func(t *testing.T) {
		b := newBackend(t)
		_, err := b.Get(context.Background(), "missing")
		if !errors.Is(err, storage.ErrKeyNotFound) {
			t.Fatalf("expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("SetGet", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()

		if err := b.Set(ctx, "k", `{"a":1}`); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, err := b.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got != `{"a":1}` {
			t.Errorf("Get: expected %q, got %q", `{"a":1}`, got)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()

		mustSet(t, b, "k", "first")
		mustSet(t, b, "k", "second")

		got, err := b.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got != "second" {
			t.Errorf("expected %q, got %q", "second", got)
		}
	})

	t.Run("EmptyValue", func(t *testing.T) {
		b := newBackend(t)
		mustSet(t, b, "k", "")

		got, err := b.Get(context.Background(), "k")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got != "" {
			t.Errorf("expected empty value, got %q", got)
		}
	})

	t.Run("UnicodeRoundTrip", func(t *testing.T) {
		b := newBackend(t)
		value := "{\"name\":\"Größe ✓ 日本\",\"nl\":\"a\\nb\"}"
		mustSet(t, b, "gcp_profile_ünï", value)

		got, err := b.Get(context.Background(), "gcp_profile_ünï")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got != value {
			t.Errorf("expected %q, got %q", value, got)
		}
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()
		value := "{\"k\":\"\xff\xfe\"}"

		if err := b.Set(ctx, "k", value); err != nil {
			if _, getErr := b.Get(ctx, "k"); !errors.Is(getErr, storage.ErrKeyNotFound) {
				t.Fatalf("rejected Set left a value behind: %v", getErr)
			}
			return
		}
		got, err := b.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got != value {
			t.Errorf("value changed: stored %q, got %q", value, got)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()
		mustSet(t, b, "k", "v")

		if err := b.Delete(ctx, "k"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := b.Get(ctx, "k"); !errors.Is(err, storage.ErrKeyNotFound) {
			t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
		}
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		b := newBackend(t)
		if err := b.Delete(context.Background(), "never-set"); err != nil {
			t.Fatalf("Delete of absent key: %v", err)
		}
	})

	t.Run("ScanPrefix", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()

		mustSet(t, b, "gcp_profile_b", "2")
		mustSet(t, b, "gcp_profile_a", "1")
		mustSet(t, b, "gcp_profile_a__meta", "{}")
		mustSet(t, b, "settings", "{}")
		mustSet(t, b, "gcp_ui_state_v1", "{}")

		got := map[string]string{}
		err := b.Scan(ctx, "gcp_profile_", func(key, value string) bool {
			got[key] = value
			return true
		})
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}

		want := map[string]string{
			"gcp_profile_a":       "1",
			"gcp_profile_a__meta": "{}",
			"gcp_profile_b":       "2",
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d keys, got %d: %v", len(want), len(got), got)
		}
		for k, v := range want {
			if got[k] != v {
				t.Errorf("key %q: expected %q, got %q", k, v, got[k])
			}
		}
	})

	t.Run("ScanAll", func(t *testing.T) {
		b := newBackend(t)
		mustSet(t, b, "x", "1")
		mustSet(t, b, "y", "2")

		var keys []string
		err := b.Scan(context.Background(), "", func(key, _ string) bool {
			keys = append(keys, key)
			return true
		})
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		sort.Strings(keys)
		if len(keys) != 2 || keys[0] != "x" || keys[1] != "y" {
			t.Errorf("expected [x y], got %v", keys)
		}
	})

	t.Run("ScanEarlyStop", func(t *testing.T) {
		b := newBackend(t)
		for i := 0; i < 5; i++ {
			mustSet(t, b, fmt.Sprintf("p_%d", i), "v")
		}

		visited := 0
		err := b.Scan(context.Background(), "p_", func(string, string) bool {
			visited++
			return visited < 2
		})
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if visited != 2 {
			t.Errorf("expected scan to stop after 2 keys, visited %d", visited)
		}
	})

	t.Run("ScanKeys", func(t *testing.T) {
		b := newBackend(t)
		for _, k := range []string{"gcp_profile_b", "gcp_profile_a", "gcp_profile_a__meta", "settings"} {
			mustSet(t, b, k, "v")
		}

		var keys []string
		err := storage.ScanKeys(context.Background(), b, "gcp_profile_", func(key string) bool {
			keys = append(keys, key)
			return true
		})
		if err != nil {
			t.Fatalf("ScanKeys: %v", err)
		}
		sort.Strings(keys)
		want := []string{"gcp_profile_a", "gcp_profile_a__meta", "gcp_profile_b"}
		if fmt.Sprint(keys) != fmt.Sprint(want) {
			t.Errorf("expected %v, got %v", want, keys)
		}

		visited := 0
		if err := storage.ScanKeys(context.Background(), b, "", func(string) bool {
			visited++
			return false
		}); err != nil {
			t.Fatalf("ScanKeys: %v", err)
		}
		if visited != 1 {
			t.Errorf("expected scan to stop after 1 key, visited %d", visited)
		}
	})

	t.Run("ScanEmpty", func(t *testing.T) {
		b := newBackend(t)
		called := false
		err := b.Scan(context.Background(), "gcp_profile_", func(string, string) bool {
			called = true
			return true
		})
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if called {
			t.Error("callback invoked on empty backend")
		}
	})

	t.Run("ConcurrentWrites", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := fmt.Sprintf("c_%d", i)
				if err := b.Set(ctx, key, key); err != nil {
					t.Errorf("Set %s: %v", key, err)
				}
			}(i)
		}
		wg.Wait()

		for i := 0; i < 8; i++ {
			key := fmt.Sprintf("c_%d", i)
			got, err := b.Get(ctx, key)
			if err != nil || got != key {
				t.Errorf("Get %s: got %q, %v", key, got, err)
			}
		}
	})
}

func mustSet(t *testing.T, b storage.Backend, key, value string) {
	t.Helper()
	if err := b.Set(context.Background(), key, value); err != nil {
		t.Fatalf("Set %s: %v", key, err)
	}
}
