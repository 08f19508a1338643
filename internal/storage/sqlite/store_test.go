package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/yndnr/snapkeep-go/internal/storage"
	"github.com/yndnr/snapkeep-go/internal/storage/storagetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestConformance(t *testing.T) {
	storagetest.TestBackend(t, func(t *testing.T) storage.Backend {
		return newTestStore(t)
	})
}

func TestPragmas(t *testing.T) {
	s := newTestStore(t)

	var journalMode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected journal_mode=wal, got %q", journalMode)
	}
}

func TestScan_PrefixWithLikeWildcards(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, k := range []string{"gcp_profile_a", "gcpXprofileYb", "gcp%profile_c"} {
		if err := s.Set(ctx, k, "v"); err != nil {
			t.Fatal(err)
		}
	}

	var keys []string
	if err := s.Scan(ctx, "gcp_profile_", func(key, _ string) bool {
		keys = append(keys, key)
		return true
	}); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(keys) != 1 || keys[0] != "gcp_profile_a" {
		t.Errorf("expected only gcp_profile_a, got %v", keys)
	}
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	s1, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s1.Set(ctx, "settings", "{}"); err != nil {
		t.Fatal(err)
	}
	s1.Close()

	s2, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	if got, err := s2.Get(ctx, "settings"); err != nil || got != "{}" {
		t.Errorf("expected persisted {}, got %q, %v", got, err)
	}
}
