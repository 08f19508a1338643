package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/collate"

	"github.com/yndnr/snapkeep-go/internal/core/domain"
	"github.com/yndnr/snapkeep-go/internal/telemetry/logger"
)

// SnapshotStore owns the snapshot namespace: the prefix scheme, the
// payload/metadata pairing and the listing order.
type SnapshotStore struct {
	kv   KV
	opts options
}

// NewSnapshotStore creates a SnapshotStore over kv.
func NewSnapshotStore(kv KV, opts ...Option) *SnapshotStore {
	return &SnapshotStore{
		kv:   kv,
		opts: newOptions(opts),
	}
}

// ============================================================================
// Save
// ============================================================================

// Save stores payload under name and records its savedAt label.
//
// name is trimmed; an empty name becomes "Profile <label>" where label is
// the same timestamp written to the metadata. An existing snapshot with the
// same name is replaced without warning.
//
// Writes are ordered payload first, metadata second. If the payload write
// fails nothing is stored (ErrStorageFault). If only the metadata write fails
// the payload stays in place and ErrMetadataWrite is returned along with the
// entry; the snapshot then lists with empty metadata.
func (s *SnapshotStore) Save(ctx context.Context, name, payload string) (entry domain.Entry, err error) {
	defer func() { s.opts.observer.ObserveOperation(OpSave, err) }()

	label := domain.TimestampLabel(s.opts.clock())

	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.FallbackName(label)
	}
	if domain.IsMetaKey(name) {
		return domain.Entry{}, domain.ErrInvalidSnapshotName.WithDetails(
			fmt.Sprintf("name must not end in %q", domain.MetaSuffix))
	}

	key := domain.StorageKeyOf(name)
	if !s.kv.Set(ctx, key, payload) {
		return domain.Entry{}, domain.ErrStorageFault.WithDetails("write snapshot " + name)
	}

	entry = domain.Entry{StorageKey: key, Name: name, Metadata: domain.Metadata{}}

	meta := domain.NewMetadata(label)
	raw, encErr := meta.Encode()
	if encErr != nil {
		return entry, domain.ErrMetadataWrite.WithDetails(name).WithCause(encErr)
	}
	if !s.kv.Set(ctx, domain.MetaKeyOf(key), raw) {
		return entry, domain.ErrMetadataWrite.WithDetails(name)
	}

	entry.Metadata = meta
	logger.L(ctx).Debug("snapshot saved",
		"name", name,
		"saved_at", label,
		"size", len(payload))
	return entry, nil
}

// ============================================================================
// List
// ============================================================================

// List returns every snapshot, ordered by name with locale-aware
// comparison. Equal names keep their relative order.
//
// Listing enumerates every key under the prefix, then reads one metadata
// record per snapshot: cost is proportional to the number of keys in the
// shared store, not only to the number of snapshots. Missing or unparsable
// metadata yields an entry with empty metadata.
func (s *SnapshotStore) List(ctx context.Context) (entries []domain.Entry, err error) {
	defer func() { s.opts.observer.ObserveOperation(OpList, err) }()

	keys, ok := s.kv.Keys(ctx, domain.Prefix)
	if !ok {
		return nil, domain.ErrStorageFault.WithDetails("enumerate snapshots")
	}

	entries = make([]domain.Entry, 0, len(keys))
	for _, key := range keys {
		if domain.IsMetaKey(key) {
			continue
		}
		name, _ := domain.NameOf(key)
		raw, _ := s.kv.Get(ctx, domain.MetaKeyOf(key))
		entries = append(entries, domain.Entry{
			StorageKey: key,
			Name:       name,
			Metadata:   domain.ParseMetadata(raw),
		})
	}

	// Collators keep internal buffers; one per call.
	col := collate.New(s.opts.locale)
	sort.SliceStable(entries, func(i, j int) bool {
		return col.CompareString(entries[i].Name, entries[j].Name) < 0
	})

	s.opts.observer.SetSnapshots(len(entries))
	logger.L(ctx).Debug("snapshots listed",
		"count", len(entries),
		"keys_scanned", len(keys))
	return entries, nil
}

// ============================================================================
// Read / Export
// ============================================================================

// Read returns the payload stored under storageKey. An absent key and a
// storage fault both surface as ErrSnapshotNotFound.
func (s *SnapshotStore) Read(ctx context.Context, storageKey string) (payload string, err error) {
	defer func() { s.opts.observer.ObserveOperation(OpRead, err) }()
	return s.read(ctx, storageKey)
}

// ReadByName is Read for the snapshot called name.
func (s *SnapshotStore) ReadByName(ctx context.Context, name string) (string, error) {
	return s.Read(ctx, domain.StorageKeyOf(name))
}

// Export writes the payload under storageKey to w verbatim.
func (s *SnapshotStore) Export(ctx context.Context, storageKey string, w io.Writer) (err error) {
	defer func() { s.opts.observer.ObserveOperation(OpExport, err) }()

	payload, err := s.read(ctx, storageKey)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, payload); err != nil {
		return fmt.Errorf("export %s: %w", storageKey, err)
	}
	return nil
}

func (s *SnapshotStore) read(ctx context.Context, storageKey string) (string, error) {
	if err := checkSelected(storageKey); err != nil {
		return "", err
	}
	payload, ok := s.kv.Get(ctx, storageKey)
	if !ok {
		return "", domain.ErrSnapshotNotFound.WithDetails(storageKey)
	}
	return payload, nil
}

// ============================================================================
// Delete
// ============================================================================

// Delete removes the payload and metadata of storageKey. Both removals are
// always attempted; the delete succeeds only if both do. Removing a snapshot
// that does not exist succeeds.
func (s *SnapshotStore) Delete(ctx context.Context, storageKey string) (err error) {
	defer func() { s.opts.observer.ObserveOperation(OpDelete, err) }()

	if err := checkSelected(storageKey); err != nil {
		return err
	}

	payloadOK := s.kv.Delete(ctx, storageKey)
	metaOK := s.kv.Delete(ctx, domain.MetaKeyOf(storageKey))

	switch {
	case !payloadOK && !metaOK:
		return domain.ErrPartialDelete.WithDetails("payload and metadata of " + storageKey)
	case !payloadOK:
		return domain.ErrPartialDelete.WithDetails("payload of " + storageKey)
	case !metaOK:
		return domain.ErrPartialDelete.WithDetails("metadata of " + storageKey)
	}

	logger.L(ctx).Debug("snapshot deleted", "key", storageKey)
	return nil
}

// checkSelected rejects keys that cannot name a snapshot payload.
func checkSelected(storageKey string) error {
	switch {
	case storageKey == "":
		return domain.ErrSnapshotNotSelected
	case !domain.IsManagedKey(storageKey), domain.IsMetaKey(storageKey):
		return domain.ErrSnapshotNotSelected.WithDetails(storageKey + " is not a snapshot key")
	}
	return nil
}
