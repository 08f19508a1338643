package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Key scheme of managed entries in the shared store.
const (
	// Prefix marks every key owned by snapkeep. Other writers sharing the
	// store must not use it.
	Prefix = "gcp_profile_"

	// MetaSuffix is appended to a payload key to address its metadata record.
	MetaSuffix = "__meta"

	// UIStateKey stores the presentation layer's panel position.
	UIStateKey = "gcp_ui_state_v1"

	// DefaultHostConfigKey is the host application's active configuration key.
	DefaultHostConfigKey = "settings"

	// FallbackNamePrefix starts every generated snapshot name.
	FallbackNamePrefix = "Profile "

	// SavedAtLayout is the minute-resolution timestamp label layout.
	SavedAtLayout = "2006-01-02 15:04"

	// MetaSavedAt is the metadata field holding the save timestamp label.
	MetaSavedAt = "savedAt"
)

// StorageKeyOf returns the payload key of the snapshot called name.
func StorageKeyOf(name string) string {
	return Prefix + name
}

// MetaKeyOf returns the metadata key paired with a payload key.
func MetaKeyOf(storageKey string) string {
	return storageKey + MetaSuffix
}

// IsMetaKey reports whether key addresses a metadata record.
func IsMetaKey(key string) bool {
	return strings.HasSuffix(key, MetaSuffix)
}

// IsManagedKey reports whether key lives in the snapkeep namespace.
func IsManagedKey(key string) bool {
	return strings.HasPrefix(key, Prefix)
}

// NameOf returns the snapshot name encoded in a managed key, with any
// metadata suffix stripped. ok is false for keys outside the namespace.
func NameOf(key string) (name string, ok bool) {
	if !IsManagedKey(key) {
		return "", false
	}
	name = strings.TrimPrefix(key, Prefix)
	name = strings.TrimSuffix(name, MetaSuffix)
	return name, true
}

// TimestampLabel formats t as a savedAt label (YYYY-MM-DD HH:MM).
func TimestampLabel(t time.Time) string {
	return t.Format(SavedAtLayout)
}

// FallbackName returns the generated name used when a save has no label.
func FallbackName(label string) string {
	return FallbackNamePrefix + label
}

// Snapshot is a saved copy of the host configuration blob.
//
// Payload holds the exact bytes read from the active configuration at save
// time. A save under an existing name replaces Payload and SavedAt together.
type Snapshot struct {
	Name    string `json:"name"`
	Payload string `json:"payload"`
	SavedAt string `json:"saved_at"`
}

// StorageKey returns the key the payload is stored under.
func (s *Snapshot) StorageKey() string {
	return StorageKeyOf(s.Name)
}

// Metadata is the parsed metadata record of a snapshot. It is a free-form
// JSON object; only savedAt is written by snapkeep.
type Metadata map[string]any

// NewMetadata returns the record written alongside a payload.
func NewMetadata(savedAt string) Metadata {
	return Metadata{MetaSavedAt: savedAt}
}

// ParseMetadata decodes a stored metadata record. Anything that is not a
// JSON object yields an empty record rather than an error.
func ParseMetadata(raw string) Metadata {
	if raw == "" {
		return Metadata{}
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil || m == nil {
		return Metadata{}
	}
	return Metadata(m)
}

// Encode serializes the record for storage.
func (m Metadata) Encode() (string, error) {
	if m == nil {
		m = Metadata{}
	}
	data, err := json.Marshal(map[string]any(m))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SavedAt returns the savedAt label, or "" when absent or not a string.
func (m Metadata) SavedAt() string {
	s, _ := m[MetaSavedAt].(string)
	return s
}

// Entry is one row of a snapshot listing.
type Entry struct {
	StorageKey string   `json:"storage_key"`
	Name       string   `json:"name"`
	Metadata   Metadata `json:"metadata"`
}

// SavedAt returns the entry's savedAt label, or "" when metadata is degraded.
func (e Entry) SavedAt() string {
	return e.Metadata.SavedAt()
}

// Label renders the entry the way a selection list shows it:
// "name (savedAt)" when metadata carries a timestamp, else "name".
func (e Entry) Label() string {
	if at := e.SavedAt(); at != "" {
		return e.Name + " (" + at + ")"
	}
	return e.Name
}
