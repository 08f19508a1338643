package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestRedactSensitive_Keys(t *testing.T) {
	tests := []struct {
		key      string
		value    string
		redacted bool
	}{
		{"payload", `{"theme":"dark"}`, true},
		{"encryption_key", "hunter2hunter2hunter2", true},
		{"client_secret", "abc", true},
		{"Password", "abc", true},
		{"key", "gcp_profile_work", false},
		{"name", "work", false},
		{"payload", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			got := redactSensitive(slog.String(tt.key, tt.value)).Value.String()
			if tt.redacted && got != redactedValue {
				t.Errorf("expected redaction, got %q", got)
			}
			if !tt.redacted && got != tt.value {
				t.Errorf("expected %q unchanged, got %q", tt.value, got)
			}
		})
	}
}

func TestRedactSensitive_SealedValue(t *testing.T) {
	got := redactSensitive(slog.String("value", "sealed:v1:QUJDREVGR0g=")).Value.String()
	if got != "sealed:v1:***" {
		t.Errorf("expected masked sealed value, got %q", got)
	}
}

func TestRedactSensitive_Group(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	l.Info("save", slog.Group("snapshot", slog.String("name", "work"), slog.String("payload", "{}")))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	group, ok := entry["snapshot"].(map[string]any)
	if !ok {
		t.Fatalf("expected snapshot group, got %v", entry)
	}
	if group["payload"] != redactedValue {
		t.Errorf("nested payload not redacted: %v", group["payload"])
	}
	if group["name"] != "work" {
		t.Errorf("nested name altered: %v", group["name"])
	}
}

func TestRedactString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"short", "***"},
		{"sealed:v1:abcdefghijklmnopqrstuvwxyz", "sealed:v1:***"},
		{"0123456789abcdefghijklmnopqrstuvwxyz", "01234567...stuvwxyz"},
	}
	for _, tt := range tests {
		if got := RedactString(tt.in); got != tt.want {
			t.Errorf("RedactString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsSensitiveKey(t *testing.T) {
	if !IsSensitiveKey("SNAPKEEP_SECURITY_ENCRYPTION_KEY") {
		t.Error("expected env-style encryption key to be sensitive")
	}
	if IsSensitiveKey("host_key") {
		t.Error("host_key names a storage key, not a secret")
	}
}
