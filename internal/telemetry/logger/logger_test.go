package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func newJSONLogger(t *testing.T, level string) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(Config{Level: level, Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l, &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log %q: %v", buf.String(), err)
	}
	return entry
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default config", cfg: DefaultConfig()},
		{name: "json format", cfg: Config{Level: "debug", Format: "json"}},
		{name: "console format", cfg: Config{Level: "info", Format: "console"}},
		{name: "empty format", cfg: Config{Level: "info"}},
		{name: "unknown format", cfg: Config{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && l == nil {
				t.Fatal("New() returned nil logger")
			}
		})
	}
}

func TestLogger_Levels(t *testing.T) {
	l, buf := newJSONLogger(t, "debug")

	tests := []struct {
		level   string
		logFunc func(string, ...any)
	}{
		{"DEBUG", l.Debug},
		{"INFO", l.Info},
		{"WARN", l.Warn},
		{"ERROR", l.Error},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.logFunc("snapshot saved", "name", "work")

			entry := decode(t, buf)
			if entry["level"] != tt.level {
				t.Errorf("level = %v, want %s", entry["level"], tt.level)
			}
			if entry["name"] != "work" {
				t.Errorf("name = %v, want work", entry["name"])
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newJSONLogger(t, "warn")

	l.Debug("debug message")
	l.Info("info message")
	if buf.Len() > 0 {
		t.Error("Debug/Info messages should be filtered when level is warn")
	}

	l.Warn("warn message")
	if buf.Len() == 0 {
		t.Error("Warn message should be logged")
	}
}

func TestSetLevel(t *testing.T) {
	l, buf := newJSONLogger(t, "error")

	l.Info("info message")
	if buf.Len() > 0 {
		t.Error("Info should be filtered at error level")
	}

	SetLevel("debug")
	l.Info("info message after level change")
	if buf.Len() == 0 {
		t.Error("Info should be logged after level changed to debug")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	l.With("engine", "badger").Info("store opened")

	if entry := decode(t, buf); entry["engine"] != "badger" {
		t.Errorf("engine = %v, want badger", entry["engine"])
	}
}

func TestSlog(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	Slog(l).Warn("storage fault absorbed", "payload", `{"a":1}`)
	entry := decode(t, buf)
	if entry["payload"] != redactedValue {
		t.Errorf("slog logger must share redaction, got %v", entry["payload"])
	}

	if Slog(nil) == nil {
		t.Error("Slog(nil) must fall back to slog.Default()")
	}
}

func TestSlog_OperationIDFromContext(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	ctx := WithOperationID(context.Background(), "01HZXSLOG")

	tests := []struct {
		name   string
		log    func()
		wantID any
	}{
		{
			name:   "with context",
			log:    func() { Slog(l).WarnContext(ctx, "storage fault absorbed", "op", "set") },
			wantID: "01HZXSLOG",
		},
		{
			name:   "derived logger",
			log:    func() { Slog(l).With("engine", "file").InfoContext(ctx, "store opened") },
			wantID: "01HZXSLOG",
		},
		{
			name: "without context",
			log:  func() { Slog(l).Warn("storage fault absorbed") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log()
			if got := decode(t, buf)["op_id"]; got != tt.wantID {
				t.Errorf("op_id = %v, want %v", got, tt.wantID)
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("dropped")
	l.WithContext(context.Background()).With("k", "v").Info("dropped")
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "text", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.Info("listed snapshots", "count", 3)

	output := buf.String()
	if !strings.Contains(output, "listed snapshots") {
		t.Errorf("Text output should contain message, got: %s", output)
	}
	if !strings.Contains(output, "count=3") {
		t.Errorf("Text output should contain count=3, got: %s", output)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "warn" {
		t.Errorf("DefaultConfig().Level = %q, want %q", cfg.Level, "warn")
	}
	if cfg.Format != "text" {
		t.Errorf("DefaultConfig().Format = %q, want %q", cfg.Format, "text")
	}
	if cfg.Output == nil {
		t.Error("DefaultConfig().Output should not be nil")
	}
}

func TestDefault(t *testing.T) {
	if Default() == nil || Default() != Default() {
		t.Error("Default() must return one shared logger")
	}
}
