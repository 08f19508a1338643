package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("expected JSONFormatter")
	}
	if _, ok := NewFormatter(FormatYAML).(*YAMLFormatter); !ok {
		t.Error("expected YAMLFormatter")
	}
	if _, ok := NewFormatter("unknown").(*TableFormatter); !ok {
		t.Error("expected TableFormatter by default")
	}
}

type sample struct {
	Name    string `json:"name" yaml:"name"`
	SavedAt string `json:"savedAt" yaml:"savedAt"`
	Key     string `json:"key" yaml:"key" table:"-"`
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, sample{Name: "Work", SavedAt: "2024-03-05 14:07", Key: "k"}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"name": "Work"`, `"savedAt": "2024-03-05 14:07"`, `"key": "k"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() output missing %s:\n%s", want, out)
		}
	}
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	data := []sample{{Name: "Work", SavedAt: "2024-03-05 14:07"}}
	if err := (&YAMLFormatter{}).Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "- name: Work") {
		t.Errorf("Format() output:\n%s", out)
	}
	if !strings.Contains(out, `savedAt: "2024-03-05 14:07"`) && !strings.Contains(out, "savedAt: 2024-03-05 14:07") {
		t.Errorf("Format() output missing savedAt:\n%s", out)
	}
}
