package repl

import (
	"reflect"
	"testing"
)

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter([]string{"list", "load", "host show", "host  import", "list"})

	tests := []struct {
		prefix string
		want   []string
	}{
		{"l", []string{"list", "load"}},
		{"host ", []string{"host import", "host show"}},
		{"h", []string{"help", "history", "host import", "host show"}},
		{"zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			if got := c.Complete(tt.prefix); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Complete(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestCompleter_Known(t *testing.T) {
	c := NewCompleter([]string{"list", "host show"})

	for _, word := range []string{"list", "host", "exit", "help", "history"} {
		if !c.Known(word) {
			t.Errorf("Known(%q) = false", word)
		}
	}
	for _, word := range []string{"show", "lis", ""} {
		if c.Known(word) {
			t.Errorf("Known(%q) = true", word)
		}
	}
}
