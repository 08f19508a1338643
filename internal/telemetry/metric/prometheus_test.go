package metric

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yndnr/snapkeep-go/internal/core/domain"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.registry == nil {
		t.Fatal("registry field is nil")
	}
	if r.Operations == nil || r.StorageFaults == nil || r.Snapshots == nil {
		t.Fatal("metrics not initialized")
	}

	// Two registries must not collide.
	NewRegistry()
}

func TestObserveOperation(t *testing.T) {
	r := NewRegistry()

	r.ObserveOperation("save", nil)
	r.ObserveOperation("save", nil)
	r.ObserveOperation("delete", domain.ErrPartialDelete.WithDetails("metadata"))
	r.ObserveOperation("load", fmt.Errorf("wrapped: %w", domain.ErrSnapshotNotFound))
	r.ObserveOperation("export", errors.New("disk full"))

	tests := []struct {
		op, result string
		want       float64
	}{
		{"save", ResultOK, 2},
		{"delete", "SK-SNAP-5002", 1},
		{"load", "SK-SNAP-4040", 1},
		{"export", "error", 1},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(r.Operations.WithLabelValues(tt.op, tt.result))
		if got != tt.want {
			t.Errorf("operations{op=%s,result=%s} = %v, want %v", tt.op, tt.result, got, tt.want)
		}
	}
}

func TestObserveFault(t *testing.T) {
	r := NewRegistry()
	r.ObserveFault("set")
	r.ObserveFault("set")
	r.ObserveFault("scan")

	if got := testutil.ToFloat64(r.StorageFaults.WithLabelValues("set")); got != 2 {
		t.Errorf("faults{op=set} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.StorageFaults.WithLabelValues("scan")); got != 1 {
		t.Errorf("faults{op=scan} = %v, want 1", got)
	}
}

func TestWriteText(t *testing.T) {
	r := NewRegistry()
	r.SetSnapshots(3)
	r.ObserveOperation("save", nil)

	var buf bytes.Buffer
	if err := r.WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# TYPE snapkeep_snapshots gauge",
		"snapkeep_snapshots 3",
		`snapkeep_operations_total{op="save",result="ok"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
