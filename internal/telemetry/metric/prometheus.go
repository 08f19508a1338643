package metric

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/yndnr/snapkeep-go/internal/core/domain"
)

const namespace = "snapkeep"

// ResultOK labels a successful operation.
const ResultOK = "ok"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Operations counts snapshot operations by name and result. Result is
	// "ok" or the domain error code.
	Operations *prometheus.CounterVec

	// StorageFaults counts backend faults absorbed by the adapter.
	StorageFaults *prometheus.CounterVec

	// Snapshots is the number of snapshots seen by the last listing.
	Snapshots prometheus.Gauge
}

// NewRegistry creates a registry with all snapkeep metrics registered.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Snapshot operations by operation and result",
		}, []string{"op", "result"}),
		StorageFaults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_faults_total",
			Help:      "Storage faults absorbed by the persistence adapter",
		}, []string{"op"}),
		Snapshots: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshots",
			Help:      "Number of snapshots in the store at the last listing",
		}),
	}

	r.registry.MustRegister(r.Operations, r.StorageFaults, r.Snapshots)
	return r
}

// Registerer exposes the underlying registry for engine collectors.
func (r *Registry) Registerer() prometheus.Registerer {
	return r.registry
}

// Gatherer exposes the underlying registry for reads.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// ObserveFault implements storage.FaultObserver.
func (r *Registry) ObserveFault(op string) {
	r.StorageFaults.WithLabelValues(op).Inc()
}

// ObserveOperation records the outcome of a snapshot operation.
func (r *Registry) ObserveOperation(op string, err error) {
	r.Operations.WithLabelValues(op, resultOf(err)).Inc()
}

// SetSnapshots records the snapshot count.
func (r *Registry) SetSnapshots(n int) {
	r.Snapshots.Set(float64(n))
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if err := writeFamily(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// Families returns the gathered metric families, for structured output.
func (r *Registry) Families() ([]*dto.MetricFamily, error) {
	return r.registry.Gather()
}

func writeFamily(w io.Writer, mf *dto.MetricFamily) error {
	if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
		return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
	}
	return nil
}

func resultOf(err error) string {
	if err == nil {
		return ResultOK
	}
	if code := domain.GetErrorCode(err); code != "" {
		return code
	}
	return "error"
}
