// Package metric provides Prometheus metrics for snapkeep.
//
// Every CLI invocation owns a private registry. Snapshot operations, storage
// faults absorbed by the persistence adapter, and engine gauges are recorded
// there; `snapkeep stats` dumps it in the Prometheus text format.
package metric
