// Package memory provides an in-process storage.Backend.
//
// It keeps every key in a map guarded by a RWMutex and is used as the
// default engine in tests. Faults can be injected per operation to
// exercise the degraded paths of the layers above it.
package memory
