// Package buildinfo provides build information for snapkeep.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/snapkeep-go/internal/infra/buildinfo.Version=v1.0.0"
//
// Fields left unset fall back to what the Go toolchain embedded in the
// binary (module version, VCS revision and time, compiler version).
package buildinfo
