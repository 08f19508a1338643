// Package domain defines the core domain models for snapkeep.
//
// Domain models are pure value objects without any IO dependencies.
// This package contains:
//
//   - Snapshot / Entry: a saved copy of the host configuration and its listed form
//   - Metadata: the JSON record paired with every snapshot payload
//   - Key scheme: the reserved prefix and metadata suffix of managed keys
//   - UIState: the persisted panel position of the presentation layer
//   - Errors: domain error codes for every failure the core reports
package domain
