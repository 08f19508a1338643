// Package service provides the snapshot services of snapkeep.
//
// The services contain the snapshot rules and talk to persistence only
// through the KV interface, so any storage engine (or an in-memory fake)
// can back them:
//
//   - SnapshotStore: save, list, read, export and delete snapshots
//   - ConfigBridge: capture and overwrite the host's active configuration
//   - UIStateStore: the presentation layer's persisted panel state
//
// Services hold no mutable state of their own. Cross-process writers are
// not coordinated; the last write wins.
package service
