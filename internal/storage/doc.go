// Package storage provides the persistence layer for snapkeep.
//
// Layout:
//
//   - kv.go: the Backend contract every engine implements
//   - adapter.go: the fault-absorbing Adapter the core talks to
//   - badger.go: Badger-backed engine for durable local storage
//   - sealed.go: optional at-rest encryption of snapshot payloads
//
// Further engines live in sub-packages (memory, file, sqlite) and share the
// conformance suite in storagetest.
//
// The store is shared with the host application: snapkeep only owns keys
// under its reserved prefix, plus the host configuration key it overwrites.
package storage
