// Package main provides the entry point for snapkeep.
//
// snapkeep keeps named snapshots of a host application's configuration in
// the key-value store the host persists to:
//
//   - save the active configuration under a name
//   - list, export and delete snapshots
//   - load a snapshot back as the active configuration
//
// Usage:
//
//	snapkeep save --name Work
//	snapkeep list -o json
//	snapkeep load Work
//	snapkeep --engine sqlite --data ./kv.db export --file work.json Work
package main
