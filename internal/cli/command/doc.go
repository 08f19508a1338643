// Package command provides CLI command definitions for snapkeep.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: App, global flags, per-invocation environment
//   - wire.go: backend selection and service construction
//   - snapshot.go: save, list, load, delete, export
//   - host.go: host configuration key (show, import)
//   - uistate.go: panel position state
//   - system.go: stats, config show, version
//   - shell.go: interactive mode over internal/cli/repl
//
// Commands follow a consistent pattern of resolving the environment,
// calling the appropriate service, and formatting output.
package command
