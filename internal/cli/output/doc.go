// Package output renders command results for the snapkeep CLI.
//
//   - formatter.go: Formatter interface and format parsing
//   - table.go: aligned text tables, the default for terminals
//   - json.go, yaml.go: machine-readable encodings
//
// Struct fields are labelled by their json tag. A `table:"-"` tag hides a
// field from tables while keeping it in JSON and YAML.
package output
