// Package confloader loads layered configuration with koanf.
//
// Priority (highest to lowest):
//
//  1. Overrides (command-line flags)
//  2. Environment variables
//  3. Configuration file (YAML)
//  4. Defaults
//
// Environment variables map onto keys by replacing dots with underscores,
// so SNAPKEEP_HOST_CONFIG_KEY sets host.config_key. Keys that already
// exist in the defaults or the file are matched exactly; unknown names
// fall back to splitting on every underscore.
//
// The package also provides a Watcher that reports file changes, used to
// follow the data store.
package confloader
