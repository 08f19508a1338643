// Package config defines the snapkeep configuration.
//
//   - spec.go: Config struct and its sections (koanf tags)
//   - default.go: default values and data paths
//   - loader.go: layered loading (defaults, file, SNAPKEEP_* env, flags)
//   - verify.go: validation
//   - sanitize.go: masked copy for display
//
// The default file is <user config dir>/snapkeep/config.yaml; it is read
// only when present unless a path is given explicitly.
package config
