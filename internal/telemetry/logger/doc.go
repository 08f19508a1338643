// Package logger provides structured logging for snapkeep.
//
// It wraps log/slog:
//
//   - logger.go: Logger interface, handler construction, dynamic level
//   - handler.go: op_id tagging of records logged with a context
//   - context.go: context propagation of the logger and operation IDs
//   - redact.go: masking of payloads and secrets before they are written
package logger
