package logger

import (
	"log/slog"
	"strings"
)

// sealedPrefix marks an encrypted snapshot payload.
const sealedPrefix = "sealed:v1:"

// Attribute key patterns whose values are never written verbatim. Snapshot
// payloads are the host's whole configuration and may carry personal data.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"encryption_key",
	"credential",
	"payload",
	"blob",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive masks a sealed value or fully redacts a value whose key
// looks sensitive. Groups are walked recursively.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()
		if strings.HasPrefix(strVal, sealedPrefix) {
			return slog.String(a.Key, sealedPrefix+"***")
		}

		if strVal != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// RedactString shortens a value for display: the first and last 8
// characters of anything longer than 24, or "***" for short secrets.
func RedactString(value string) string {
	if strings.HasPrefix(value, sealedPrefix) {
		return sealedPrefix + "***"
	}
	if len(value) <= 24 {
		return "***"
	}
	return value[:8] + "..." + value[len(value)-8:]
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
