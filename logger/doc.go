// Package logger is a thin structured logging wrapper over zap.
//
// Production environments log JSON, development environments log
// human-readable console lines. Output can additionally be written to a
// rotating file. Messages are sanitized against log injection, and Log picks
// up OpenTelemetry trace and span IDs from the context when present.
package logger
