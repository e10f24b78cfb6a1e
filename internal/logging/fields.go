package logging

import "log/slog"

// Structured log keys shared across packages.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldError      = "error"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDurationMS = "duration_ms"

	FieldRunID    = "run_id"
	FieldTeamKey  = "team_key"
	FieldDate     = "date"
	FieldProvider = "provider"
	FieldChannel  = "channel"
	FieldCount    = "count"
	FieldOutcome  = "outcome"
)

// serviceAttrs returns the process-wide attributes every record carries.
func serviceAttrs(service, version string) []slog.Attr {
	var attrs []slog.Attr
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
