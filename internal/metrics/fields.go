package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrChannel  = "channel"
	AttrOutcome  = "outcome"
)

// Run outcomes reported by RecordRun.
const (
	OutcomeUnchanged = "unchanged"
	OutcomeSubmitted = "submitted"
	OutcomeRejected  = "rejected"
	OutcomeDryRun    = "dry_run"
	OutcomeFailed    = "failed"
)
