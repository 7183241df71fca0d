package types

// OutcomeStatus is the terminal state of one resource in one run
type OutcomeStatus string

const (
	StatusUpToDate  OutcomeStatus = "up-to-date"
	StatusInitiated OutcomeStatus = "initiated"
	StatusBlocked   OutcomeStatus = "blocked"
	StatusFailed    OutcomeStatus = "failed"
)

// FailureKind classifies why an update invocation failed
type FailureKind string

const (
	FailureValidation FailureKind = "validation"
	FailurePermission FailureKind = "permission"
	FailureConflict   FailureKind = "conflict"
	FailureTransient  FailureKind = "transient"
	FailureUnknown    FailureKind = "unknown"
)

// Outcome records what happened to a single resource in a single run.
// Exactly one Outcome exists per resource per run; it is never retried
// or rewritten once produced.
type Outcome struct {
	Status OutcomeStatus

	CurrentVersion string
	TargetVersion  string
	CurrentRelease string // node groups: current AMI release
	TargetRelease  string // node groups: recommended AMI release

	// Initiated
	UpdateID string

	// Blocked
	Reason      string
	Remediation string // the manual command an operator would run

	// Failed
	FailureKind FailureKind
	Error       string
}

// NeedsAttention reports whether the outcome belongs in the
// blocked/failed section of a notification
func (o Outcome) NeedsAttention() bool {
	return o.Status == StatusBlocked || o.Status == StatusFailed
}
