package types

// InsightStatusPassing is the only upgrade-readiness status that does
// not block a control plane upgrade.
const InsightStatusPassing = "PASSING"

// Insight is an upgrade-readiness finding reported by the platform
type Insight struct {
	ID     string
	Name   string
	Status string // PASSING, WARNING, ERROR, UNKNOWN
	Reason string
}

// Blocking reports whether this insight prevents an automated upgrade
func (i Insight) Blocking() bool {
	return i.Status != InsightStatusPassing
}
