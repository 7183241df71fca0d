package types

// RunType selects which pass the engine executes
type RunType string

const (
	// RunControlPlane upgrades control planes and addons
	RunControlPlane RunType = "control-plane"
	// RunNodeGroups upgrades managed node groups. Scheduled strictly
	// after the control-plane pass so addon compatibility is already
	// re-established before nodes are replaced.
	RunNodeGroups RunType = "nodegroups"
)

// AddonOutcome pairs an addon with its outcome for this run
type AddonOutcome struct {
	Addon   Addon
	Outcome Outcome
}

// NodeGroupOutcome pairs a node group with its outcome and, when
// available, the capacity of its backing ASGs
type NodeGroupOutcome struct {
	NodeGroup NodeGroup
	Capacity  []AutoScalingGroup
	Outcome   Outcome
}

// ClusterSummary is the unit of notification: everything that happened
// to one cluster in one run, in processing order
type ClusterSummary struct {
	Cluster      Cluster
	ControlPlane *Outcome // nil in the node-group pass
	Addons       []AddonOutcome
	NodeGroups   []NodeGroupOutcome
}

// Outcomes returns every outcome in the summary in processing order
func (s ClusterSummary) Outcomes() []Outcome {
	var out []Outcome
	if s.ControlPlane != nil {
		out = append(out, *s.ControlPlane)
	}
	for _, a := range s.Addons {
		out = append(out, a.Outcome)
	}
	for _, n := range s.NodeGroups {
		out = append(out, n.Outcome)
	}
	return out
}

// ResourceCount returns the number of resources considered for this cluster
func (s ClusterSummary) ResourceCount() int {
	return len(s.Outcomes())
}

// RunResult is the structured result handed back to the trigger
type RunResult struct {
	RunType           RunType
	ClustersSeen      int
	ClustersEligible  int
	ClustersProcessed int
	NotificationsSent int
	BudgetExhausted   bool
	Summaries         []ClusterSummary
}
