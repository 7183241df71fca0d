package types

// Cluster represents an EKS cluster as seen at the start of a run
type Cluster struct {
	Name    string
	Version string // control plane Kubernetes version
	Status  string // ACTIVE, UPDATING, etc.

	// Tags holds the cluster's resource tags with keys and values
	// lower-cased once at ingestion, so eligibility rules can use
	// plain substring matching.
	Tags map[string]string
}

// Eligibility is the verdict of the development-cluster classification
type Eligibility struct {
	Eligible bool
	Reason   string
}
