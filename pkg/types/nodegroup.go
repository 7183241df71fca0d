package types

// NodeGroup represents an EKS managed node group
type NodeGroup struct {
	Name           string
	Version        string // Kubernetes version of the nodes
	ReleaseVersion string // AMI release, e.g. 1.31.3-20250620
	Status         string
	AMIType        string // AL2_x86_64, AL2023_ARM_64_STANDARD, CUSTOM, ...

	MinSize     int
	DesiredSize int
	MaxSize     int

	// AutoScalingGroups names the backing ASGs, for capacity reporting
	AutoScalingGroups []string
}

// AutoScalingGroup carries the capacity and health of an ASG backing a
// node group, for the notification report only
type AutoScalingGroup struct {
	Name            string
	DesiredCapacity int
	InstanceCount   int
	HealthyCount    int
	UnhealthyCount  int
}
