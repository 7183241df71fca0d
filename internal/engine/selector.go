package engine

import (
	"strings"

	pkgtypes "github.com/vietdv277/nimbus/pkg/types"
)

// Classify decides whether a cluster may be managed automatically.
// Only development clusters are: an environment tag whose value
// mentions development, or a development-flavored name. Everything
// else, including clusters with missing or malformed tags, is left
// alone. Tags are already lower-cased at ingestion.
func Classify(cluster *pkgtypes.Cluster) pkgtypes.Eligibility {
	for key, value := range cluster.Tags {
		if key != "environment" && key != "env" {
			continue
		}
		if strings.Contains(value, "dev") {
			return pkgtypes.Eligibility{Eligible: true, Reason: "tagged as development environment"}
		}
	}

	if name := strings.ToLower(cluster.Name); strings.Contains(name, "dev") {
		return pkgtypes.Eligibility{Eligible: true, Reason: "development cluster name"}
	}

	return pkgtypes.Eligibility{Reason: "production or unclassified"}
}
