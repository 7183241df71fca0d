package aws

import (
	"strings"

	ekstypes "github.com/aws/aws-sdk-go-v2/service/eks/types"

	pkgtypes "github.com/vietdv277/nimbus/pkg/types"
)

// toCluster converts an SDK cluster to the internal type, lower-casing
// tag keys and values once so the eligibility rules stay case-exact
func toCluster(c *ekstypes.Cluster) pkgtypes.Cluster {
	return pkgtypes.Cluster{
		Name:    deref(c.Name),
		Version: deref(c.Version),
		Status:  string(c.Status),
		Tags:    normalizeTags(c.Tags),
	}
}

func normalizeTags(tags map[string]string) map[string]string {
	normalized := make(map[string]string, len(tags))
	for k, v := range tags {
		normalized[strings.ToLower(k)] = strings.ToLower(v)
	}
	return normalized
}

func toAddon(a *ekstypes.Addon) pkgtypes.Addon {
	addon := pkgtypes.Addon{
		Name:                  deref(a.AddonName),
		Version:               deref(a.AddonVersion),
		AuthMode:              pkgtypes.AuthNone,
		ServiceAccountRoleARN: deref(a.ServiceAccountRoleArn),
		ConfigurationValues:   deref(a.ConfigurationValues),
	}

	// pod identity wins over IRSA when both are present; the caller
	// upgrades AuthMode once the associations have been resolved
	if addon.ServiceAccountRoleARN != "" {
		addon.AuthMode = pkgtypes.AuthIRSA
	}

	return addon
}

func toInsight(i ekstypes.InsightSummary) pkgtypes.Insight {
	insight := pkgtypes.Insight{
		ID:   deref(i.Id),
		Name: deref(i.Name),
	}
	if i.InsightStatus != nil {
		insight.Status = string(i.InsightStatus.Status)
		insight.Reason = deref(i.InsightStatus.Reason)
	}
	return insight
}

func toNodeGroup(ng *ekstypes.Nodegroup) pkgtypes.NodeGroup {
	group := pkgtypes.NodeGroup{
		Name:           deref(ng.NodegroupName),
		Version:        deref(ng.Version),
		ReleaseVersion: deref(ng.ReleaseVersion),
		Status:         string(ng.Status),
		AMIType:        string(ng.AmiType),
	}

	if ng.ScalingConfig != nil {
		group.MinSize = int(deref32(ng.ScalingConfig.MinSize))
		group.DesiredSize = int(deref32(ng.ScalingConfig.DesiredSize))
		group.MaxSize = int(deref32(ng.ScalingConfig.MaxSize))
	}

	if ng.Resources != nil {
		for _, asg := range ng.Resources.AutoScalingGroups {
			if asg.Name != nil {
				group.AutoScalingGroups = append(group.AutoScalingGroups, *asg.Name)
			}
		}
	}

	return group
}

// deref safely dereferences a string pointer
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// deref32 safely dereferences an int32 pointer
func deref32(i *int32) int32 {
	if i == nil {
		return 0
	}
	return *i
}
