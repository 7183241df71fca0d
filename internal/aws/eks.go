package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	ekstypes "github.com/aws/aws-sdk-go-v2/service/eks/types"
	"github.com/sirupsen/logrus"

	"github.com/vietdv277/nimbus/internal/retry"
	pkgtypes "github.com/vietdv277/nimbus/pkg/types"
)

// ListClusters returns the names of all EKS clusters in the account/region
func (c *Client) ListClusters(ctx context.Context) ([]string, error) {
	var names []string
	var nextToken *string

	for {
		var output *eks.ListClustersOutput
		err := retry.OnThrottle(ctx, func() error {
			var err error
			output, err = c.EKS.ListClusters(ctx, &eks.ListClustersInput{NextToken: nextToken})
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list clusters: %w", err)
		}

		names = append(names, output.Clusters...)

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return names, nil
}

// DescribeCluster returns one cluster with its tags normalized for
// eligibility matching
func (c *Client) DescribeCluster(ctx context.Context, name string) (*pkgtypes.Cluster, error) {
	var output *eks.DescribeClusterOutput
	err := retry.OnThrottle(ctx, func() error {
		var err error
		output, err = c.EKS.DescribeCluster(ctx, &eks.DescribeClusterInput{Name: aws.String(name)})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe cluster %q: %w", name, err)
	}
	if output.Cluster == nil {
		return nil, fmt.Errorf("cluster %q not found", name)
	}

	cluster := toCluster(output.Cluster)
	return &cluster, nil
}

// AvailableClusterVersions returns the Kubernetes versions EKS offers
// in this account/region, newest first as the platform returns them.
func (c *Client) AvailableClusterVersions(ctx context.Context) ([]string, error) {
	var output *eks.DescribeClusterVersionsOutput
	err := retry.OnThrottle(ctx, func() error {
		var err error
		output, err = c.EKS.DescribeClusterVersions(ctx, &eks.DescribeClusterVersionsInput{})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe cluster versions: %w", err)
	}
	if len(output.ClusterVersions) == 0 {
		return nil, fmt.Errorf("platform returned no cluster versions")
	}

	versions := make([]string, 0, len(output.ClusterVersions))
	for _, v := range output.ClusterVersions {
		if v.ClusterVersion != nil {
			versions = append(versions, *v.ClusterVersion)
		}
	}
	return versions, nil
}

// ListUpgradeInsights returns the cluster's upgrade-readiness insights
func (c *Client) ListUpgradeInsights(ctx context.Context, cluster string) ([]pkgtypes.Insight, error) {
	var insights []pkgtypes.Insight
	var nextToken *string

	for {
		var output *eks.ListInsightsOutput
		err := retry.OnThrottle(ctx, func() error {
			var err error
			output, err = c.EKS.ListInsights(ctx, &eks.ListInsightsInput{
				ClusterName: aws.String(cluster),
				Filter: &ekstypes.InsightsFilter{
					Categories: []ekstypes.Category{ekstypes.CategoryUpgradeReadiness},
				},
				NextToken: nextToken,
			})
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list insights for cluster %q: %w", cluster, err)
		}

		for _, i := range output.Insights {
			insights = append(insights, toInsight(i))
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return insights, nil
}

// ListAddons returns all addons installed on a cluster together with
// their authentication configuration. A describe failure for a single
// addon skips that addon, it does not fail the listing.
func (c *Client) ListAddons(ctx context.Context, cluster string) ([]pkgtypes.Addon, error) {
	var names []string
	var nextToken *string

	for {
		var output *eks.ListAddonsOutput
		err := retry.OnThrottle(ctx, func() error {
			var err error
			output, err = c.EKS.ListAddons(ctx, &eks.ListAddonsInput{
				ClusterName: aws.String(cluster),
				NextToken:   nextToken,
			})
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list addons for cluster %q: %w", cluster, err)
		}

		names = append(names, output.Addons...)

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	var addons []pkgtypes.Addon
	for _, name := range names {
		var output *eks.DescribeAddonOutput
		err := retry.OnThrottle(ctx, func() error {
			var err error
			output, err = c.EKS.DescribeAddon(ctx, &eks.DescribeAddonInput{
				ClusterName: aws.String(cluster),
				AddonName:   aws.String(name),
			})
			return err
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{"cluster": cluster, "addon": name}).
				WithError(err).Warn("skipping addon, describe failed")
			continue
		}
		if output.Addon == nil {
			continue
		}

		addon := toAddon(output.Addon)
		addon.PodIdentities = c.describePodIdentities(ctx, cluster, output.Addon.PodIdentityAssociations)
		if len(addon.PodIdentities) > 0 {
			addon.AuthMode = pkgtypes.AuthPodIdentity
		}

		addons = append(addons, addon)
	}

	return addons, nil
}

// describePodIdentities resolves association ARNs into the
// serviceAccount/roleArn pairs that must be re-attached on update
func (c *Client) describePodIdentities(ctx context.Context, cluster string, associationARNs []string) []pkgtypes.PodIdentityAssociation {
	var associations []pkgtypes.PodIdentityAssociation

	for _, arn := range associationARNs {
		// the association id is the last path segment of the ARN
		parts := strings.Split(arn, "/")
		id := parts[len(parts)-1]

		var output *eks.DescribePodIdentityAssociationOutput
		err := retry.OnThrottle(ctx, func() error {
			var err error
			output, err = c.EKS.DescribePodIdentityAssociation(ctx, &eks.DescribePodIdentityAssociationInput{
				ClusterName:   aws.String(cluster),
				AssociationId: aws.String(id),
			})
			return err
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{"cluster": cluster, "association": arn}).
				WithError(err).Warn("skipping pod identity association, describe failed")
			continue
		}
		if output.Association == nil {
			continue
		}

		associations = append(associations, pkgtypes.PodIdentityAssociation{
			ServiceAccount: deref(output.Association.ServiceAccount),
			RoleARN:        deref(output.Association.RoleArn),
		})
	}

	return associations
}

// LatestAddonVersion returns the newest addon version compatible with
// the given cluster Kubernetes version. An empty compatibility list is
// an error, never a silent up-to-date.
func (c *Client) LatestAddonVersion(ctx context.Context, addonName, kubernetesVersion string) (string, error) {
	var output *eks.DescribeAddonVersionsOutput
	err := retry.OnThrottle(ctx, func() error {
		var err error
		output, err = c.EKS.DescribeAddonVersions(ctx, &eks.DescribeAddonVersionsInput{
			AddonName:         aws.String(addonName),
			KubernetesVersion: aws.String(kubernetesVersion),
		})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe versions for addon %q: %w", addonName, err)
	}

	if len(output.Addons) == 0 || len(output.Addons[0].AddonVersions) == 0 {
		return "", fmt.Errorf("no versions of addon %q compatible with Kubernetes %s", addonName, kubernetesVersion)
	}

	// the first version listed is the latest compatible one
	latest := deref(output.Addons[0].AddonVersions[0].AddonVersion)
	if latest == "" {
		return "", fmt.Errorf("no usable version of addon %q for Kubernetes %s", addonName, kubernetesVersion)
	}

	return latest, nil
}

// ListNodeGroups returns all managed node groups of a cluster
func (c *Client) ListNodeGroups(ctx context.Context, cluster string) ([]pkgtypes.NodeGroup, error) {
	var names []string
	var nextToken *string

	for {
		var output *eks.ListNodegroupsOutput
		err := retry.OnThrottle(ctx, func() error {
			var err error
			output, err = c.EKS.ListNodegroups(ctx, &eks.ListNodegroupsInput{
				ClusterName: aws.String(cluster),
				NextToken:   nextToken,
			})
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list node groups for cluster %q: %w", cluster, err)
		}

		names = append(names, output.Nodegroups...)

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	var groups []pkgtypes.NodeGroup
	for _, name := range names {
		var output *eks.DescribeNodegroupOutput
		err := retry.OnThrottle(ctx, func() error {
			var err error
			output, err = c.EKS.DescribeNodegroup(ctx, &eks.DescribeNodegroupInput{
				ClusterName:   aws.String(cluster),
				NodegroupName: aws.String(name),
			})
			return err
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{"cluster": cluster, "nodegroup": name}).
				WithError(err).Warn("skipping node group, describe failed")
			continue
		}
		if output.Nodegroup == nil {
			continue
		}

		groups = append(groups, toNodeGroup(output.Nodegroup))
	}

	return groups, nil
}

// UpdateClusterVersion starts a control plane upgrade and returns the
// platform's asynchronous update id
func (c *Client) UpdateClusterVersion(ctx context.Context, cluster, version string) (string, error) {
	output, err := c.EKS.UpdateClusterVersion(ctx, &eks.UpdateClusterVersionInput{
		Name:    aws.String(cluster),
		Version: aws.String(version),
	})
	if err != nil {
		return "", fmt.Errorf("failed to update cluster %q to %s: %w", cluster, version, err)
	}

	return updateID(output.Update), nil
}

// UpdateAddon starts an addon update, re-attaching the addon's
// authentication configuration exactly as it was
func (c *Client) UpdateAddon(ctx context.Context, cluster string, addon pkgtypes.Addon, version string) (string, error) {
	input := &eks.UpdateAddonInput{
		ClusterName:      aws.String(cluster),
		AddonName:        aws.String(addon.Name),
		AddonVersion:     aws.String(version),
		ResolveConflicts: ekstypes.ResolveConflictsOverwrite,
	}

	if addon.ConfigurationValues != "" {
		input.ConfigurationValues = aws.String(addon.ConfigurationValues)
	}

	switch addon.AuthMode {
	case pkgtypes.AuthPodIdentity:
		for _, assoc := range addon.PodIdentities {
			input.PodIdentityAssociations = append(input.PodIdentityAssociations, ekstypes.AddonPodIdentityAssociations{
				ServiceAccount: aws.String(assoc.ServiceAccount),
				RoleArn:        aws.String(assoc.RoleARN),
			})
		}
	case pkgtypes.AuthIRSA:
		input.ServiceAccountRoleArn = aws.String(addon.ServiceAccountRoleARN)
	}

	output, err := c.EKS.UpdateAddon(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to update addon %q on cluster %q: %w", addon.Name, cluster, err)
	}

	return updateID(output.Update), nil
}

// UpdateNodeGroupVersion starts a node group upgrade. Force stays
// false unconditionally: pod disruption budgets are never overridden
// by automation.
func (c *Client) UpdateNodeGroupVersion(ctx context.Context, cluster, nodeGroup, version string) (string, error) {
	output, err := c.EKS.UpdateNodegroupVersion(ctx, &eks.UpdateNodegroupVersionInput{
		ClusterName:   aws.String(cluster),
		NodegroupName: aws.String(nodeGroup),
		Version:       aws.String(version),
		Force:         false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to update node group %q on cluster %q: %w", nodeGroup, cluster, err)
	}

	return updateID(output.Update), nil
}

func updateID(u *ekstypes.Update) string {
	if u == nil {
		return ""
	}
	return deref(u.Id)
}
