package engine

import (
	"context"
	"errors"

	awsapi "github.com/vietdv277/nimbus/internal/aws"
	"github.com/vietdv277/nimbus/internal/version"
	pkgtypes "github.com/vietdv277/nimbus/pkg/types"
)

// Resolution is the version-delta computed for one resource
type Resolution struct {
	UpToDate bool

	CurrentVersion string
	TargetVersion  string
	CurrentRelease string // node groups only
	TargetRelease  string // node groups only

	// Insights accompanies control plane resolutions that are not up
	// to date; the safety gate consumes them separately.
	Insights []pkgtypes.Insight
}

// resolveControlPlane steps the cluster one minor version at a time:
// the platform rejects multi-minor jumps, so a cluster several minors
// behind converges across scheduled runs. Insights are only queried
// when an upgrade is actually pending.
func (e *Engine) resolveControlPlane(ctx context.Context, cluster *pkgtypes.Cluster) (*Resolution, error) {
	available, err := e.platform.AvailableClusterVersions(ctx)
	if err != nil {
		return nil, err
	}

	res := &Resolution{CurrentVersion: cluster.Version, TargetVersion: cluster.Version}
	next, ok := version.NextMinor(cluster.Version, available)
	if !ok {
		res.UpToDate = true
		return res, nil
	}
	res.TargetVersion = next

	insights, err := e.platform.ListUpgradeInsights(ctx, cluster.Name)
	if err != nil {
		return nil, err
	}
	res.Insights = insights

	return res, nil
}

// resolveAddon compares an addon against the newest version compatible
// with the cluster's current control plane version. The globally
// newest addon version is deliberately not consulted: installing it on
// an older control plane is exactly the defect this prevents.
func (e *Engine) resolveAddon(ctx context.Context, cluster *pkgtypes.Cluster, addon pkgtypes.Addon) (*Resolution, error) {
	latest, err := e.platform.LatestAddonVersion(ctx, addon.Name, cluster.Version)
	if err != nil {
		return nil, err
	}

	return &Resolution{
		CurrentVersion: addon.Version,
		TargetVersion:  latest,
		UpToDate:       !version.Older(addon.Version, latest),
	}, nil
}

// resolveNodeGroup derives the target from the cluster's live state:
// the node group must run the cluster's current Kubernetes version on
// the latest recommended machine image for that version.
func (e *Engine) resolveNodeGroup(ctx context.Context, cluster *pkgtypes.Cluster, group pkgtypes.NodeGroup) (*Resolution, error) {
	res := &Resolution{
		CurrentVersion: group.Version,
		TargetVersion:  cluster.Version,
		CurrentRelease: group.ReleaseVersion,
	}

	latest, err := e.platform.LatestReleaseVersion(ctx, cluster.Version, group.AMIType)
	switch {
	case errors.Is(err, awsapi.ErrNoRecommendedRelease):
		// custom AMIs have no published recommendation; compare
		// versions only and let the update pick the newest image
	case err != nil:
		return nil, err
	default:
		res.TargetRelease = latest
	}

	versionCurrent := group.Version == cluster.Version
	releaseCurrent := res.TargetRelease == "" || group.ReleaseVersion == res.TargetRelease
	res.UpToDate = versionCurrent && releaseCurrent

	return res, nil
}
