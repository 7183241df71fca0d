package engine

import (
	"context"

	awsapi "github.com/vietdv277/nimbus/internal/aws"
	pkgtypes "github.com/vietdv277/nimbus/pkg/types"
)

// upgradeControlPlane produces this run's single outcome for the
// cluster's control plane
func (e *Engine) upgradeControlPlane(ctx context.Context, cluster *pkgtypes.Cluster) pkgtypes.Outcome {
	res, err := e.resolveControlPlane(ctx, cluster)
	if err != nil {
		return failedResolution(cluster.Version, err)
	}

	dec := e.authorizeControlPlane(cluster, res)
	return e.execute(res, dec, func() (string, error) {
		return e.platform.UpdateClusterVersion(ctx, cluster.Name, res.TargetVersion)
	}, "")
}

// upgradeAddon produces this run's single outcome for one addon
func (e *Engine) upgradeAddon(ctx context.Context, cluster *pkgtypes.Cluster, addon pkgtypes.Addon) pkgtypes.Outcome {
	res, err := e.resolveAddon(ctx, cluster, addon)
	if err != nil {
		return failedResolution(addon.Version, err)
	}

	dec := e.authorizeAddon(cluster.Name, addon, res)
	return e.execute(res, dec, func() (string, error) {
		return e.platform.UpdateAddon(ctx, cluster.Name, addon, res.TargetVersion)
	}, "")
}

// upgradeNodeGroup produces this run's single outcome for one node
// group. The update never forces eviction; a disruption-budget
// rejection becomes a blocked outcome carrying the manual command.
func (e *Engine) upgradeNodeGroup(ctx context.Context, cluster *pkgtypes.Cluster, group pkgtypes.NodeGroup) pkgtypes.Outcome {
	res, err := e.resolveNodeGroup(ctx, cluster, group)
	if err != nil {
		return failedResolution(group.Version, err)
	}

	dec := e.authorizeNodeGroup(cluster.Name, group)
	return e.execute(res, dec, func() (string, error) {
		return e.platform.UpdateNodeGroupVersion(ctx, cluster.Name, group.Name, cluster.Version)
	}, forcedNodeGroupUpgrade(cluster.Name, group.Name))
}

// execute turns a resolution and a gate decision into the resource's
// outcome, invoking the platform at most once. Failed outcomes are
// never retried within a run; the next scheduled run re-detects the
// version delta from fresh state.
func (e *Engine) execute(res *Resolution, dec Decision, invoke func() (string, error), disruptionHint string) pkgtypes.Outcome {
	out := pkgtypes.Outcome{
		CurrentVersion: res.CurrentVersion,
		TargetVersion:  res.TargetVersion,
		CurrentRelease: res.CurrentRelease,
		TargetRelease:  res.TargetRelease,
	}

	if res.UpToDate {
		out.Status = pkgtypes.StatusUpToDate
		return out
	}

	if !dec.Allow {
		out.Status = pkgtypes.StatusBlocked
		out.Reason = dec.Reason
		out.Remediation = dec.Remediation
		return out
	}

	id, err := invoke()
	if err == nil {
		out.Status = pkgtypes.StatusInitiated
		out.UpdateID = id
		return out
	}

	if disruptionHint != "" && awsapi.IsDisruptionBlocked(err) {
		out.Status = pkgtypes.StatusBlocked
		out.Reason = "pods cannot be evicted within their disruption budgets"
		out.Remediation = disruptionHint
		return out
	}

	kind, detail := awsapi.ClassifyError(err)
	out.Status = pkgtypes.StatusFailed
	out.FailureKind = kind
	out.Error = detail
	return out
}

// failedResolution records a platform query failure as this resource's
// outcome without aborting the cluster or the run
func failedResolution(currentVersion string, err error) pkgtypes.Outcome {
	kind, detail := awsapi.ClassifyError(err)
	return pkgtypes.Outcome{
		Status:         pkgtypes.StatusFailed,
		CurrentVersion: currentVersion,
		FailureKind:    kind,
		Error:          detail,
	}
}
