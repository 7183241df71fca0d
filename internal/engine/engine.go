// Package engine decides, per cluster and per resource, whether an
// upgrade is needed, applies it within workload-disruption limits, and
// aggregates the outcomes into one notification per cluster.
package engine

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	pkgtypes "github.com/vietdv277/nimbus/pkg/types"
)

// Platform is the cluster-orchestration surface the engine drives.
// *aws.Client implements it; tests substitute fakes.
type Platform interface {
	ListClusters(ctx context.Context) ([]string, error)
	DescribeCluster(ctx context.Context, name string) (*pkgtypes.Cluster, error)
	AvailableClusterVersions(ctx context.Context) ([]string, error)
	ListUpgradeInsights(ctx context.Context, cluster string) ([]pkgtypes.Insight, error)
	ListAddons(ctx context.Context, cluster string) ([]pkgtypes.Addon, error)
	LatestAddonVersion(ctx context.Context, addonName, kubernetesVersion string) (string, error)
	ListNodeGroups(ctx context.Context, cluster string) ([]pkgtypes.NodeGroup, error)
	LatestReleaseVersion(ctx context.Context, kubernetesVersion, amiType string) (string, error)
	DescribeCapacity(ctx context.Context, groups []string) ([]pkgtypes.AutoScalingGroup, error)
	UpdateClusterVersion(ctx context.Context, cluster, version string) (string, error)
	UpdateAddon(ctx context.Context, cluster string, addon pkgtypes.Addon, version string) (string, error)
	UpdateNodeGroupVersion(ctx context.Context, cluster, nodeGroup, version string) (string, error)
}

// Notifier delivers one rendered cluster summary
type Notifier interface {
	Publish(ctx context.Context, subject, message string) error
}

// Options configures an Engine
type Options struct {
	// AutoUpgrade enables mutating calls. When false every pending
	// update is reported as blocked with the manual command to run.
	AutoUpgrade bool
	// Budget is the wall-clock allowance for one run. Checked before
	// each resource; in-flight calls always complete.
	Budget time.Duration
	Logger *logrus.Logger
	// Clock is the time source, replaceable in tests
	Clock func() time.Time
}

// Engine is the upgrade decision and orchestration engine. It holds no
// state across runs; every run re-reads the fleet from the platform.
type Engine struct {
	platform    Platform
	notifier    Notifier
	autoUpgrade bool
	budget      time.Duration
	log         *logrus.Logger
	now         func() time.Time
}

// DefaultBudget bounds a run when no budget is configured
const DefaultBudget = 4 * time.Minute

// New creates an Engine
func New(platform Platform, notifier Notifier, opts Options) *Engine {
	e := &Engine{
		platform:    platform,
		notifier:    notifier,
		autoUpgrade: opts.AutoUpgrade,
		budget:      opts.Budget,
		log:         opts.Logger,
		now:         opts.Clock,
	}
	if e.budget <= 0 {
		e.budget = DefaultBudget
	}
	if e.log == nil {
		e.log = logrus.StandardLogger()
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// RunControlPlane executes the control-plane-and-addons pass
func (e *Engine) RunControlPlane(ctx context.Context) (*pkgtypes.RunResult, error) {
	return e.run(ctx, pkgtypes.RunControlPlane)
}

// RunNodeGroups executes the node-group pass. Schedule it after the
// control-plane pass has had time to complete, so addon compatibility
// is re-established before nodes are replaced.
func (e *Engine) RunNodeGroups(ctx context.Context) (*pkgtypes.RunResult, error) {
	return e.run(ctx, pkgtypes.RunNodeGroups)
}

func (e *Engine) run(ctx context.Context, runType pkgtypes.RunType) (*pkgtypes.RunResult, error) {
	deadline := e.now().Add(e.budget)
	result := &pkgtypes.RunResult{RunType: runType}

	names, err := e.platform.ListClusters(ctx)
	if err != nil {
		return nil, err
	}
	result.ClustersSeen = len(names)

	for _, name := range names {
		if e.expired(deadline) {
			result.BudgetExhausted = true
			e.log.WithField("cluster", name).Warn("run budget exhausted, remaining clusters left for next run")
			break
		}

		cluster, err := e.platform.DescribeCluster(ctx, name)
		if err != nil {
			e.log.WithField("cluster", name).WithError(err).Error("describe failed, skipping cluster")
			continue
		}

		verdict := Classify(cluster)
		if !verdict.Eligible {
			e.log.WithFields(logrus.Fields{"cluster": name, "reason": verdict.Reason}).
				Debug("cluster not eligible for automated upgrades")
			continue
		}
		result.ClustersEligible++

		var summary pkgtypes.ClusterSummary
		switch runType {
		case pkgtypes.RunNodeGroups:
			summary = e.processNodeGroups(ctx, cluster, deadline)
		default:
			summary = e.processControlPlaneAndAddons(ctx, cluster, deadline)
		}
		result.ClustersProcessed++
		result.Summaries = append(result.Summaries, summary)

		if summary.ResourceCount() == 0 {
			continue
		}

		subject, body := RenderNotification(summary, runType)
		if err := e.notifier.Publish(ctx, subject, body); err != nil {
			e.log.WithField("cluster", name).WithError(err).Error("failed to send notification")
			continue
		}
		result.NotificationsSent++
	}

	if !result.BudgetExhausted && e.expired(deadline) {
		result.BudgetExhausted = true
	}

	e.log.WithFields(logrus.Fields{
		"run":       string(runType),
		"seen":      result.ClustersSeen,
		"eligible":  result.ClustersEligible,
		"processed": result.ClustersProcessed,
		"notified":  result.NotificationsSent,
	}).Info("run complete")

	return result, nil
}

// processControlPlaneAndAddons handles run type A for one cluster:
// control plane first, then each addon, outcomes in processing order
func (e *Engine) processControlPlaneAndAddons(ctx context.Context, cluster *pkgtypes.Cluster, deadline time.Time) pkgtypes.ClusterSummary {
	summary := pkgtypes.ClusterSummary{Cluster: *cluster}

	out := e.upgradeControlPlane(ctx, cluster)
	summary.ControlPlane = &out
	e.logOutcome(cluster.Name, "control plane", out)

	addons, err := e.platform.ListAddons(ctx, cluster.Name)
	if err != nil {
		// isolated: the control plane outcome still gets reported
		e.log.WithField("cluster", cluster.Name).WithError(err).Error("failed to list addons")
		return summary
	}

	for _, addon := range addons {
		if e.expired(deadline) {
			e.log.WithField("cluster", cluster.Name).Warn("run budget exhausted, remaining addons left for next run")
			break
		}
		out := e.upgradeAddon(ctx, cluster, addon)
		summary.Addons = append(summary.Addons, pkgtypes.AddonOutcome{Addon: addon, Outcome: out})
		e.logOutcome(cluster.Name, "addon "+addon.Name, out)
	}

	return summary
}

// processNodeGroups handles run type B for one cluster
func (e *Engine) processNodeGroups(ctx context.Context, cluster *pkgtypes.Cluster, deadline time.Time) pkgtypes.ClusterSummary {
	summary := pkgtypes.ClusterSummary{Cluster: *cluster}

	groups, err := e.platform.ListNodeGroups(ctx, cluster.Name)
	if err != nil {
		e.log.WithField("cluster", cluster.Name).WithError(err).Error("failed to list node groups")
		return summary
	}

	for _, group := range groups {
		if e.expired(deadline) {
			e.log.WithField("cluster", cluster.Name).Warn("run budget exhausted, remaining node groups left for next run")
			break
		}

		out := e.upgradeNodeGroup(ctx, cluster, group)

		capacity, err := e.platform.DescribeCapacity(ctx, group.AutoScalingGroups)
		if err != nil {
			e.log.WithFields(logrus.Fields{"cluster": cluster.Name, "nodegroup": group.Name}).
				WithError(err).Debug("capacity lookup failed, omitting from report")
		}

		summary.NodeGroups = append(summary.NodeGroups, pkgtypes.NodeGroupOutcome{
			NodeGroup: group,
			Capacity:  capacity,
			Outcome:   out,
		})
		e.logOutcome(cluster.Name, "node group "+group.Name, out)
	}

	return summary
}

// expired reports whether the run budget is used up
func (e *Engine) expired(deadline time.Time) bool {
	return !e.now().Before(deadline)
}

func (e *Engine) logOutcome(cluster, resource string, out pkgtypes.Outcome) {
	fields := logrus.Fields{"cluster": cluster, "resource": resource, "status": string(out.Status)}
	if out.UpdateID != "" {
		fields["update_id"] = out.UpdateID
	}
	switch out.Status {
	case pkgtypes.StatusFailed:
		fields["kind"] = string(out.FailureKind)
		e.log.WithFields(fields).Error(out.Error)
	case pkgtypes.StatusBlocked:
		e.log.WithFields(fields).Warn(out.Reason)
	default:
		e.log.WithFields(fields).Info("resource evaluated")
	}
}
