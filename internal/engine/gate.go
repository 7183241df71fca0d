package engine

import (
	"fmt"

	pkgtypes "github.com/vietdv277/nimbus/pkg/types"
)

// Decision is the safety gate's answer for one pending update
type Decision struct {
	Allow       bool
	Reason      string
	Remediation string
}

func allow() Decision {
	return Decision{Allow: true}
}

// authorizeControlPlane denies the upgrade when any upgrade-readiness
// insight is failing, when the cluster is mid-operation, or when
// automation is switched off.
func (e *Engine) authorizeControlPlane(cluster *pkgtypes.Cluster, res *Resolution) Decision {
	if cluster.Status != "ACTIVE" {
		return Decision{
			Reason:      fmt.Sprintf("cluster status is %s, not ACTIVE", cluster.Status),
			Remediation: "wait for the current operation to finish; the next scheduled run re-evaluates",
		}
	}

	var blocking int
	for _, insight := range res.Insights {
		if insight.Blocking() {
			blocking++
		}
	}
	if blocking > 0 {
		return Decision{
			Reason: fmt.Sprintf("%d failing upgrade-readiness insights", blocking),
			Remediation: fmt.Sprintf("review insights and resolve them, then re-run: aws eks list-insights --cluster-name %s",
				cluster.Name),
		}
	}

	if !e.autoUpgrade {
		return Decision{
			Reason:      "automatic upgrades are disabled",
			Remediation: manualClusterUpgrade(cluster.Name, res.TargetVersion),
		}
	}

	return allow()
}

// authorizeAddon allows addon updates unconditionally when automation
// is on; they are low-risk and the authentication configuration is
// re-attached by the executor in the same call.
func (e *Engine) authorizeAddon(cluster string, addon pkgtypes.Addon, res *Resolution) Decision {
	if !e.autoUpgrade {
		return Decision{
			Reason:      "automatic upgrades are disabled",
			Remediation: manualAddonUpgrade(cluster, addon.Name, res.TargetVersion),
		}
	}
	return allow()
}

// authorizeNodeGroup never authorizes forced eviction. The update is
// always requested with disruption protection on; if the platform then
// reports a disruption-budget violation the executor records the
// manual force command for a human to decide on.
func (e *Engine) authorizeNodeGroup(cluster string, group pkgtypes.NodeGroup) Decision {
	if !e.autoUpgrade {
		return Decision{
			Reason:      "automatic upgrades are disabled",
			Remediation: manualNodeGroupUpgrade(cluster, group.Name),
		}
	}
	return allow()
}

func manualClusterUpgrade(cluster, version string) string {
	return fmt.Sprintf("aws eks update-cluster-version --name %s --kubernetes-version %s", cluster, version)
}

func manualAddonUpgrade(cluster, addon, version string) string {
	return fmt.Sprintf("aws eks update-addon --cluster-name %s --addon-name %s --addon-version %s --resolve-conflicts OVERWRITE",
		cluster, addon, version)
}

func manualNodeGroupUpgrade(cluster, nodeGroup string) string {
	return fmt.Sprintf("aws eks update-nodegroup-version --cluster-name %s --nodegroup-name %s", cluster, nodeGroup)
}

// forcedNodeGroupUpgrade is only ever placed in a remediation hint,
// never executed: overriding a disruption budget is a human decision.
func forcedNodeGroupUpgrade(cluster, nodeGroup string) string {
	return manualNodeGroupUpgrade(cluster, nodeGroup) + " --force"
}
