package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pkgtypes "github.com/vietdv277/nimbus/pkg/types"
)

func TestAuthorizeControlPlane_BlockingInsightsDeny(t *testing.T) {
	e := newTestEngine(newFakePlatform(), nil)
	cluster := &pkgtypes.Cluster{Name: "demo-dev", Status: "ACTIVE"}

	dec := e.authorizeControlPlane(cluster, &Resolution{
		TargetVersion: "1.31",
		Insights: []pkgtypes.Insight{
			{Name: "deprecated APIs", Status: "ERROR"},
			{Name: "kubelet skew", Status: "WARNING"},
			{Name: "addon compat", Status: "PASSING"},
		},
	})

	assert.False(t, dec.Allow)
	assert.Contains(t, dec.Reason, "2 failing upgrade-readiness insights")
	assert.Contains(t, dec.Remediation, "demo-dev")
}

func TestAuthorizeControlPlane_PassingInsightsAllow(t *testing.T) {
	e := newTestEngine(newFakePlatform(), nil)
	cluster := &pkgtypes.Cluster{Name: "demo-dev", Status: "ACTIVE"}

	dec := e.authorizeControlPlane(cluster, &Resolution{
		TargetVersion: "1.31",
		Insights:      []pkgtypes.Insight{{Name: "all good", Status: "PASSING"}},
	})

	assert.True(t, dec.Allow)
}

func TestAuthorizeControlPlane_NonActiveClusterDenied(t *testing.T) {
	e := newTestEngine(newFakePlatform(), nil)
	dec := e.authorizeControlPlane(&pkgtypes.Cluster{Name: "demo-dev", Status: "UPDATING"}, &Resolution{})
	assert.False(t, dec.Allow)
	assert.Contains(t, dec.Reason, "UPDATING")
}

func TestAuthorize_AutoUpgradeDisabled(t *testing.T) {
	e := New(newFakePlatform(), nil, Options{AutoUpgrade: false})
	cluster := &pkgtypes.Cluster{Name: "demo-dev", Status: "ACTIVE"}

	cp := e.authorizeControlPlane(cluster, &Resolution{TargetVersion: "1.31"})
	assert.False(t, cp.Allow)
	assert.Equal(t, "aws eks update-cluster-version --name demo-dev --kubernetes-version 1.31", cp.Remediation)

	addon := e.authorizeAddon("demo-dev", pkgtypes.Addon{Name: "vpc-cni"}, &Resolution{TargetVersion: "v1.19.2-eksbuild.5"})
	assert.False(t, addon.Allow)
	assert.Contains(t, addon.Remediation, "update-addon")
	assert.Contains(t, addon.Remediation, "vpc-cni")

	ng := e.authorizeNodeGroup("demo-dev", pkgtypes.NodeGroup{Name: "workers"})
	assert.False(t, ng.Allow)
	assert.Contains(t, ng.Remediation, "update-nodegroup-version")
	assert.NotContains(t, ng.Remediation, "--force")
}

func TestAuthorizeAddonAndNodeGroup_AllowWhenEnabled(t *testing.T) {
	e := newTestEngine(newFakePlatform(), nil)

	assert.True(t, e.authorizeAddon("c", pkgtypes.Addon{Name: "coredns"}, &Resolution{}).Allow)
	assert.True(t, e.authorizeNodeGroup("c", pkgtypes.NodeGroup{Name: "workers"}).Allow)
}

func TestForcedNodeGroupUpgrade_IsHintOnly(t *testing.T) {
	hint := forcedNodeGroupUpgrade("demo-dev", "workers")
	assert.Equal(t, "aws eks update-nodegroup-version --cluster-name demo-dev --nodegroup-name workers --force", hint)
}
