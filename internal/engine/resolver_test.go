package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	awsapi "github.com/vietdv277/nimbus/internal/aws"
	pkgtypes "github.com/vietdv277/nimbus/pkg/types"
)

func newTestEngine(p Platform, n Notifier) *Engine {
	return New(p, n, Options{AutoUpgrade: true})
}

func TestResolveControlPlane_UpToDate(t *testing.T) {
	fake := newFakePlatform()
	fake.availableVersions = []string{"1.31", "1.30", "1.29"}
	e := newTestEngine(fake, nil)

	res, err := e.resolveControlPlane(context.Background(), &pkgtypes.Cluster{Name: "c", Version: "1.31"})
	require.NoError(t, err)
	assert.True(t, res.UpToDate)
	assert.Empty(t, res.Insights)
}

func TestResolveControlPlane_UpgradePendingCarriesInsights(t *testing.T) {
	fake := newFakePlatform()
	fake.availableVersions = []string{"1.31", "1.30", "1.29"}
	fake.insights["c"] = []pkgtypes.Insight{{Name: "deprecated APIs", Status: "ERROR"}}
	e := newTestEngine(fake, nil)

	res, err := e.resolveControlPlane(context.Background(), &pkgtypes.Cluster{Name: "c", Version: "1.30"})
	require.NoError(t, err)
	assert.False(t, res.UpToDate)
	assert.Equal(t, "1.31", res.TargetVersion)
	assert.Len(t, res.Insights, 1)
}

func TestResolveControlPlane_SeveralMinorsBehindStepsOne(t *testing.T) {
	// the platform rejects multi-minor jumps; the target is always the
	// next increment, never the newest offered version
	fake := newFakePlatform()
	fake.availableVersions = []string{"1.33", "1.32", "1.31", "1.30"}
	e := newTestEngine(fake, nil)

	res, err := e.resolveControlPlane(context.Background(), &pkgtypes.Cluster{Name: "c", Version: "1.30"})
	require.NoError(t, err)
	assert.False(t, res.UpToDate)
	assert.Equal(t, "1.31", res.TargetVersion)
}

func TestResolveControlPlane_NewerThanOffered(t *testing.T) {
	// no newer version exists: up to date regardless of other signals
	fake := newFakePlatform()
	fake.availableVersions = []string{"1.30", "1.29"}
	e := newTestEngine(fake, nil)

	res, err := e.resolveControlPlane(context.Background(), &pkgtypes.Cluster{Name: "c", Version: "1.31"})
	require.NoError(t, err)
	assert.True(t, res.UpToDate)
}

func TestResolveAddon_ComparesAgainstCompatibleVersion(t *testing.T) {
	fake := newFakePlatform()
	fake.addonLatest["vpc-cni"] = "v1.19.2-eksbuild.5"
	e := newTestEngine(fake, nil)
	cluster := &pkgtypes.Cluster{Name: "c", Version: "1.30"}

	res, err := e.resolveAddon(context.Background(), cluster, pkgtypes.Addon{Name: "vpc-cni", Version: "v1.19.2-eksbuild.1"})
	require.NoError(t, err)
	assert.False(t, res.UpToDate)
	assert.Equal(t, "v1.19.2-eksbuild.5", res.TargetVersion)

	res, err = e.resolveAddon(context.Background(), cluster, pkgtypes.Addon{Name: "vpc-cni", Version: "v1.19.2-eksbuild.5"})
	require.NoError(t, err)
	assert.True(t, res.UpToDate)
}

func TestResolveAddon_EmptyCompatibilityListIsAnError(t *testing.T) {
	fake := newFakePlatform()
	e := newTestEngine(fake, nil)

	_, err := e.resolveAddon(context.Background(), &pkgtypes.Cluster{Name: "c", Version: "1.30"},
		pkgtypes.Addon{Name: "obscure-addon", Version: "v0.1.0"})
	assert.Error(t, err)
}

func TestResolveNodeGroup_TargetDerivedFromLiveClusterState(t *testing.T) {
	fake := newFakePlatform()
	fake.releases["1.31/AL2023_x86_64_STANDARD"] = "1.31.3-20250620"
	e := newTestEngine(fake, nil)
	cluster := &pkgtypes.Cluster{Name: "c", Version: "1.31"}

	// version behind the cluster: never up to date
	res, err := e.resolveNodeGroup(context.Background(), cluster, pkgtypes.NodeGroup{
		Name: "workers", Version: "1.30", ReleaseVersion: "1.30.4-20250601", AMIType: "AL2023_x86_64_STANDARD",
	})
	require.NoError(t, err)
	assert.False(t, res.UpToDate)
	assert.Equal(t, "1.31", res.TargetVersion)
	assert.Equal(t, "1.31.3-20250620", res.TargetRelease)

	// version matches but AMI release is stale
	res, err = e.resolveNodeGroup(context.Background(), cluster, pkgtypes.NodeGroup{
		Name: "workers", Version: "1.31", ReleaseVersion: "1.31.1-20250501", AMIType: "AL2023_x86_64_STANDARD",
	})
	require.NoError(t, err)
	assert.False(t, res.UpToDate)

	// fully current
	res, err = e.resolveNodeGroup(context.Background(), cluster, pkgtypes.NodeGroup{
		Name: "workers", Version: "1.31", ReleaseVersion: "1.31.3-20250620", AMIType: "AL2023_x86_64_STANDARD",
	})
	require.NoError(t, err)
	assert.True(t, res.UpToDate)
}

func TestResolveNodeGroup_CustomAMIFallsBackToVersionComparison(t *testing.T) {
	fake := newFakePlatform()
	fake.releaseErr["1.31/CUSTOM"] = awsapi.ErrNoRecommendedRelease
	e := newTestEngine(fake, nil)
	cluster := &pkgtypes.Cluster{Name: "c", Version: "1.31"}

	res, err := e.resolveNodeGroup(context.Background(), cluster, pkgtypes.NodeGroup{
		Name: "workers", Version: "1.31", ReleaseVersion: "custom-ami-7", AMIType: "CUSTOM",
	})
	require.NoError(t, err)
	assert.True(t, res.UpToDate)

	res, err = e.resolveNodeGroup(context.Background(), cluster, pkgtypes.NodeGroup{
		Name: "workers", Version: "1.30", ReleaseVersion: "custom-ami-7", AMIType: "CUSTOM",
	})
	require.NoError(t, err)
	assert.False(t, res.UpToDate)
	assert.Empty(t, res.TargetRelease)
}
