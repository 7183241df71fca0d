package engine

import (
	"context"
	"fmt"

	pkgtypes "github.com/vietdv277/nimbus/pkg/types"
)

// fakePlatform implements Platform in memory and records every
// mutating call so tests can assert the no-op and never-force
// guarantees.
type fakePlatform struct {
	order             []string
	clusters          map[string]*pkgtypes.Cluster
	availableVersions []string // newest first
	insights          map[string][]pkgtypes.Insight
	addons            map[string][]pkgtypes.Addon
	addonLatest       map[string]string
	addonErr          map[string]error
	nodeGroups        map[string][]pkgtypes.NodeGroup
	releases          map[string]string // "k8sVersion/amiType" -> release
	releaseErr        map[string]error
	capacity          map[string]pkgtypes.AutoScalingGroup

	describeErr map[string]error
	updateErr   map[string]error // keyed by resource path

	clusterUpdates   []string // "cluster=version"
	addonUpdates     []recordedAddonUpdate
	nodeGroupUpdates []string // "cluster/nodegroup=version"
}

type recordedAddonUpdate struct {
	cluster string
	addon   pkgtypes.Addon
	version string
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		clusters:    map[string]*pkgtypes.Cluster{},
		insights:    map[string][]pkgtypes.Insight{},
		addons:      map[string][]pkgtypes.Addon{},
		addonLatest: map[string]string{},
		addonErr:    map[string]error{},
		nodeGroups:  map[string][]pkgtypes.NodeGroup{},
		releases:    map[string]string{},
		releaseErr:  map[string]error{},
		capacity:    map[string]pkgtypes.AutoScalingGroup{},
		describeErr: map[string]error{},
		updateErr:   map[string]error{},
	}
}

func (f *fakePlatform) addCluster(c pkgtypes.Cluster) {
	f.order = append(f.order, c.Name)
	f.clusters[c.Name] = &c
}

func (f *fakePlatform) mutations() int {
	return len(f.clusterUpdates) + len(f.addonUpdates) + len(f.nodeGroupUpdates)
}

func (f *fakePlatform) ListClusters(ctx context.Context) ([]string, error) {
	return f.order, nil
}

func (f *fakePlatform) DescribeCluster(ctx context.Context, name string) (*pkgtypes.Cluster, error) {
	if err := f.describeErr[name]; err != nil {
		return nil, err
	}
	c, ok := f.clusters[name]
	if !ok {
		return nil, fmt.Errorf("cluster %q not found", name)
	}
	return c, nil
}

func (f *fakePlatform) AvailableClusterVersions(ctx context.Context) ([]string, error) {
	if len(f.availableVersions) == 0 {
		return nil, fmt.Errorf("no cluster versions")
	}
	return f.availableVersions, nil
}

func (f *fakePlatform) ListUpgradeInsights(ctx context.Context, cluster string) ([]pkgtypes.Insight, error) {
	return f.insights[cluster], nil
}

func (f *fakePlatform) ListAddons(ctx context.Context, cluster string) ([]pkgtypes.Addon, error) {
	return f.addons[cluster], nil
}

func (f *fakePlatform) LatestAddonVersion(ctx context.Context, addonName, kubernetesVersion string) (string, error) {
	if err := f.addonErr[addonName]; err != nil {
		return "", err
	}
	latest, ok := f.addonLatest[addonName]
	if !ok {
		return "", fmt.Errorf("no versions of addon %q compatible with Kubernetes %s", addonName, kubernetesVersion)
	}
	return latest, nil
}

func (f *fakePlatform) ListNodeGroups(ctx context.Context, cluster string) ([]pkgtypes.NodeGroup, error) {
	return f.nodeGroups[cluster], nil
}

func (f *fakePlatform) LatestReleaseVersion(ctx context.Context, kubernetesVersion, amiType string) (string, error) {
	key := kubernetesVersion + "/" + amiType
	if err := f.releaseErr[key]; err != nil {
		return "", err
	}
	release, ok := f.releases[key]
	if !ok {
		return "", fmt.Errorf("no recommended release for %s", key)
	}
	return release, nil
}

func (f *fakePlatform) DescribeCapacity(ctx context.Context, groups []string) ([]pkgtypes.AutoScalingGroup, error) {
	var out []pkgtypes.AutoScalingGroup
	for _, name := range groups {
		if asg, ok := f.capacity[name]; ok {
			out = append(out, asg)
		}
	}
	return out, nil
}

func (f *fakePlatform) UpdateClusterVersion(ctx context.Context, cluster, version string) (string, error) {
	if err := f.updateErr[cluster]; err != nil {
		return "", err
	}
	f.clusterUpdates = append(f.clusterUpdates, cluster+"="+version)
	return fmt.Sprintf("update-cp-%d", len(f.clusterUpdates)), nil
}

func (f *fakePlatform) UpdateAddon(ctx context.Context, cluster string, addon pkgtypes.Addon, version string) (string, error) {
	if err := f.updateErr[cluster+"/"+addon.Name]; err != nil {
		return "", err
	}
	f.addonUpdates = append(f.addonUpdates, recordedAddonUpdate{cluster: cluster, addon: addon, version: version})
	return fmt.Sprintf("update-addon-%d", len(f.addonUpdates)), nil
}

func (f *fakePlatform) UpdateNodeGroupVersion(ctx context.Context, cluster, nodeGroup, version string) (string, error) {
	if err := f.updateErr[cluster+"/"+nodeGroup]; err != nil {
		return "", err
	}
	f.nodeGroupUpdates = append(f.nodeGroupUpdates, cluster+"/"+nodeGroup+"="+version)
	return fmt.Sprintf("update-ng-%d", len(f.nodeGroupUpdates)), nil
}

// fakeNotifier records published notifications
type fakeNotifier struct {
	subjects []string
	bodies   []string
	err      error
}

func (f *fakeNotifier) Publish(ctx context.Context, subject, message string) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, message)
	return nil
}
