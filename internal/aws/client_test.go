package aws

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateSharedConfig keeps the host's ~/.aws files and env out of the test
func isolateSharedConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
}

func TestNewClient_ResolvesExplicitRegion(t *testing.T) {
	isolateSharedConfig(t)

	client, err := NewClient(context.Background(), WithRegion("ap-southeast-1"))
	require.NoError(t, err)

	assert.Equal(t, "ap-southeast-1", client.Region())
	assert.NotNil(t, client.EKS)
	assert.NotNil(t, client.SNS)
	assert.NotNil(t, client.SSM)
	assert.NotNil(t, client.ASG)
	assert.NotNil(t, client.STS)
}

func TestNewClient_RegionFromEnv(t *testing.T) {
	isolateSharedConfig(t)
	t.Setenv("AWS_REGION", "eu-west-1")

	client, err := NewClient(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", client.Region())
}

func TestNewClient_ExplicitRegionWinsOverEnv(t *testing.T) {
	isolateSharedConfig(t)
	t.Setenv("AWS_REGION", "eu-west-1")

	client, err := NewClient(context.Background(), WithRegion("us-east-1"))
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", client.Region())
}
