package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/vietdv277/nimbus/internal/retry"
)

// amiParameterPaths maps an EKS AMI type to the path segment of the
// public SSM parameter that publishes the recommended AMI release for
// a Kubernetes version. Types without a published parameter (custom
// AMIs, launch templates) are absent.
var amiParameterPaths = map[string]string{
	"AL2_x86_64":             "amazon-linux-2",
	"AL2_x86_64_GPU":         "amazon-linux-2-gpu",
	"AL2_ARM_64":             "amazon-linux-2-arm64",
	"AL2023_x86_64_STANDARD": "amazon-linux-2023/x86_64/standard",
	"AL2023_ARM_64_STANDARD": "amazon-linux-2023/arm64/standard",
	"AL2023_x86_64_NVIDIA":   "amazon-linux-2023/x86_64/nvidia",
	"AL2023_ARM_64_NVIDIA":   "amazon-linux-2023/arm64/nvidia",
}

// ErrNoRecommendedRelease is returned for AMI types that have no
// published recommended release; callers fall back to version-only
// comparison.
var ErrNoRecommendedRelease = fmt.Errorf("no recommended release parameter for this AMI type")

// LatestReleaseVersion returns the recommended AMI release for the
// given Kubernetes version and AMI type, read from the public SSM
// parameter EKS publishes for its optimized AMIs.
func (c *Client) LatestReleaseVersion(ctx context.Context, kubernetesVersion, amiType string) (string, error) {
	path, ok := amiParameterPaths[amiType]
	if !ok {
		return "", ErrNoRecommendedRelease
	}

	name := fmt.Sprintf("/aws/service/eks/optimized-ami/%s/%s/recommended/release_version", kubernetesVersion, path)

	var output *ssm.GetParameterOutput
	err := retry.OnThrottle(ctx, func() error {
		var err error
		output, err = c.SSM.GetParameter(ctx, &ssm.GetParameterInput{Name: aws.String(name)})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to read recommended release %q: %w", name, err)
	}
	if output.Parameter == nil || output.Parameter.Value == nil {
		return "", fmt.Errorf("recommended release parameter %q is empty", name)
	}

	return strings.TrimSpace(*output.Parameter.Value), nil
}
