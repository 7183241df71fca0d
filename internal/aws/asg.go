package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/autoscaling"

	"github.com/vietdv277/nimbus/internal/retry"
	pkgtypes "github.com/vietdv277/nimbus/pkg/types"
)

// DescribeCapacity returns the capacity and instance health of the
// auto scaling groups backing a node group, for the notification
// report. Missing groups are simply absent from the result.
func (c *Client) DescribeCapacity(ctx context.Context, names []string) ([]pkgtypes.AutoScalingGroup, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var output *autoscaling.DescribeAutoScalingGroupsOutput
	err := retry.OnThrottle(ctx, func() error {
		var err error
		output, err = c.ASG.DescribeAutoScalingGroups(ctx, &autoscaling.DescribeAutoScalingGroupsInput{
			AutoScalingGroupNames: names,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe auto scaling groups: %w", err)
	}

	var groups []pkgtypes.AutoScalingGroup
	for _, g := range output.AutoScalingGroups {
		asg := pkgtypes.AutoScalingGroup{
			Name:            deref(g.AutoScalingGroupName),
			DesiredCapacity: int(deref32(g.DesiredCapacity)),
		}

		for _, inst := range g.Instances {
			asg.InstanceCount++
			if inst.HealthStatus != nil {
				if *inst.HealthStatus == "Healthy" {
					asg.HealthyCount++
				} else {
					asg.UnhealthyCount++
				}
			}
		}

		groups = append(groups, asg)
	}

	return groups, nil
}
