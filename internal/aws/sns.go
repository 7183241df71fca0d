package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Publish sends one notification to an SNS topic. Delivery and
// subscription handling are the topic's concern, not ours.
func (c *Client) Publish(ctx context.Context, topicARN, subject, message string) error {
	_, err := c.SNS.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %q: %w", topicARN, err)
	}
	return nil
}

// TopicNotifier binds a Client to a fixed SNS topic, satisfying the
// engine's notifier interface
type TopicNotifier struct {
	Client   *Client
	TopicARN string
}

// Publish sends subject and message to the bound topic
func (n *TopicNotifier) Publish(ctx context.Context, subject, message string) error {
	return n.Client.Publish(ctx, n.TopicARN, subject, message)
}
