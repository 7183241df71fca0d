package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vietdv277/nimbus/internal/aws"
	"github.com/vietdv277/nimbus/internal/engine"
	"github.com/vietdv277/nimbus/internal/ui"
	pkgtypes "github.com/vietdv277/nimbus/pkg/types"
)

var (
	topicARN  string
	runBudget time.Duration
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Run one upgrade pass over the development fleet",
	Long: `Run one bounded upgrade pass. Each pass walks every cluster, skips
anything that is not a development cluster, evaluates the selected
resources and sends one notification per cluster with work done.

Run the clusters pass first; schedule the nodegroups pass after it has
had time to complete, so addon compatibility is re-established before
nodes are replaced.

Examples:
  nimbus upgrade clusters
  nimbus upgrade nodegroups --budget 10m`,
}

var upgradeClustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "Upgrade control planes and their addons",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpgrade(cmd.Context(), pkgtypes.RunControlPlane)
	},
}

var upgradeNodegroupsCmd = &cobra.Command{
	Use:   "nodegroups",
	Short: "Upgrade managed node groups to match their control planes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpgrade(cmd.Context(), pkgtypes.RunNodeGroups)
	},
}

func init() {
	upgradeCmd.PersistentFlags().StringVar(&topicARN, "topic-arn", "", "SNS topic for notifications (overrides config)")
	upgradeCmd.PersistentFlags().DurationVar(&runBudget, "budget", 0, "wall-clock budget for this pass (overrides config)")
	upgradeCmd.AddCommand(upgradeClustersCmd)
	upgradeCmd.AddCommand(upgradeNodegroupsCmd)
	rootCmd.AddCommand(upgradeCmd)
}

func runUpgrade(ctx context.Context, runType pkgtypes.RunType) error {
	e, err := buildEngine(ctx)
	if err != nil {
		return err
	}

	var result *pkgtypes.RunResult
	if runType == pkgtypes.RunNodeGroups {
		result, err = e.RunNodeGroups(ctx)
	} else {
		result, err = e.RunControlPlane(ctx)
	}
	if err != nil {
		return fmt.Errorf("upgrade pass failed: %w", err)
	}

	ui.PrintRunTable(result)
	return nil
}

func buildEngine(ctx context.Context) (*engine.Engine, error) {
	client, err := aws.NewClient(ctx, aws.WithProfile(profile), aws.WithRegion(region))
	if err != nil {
		return nil, err
	}

	topic := topicARN
	if topic == "" {
		topic = viper.GetString("sns_topic_arn")
	}
	if topic == "" {
		topic = cfg.SNSTopicARN
	}
	if topic == "" {
		return nil, fmt.Errorf("no SNS topic configured: set sns_topic_arn in %s, NIMBUS_SNS_TOPIC_ARN, or --topic-arn", "~/.nimbus/config.yaml")
	}

	budget := runBudget
	if budget == 0 {
		budget, err = cfg.Budget()
		if err != nil {
			return nil, err
		}
	}

	autoUpgrade := cfg.AutoUpgrade()
	if viper.IsSet("enable_auto_upgrade") {
		autoUpgrade = viper.GetBool("enable_auto_upgrade")
	}

	return engine.New(client, &aws.TopicNotifier{Client: client, TopicARN: topic}, engine.Options{
		AutoUpgrade: autoUpgrade,
		Budget:      budget,
		Logger:      log,
	}), nil
}
