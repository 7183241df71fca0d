package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/nimbus/internal/config"
	"github.com/vietdv277/nimbus/internal/ui"
)

var (
	setProfile     string
	setRegion      string
	setTopicARN    string
	setBudget      string
	setLogLevel    string
	setAutoUpgrade bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the engine configuration file",
	Long: `Manage the configuration file the upgrade engine reads.

Examples:
  nimbus config path
  nimbus config set --topic-arn arn:aws:sns:...:eks-upgrades
  nimbus config set --profile dev --region ap-southeast-1
  nimbus config set --auto-upgrade=false`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.GetConfigPath())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update settings in the config file",
	Long: `Update one or more settings in the config file. Settings not named
by a flag keep their current value.

Examples:
  nimbus config set --topic-arn arn:aws:sns:ap-southeast-1:123456789012:eks-upgrades
  nimbus config set --budget 10m --log-level debug`,
	RunE: runConfigSet,
}

func init() {
	configSetCmd.Flags().StringVar(&setProfile, "profile", "", "AWS profile to save")
	configSetCmd.Flags().StringVar(&setRegion, "region", "", "AWS region to save")
	configSetCmd.Flags().StringVar(&setTopicARN, "topic-arn", "", "SNS topic ARN for notifications")
	configSetCmd.Flags().StringVar(&setBudget, "budget", "", "wall-clock budget per pass, e.g. 4m")
	configSetCmd.Flags().StringVar(&setLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	configSetCmd.Flags().BoolVar(&setAutoUpgrade, "auto-upgrade", true, "enable mutating upgrade calls")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	current, err := config.LoadConfig()
	if err != nil {
		return err
	}

	changed := false
	if cmd.Flags().Changed("profile") {
		current.AWSProfile = setProfile
		changed = true
	}
	if cmd.Flags().Changed("region") {
		current.AWSRegion = setRegion
		changed = true
	}
	if cmd.Flags().Changed("topic-arn") {
		current.SNSTopicARN = setTopicARN
		changed = true
	}
	if cmd.Flags().Changed("budget") {
		current.RunBudget = setBudget
		if _, err := current.Budget(); err != nil {
			return err
		}
		changed = true
	}
	if cmd.Flags().Changed("log-level") {
		current.LogLevel = setLogLevel
		changed = true
	}
	if cmd.Flags().Changed("auto-upgrade") {
		v := setAutoUpgrade
		current.EnableAutoUpgrade = &v
		changed = true
	}

	if !changed {
		fmt.Println("nothing to change; pass at least one flag")
		return nil
	}

	if err := config.SaveConfig(current); err != nil {
		return err
	}

	fmt.Printf("Saved %s\n", ui.HintStyle.Render(config.GetConfigPath()))
	return nil
}
