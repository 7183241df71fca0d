package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vietdv277/nimbus/internal/config"
)

var (
	// Global flags
	profile string
	region  string
	cfgFile string

	cfg *config.Config
	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "nimbus",
	Short: "Nimbus - automated EKS upgrades for development clusters",
	Long: `Nimbus keeps the development EKS fleet current. It discovers clusters,
selects the ones tagged or named as development, and brings their control
planes, addons and managed node groups up to date within safety limits.

Upgrade Commands:
  nimbus upgrade clusters    # Upgrade control planes and addons
  nimbus upgrade nodegroups  # Upgrade managed node groups

Other Commands:
  nimbus status              # Show AWS identity and configuration
  nimbus config set          # Update the config file
  nimbus version             # Print version information

Production clusters are never touched. Node group upgrades never force
pod eviction; a blocked upgrade is reported with the manual command.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "AWS region to use")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.nimbus/config.yaml)")

	// Bind flags to viper
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))
}

func initConfig() {
	// Read from environment variables (NIMBUS_SNS_TOPIC_ARN, ...)
	viper.SetEnvPrefix("NIMBUS")
	viper.AutomaticEnv()

	path := cfgFile
	if path == "" {
		path = config.GetConfigPath()
	}

	loaded, err := config.LoadFrom(path)
	if err != nil {
		log.WithError(err).Warn("could not load config file, using defaults")
		loaded = &config.Config{}
	}
	cfg = loaded

	level := viper.GetString("log_level")
	if level == "" {
		level = cfg.LogLevel
	}
	if level != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			log.WithField("log_level", level).Warn("unknown log level, keeping info")
		} else {
			log.SetLevel(parsed)
		}
	}

	// Priority for profile: --profile flag > config file > AWS_PROFILE env
	if profile == "" {
		if cfg.AWSProfile != "" {
			profile = cfg.AWSProfile
		} else {
			profile = os.Getenv("AWS_PROFILE")
		}
	}

	// Use config then AWS_REGION if --region not specified
	if region == "" {
		region = cfg.AWSRegion
	}
	if region == "" {
		region = os.Getenv("AWS_REGION")
		if region == "" {
			region = os.Getenv("AWS_DEFAULT_REGION")
		}
	}
}
