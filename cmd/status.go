package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/nimbus/internal/aws"
	"github.com/vietdv277/nimbus/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show AWS identity and effective configuration",
	Long: `Display the identity the upgrade engine would run as and the
configuration an upgrade pass would use.

Examples:
  nimbus status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("Current Status")
	fmt.Println(ui.MutedStyle.Render("─────────────────────────────────"))
	fmt.Println()

	client, clientErr := aws.NewClient(cmd.Context(), aws.WithProfile(profile), aws.WithRegion(region))

	if profile != "" {
		fmt.Printf("Profile:  %s\n", ui.HeaderStyle.Render(profile))
	} else {
		fmt.Println("Profile:  " + ui.MutedStyle.Render("(default chain)"))
	}

	// the client knows the region the SDK resolved, which may come
	// from the shared config rather than flag or env
	effective := region
	if clientErr == nil && client.Region() != "" {
		effective = client.Region()
	}
	if effective != "" {
		fmt.Printf("Region:   %s\n", effective)
	} else {
		fmt.Println("Region:   " + ui.MutedStyle.Render("(not set)"))
	}

	if cfg.SNSTopicARN != "" {
		fmt.Printf("Topic:    %s\n", ui.MutedStyle.Render(cfg.SNSTopicARN))
	} else {
		fmt.Println("Topic:    " + ui.MutedStyle.Render("(not set)"))
	}
	if cfg.AutoUpgrade() {
		fmt.Println("Upgrades: " + ui.CurrentStyle.Render("automatic"))
	} else {
		fmt.Println("Upgrades: " + ui.UpdatingStyle.Render("report-only"))
	}
	fmt.Println()

	// Try to get caller identity
	fmt.Print("Auth:     ")
	err := clientErr
	if err == nil {
		var identity *aws.CallerIdentity
		identity, err = client.CallerIdentity(cmd.Context())
		if err == nil {
			fmt.Println(ui.CurrentStyle.Render("✓ Authenticated"))
			fmt.Printf("Account:  %s\n", identity.Account)
			fmt.Printf("User:     %s\n", identity.UserID)
			if identity.Arn != "" {
				fmt.Printf("ARN:      %s\n", ui.MutedStyle.Render(identity.Arn))
			}
			return nil
		}
	}

	fmt.Println(ui.BlockedStyle.Render("✗ Not authenticated"))
	fmt.Printf("          %s\n", ui.MutedStyle.Render(err.Error()))
	fmt.Println()
	fmt.Println("To authenticate:")
	if profile != "" {
		fmt.Printf("  aws sso login --profile %s\n", profile)
	} else {
		fmt.Println("  aws sso login --profile <profile>")
	}
	return nil
}
