package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/codevault/lw-compiler/constants/lipgloss"
	license_models "github.com/codevault/lw-compiler/license/models"
	"github.com/codevault/lw-compiler/wizard"
	"github.com/spf13/cobra"
)

// keysCmd groups the license key subcommands.
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage license keys for generic-protection builds.",
	Long: `The 'keys' subcommand talks to the configured license server: issue new
keys for a packaged build, or validate an existing key the way the packaged
executable does at startup.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var keysIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue license keys for a build.",
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return
		}
		handleKeysIssueCommand(rootDependencies, cmd)
	},
}

var keysValidateCmd = &cobra.Command{
	Use:   "validate [key]",
	Short: "Validate a license key against the server.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return
		}
		handleKeysValidateCommand(rootDependencies, args[0])
	},
}

func init() {
	keysIssueCmd.Flags().Int("count", 1, "Number of keys to issue.")
	keysIssueCmd.Flags().Bool("demo", false, "Issue demo keys instead of full keys.")
	keysIssueCmd.Flags().Int("duration", wizard.DefaultDemoDuration, "Demo trial duration in minutes.")

	keysCmd.AddCommand(keysIssueCmd)
	keysCmd.AddCommand(keysValidateCmd)
	rootCmd.AddCommand(keysCmd)
}

func handleKeysIssueCommand(rootDependencies *RootDependencies, cmd *cobra.Command) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	count, _ := cmd.Flags().GetInt("count")
	demo, _ := cmd.Flags().GetBool("demo")
	duration, _ := cmd.Flags().GetInt("duration")

	if demo && !wizard.IsAllowedDemoDuration(duration) {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("demo duration %d is not one of the allowed values %v", duration, wizard.AllowedDemoDurations)))
		return
	}

	req := license_models.IssueRequest{
		Product:  rootDependencies.Config.LicenseServerConfig.Product,
		Count:    count,
		DemoMode: demo,
	}
	if demo {
		req.Duration = duration
	}

	resp, err := rootDependencies.LicenseClient.Issue(ctx, req)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}

	for _, key := range resp.Keys {
		fmt.Println(lipgloss.Cyan.Render(key))
	}
}

func handleKeysValidateCommand(rootDependencies *RootDependencies, key string) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	resp, err := rootDependencies.LicenseClient.Validate(ctx, license_models.ValidateRequest{
		LicenseKey: key,
	})
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}

	if resp.Status == "valid" {
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ %s", resp.Message)))
		return
	}
	fmt.Println(lipgloss.Red.Render(fmt.Sprintf("✗ %s: %s", resp.Status, resp.Message)))
}
