package cmd

import (
	"fmt"
	"os"

	"github.com/codevault/lw-compiler/backend"
	"github.com/codevault/lw-compiler/config"
	"github.com/codevault/lw-compiler/constants/lipgloss"
	"github.com/codevault/lw-compiler/detector"
	detector_contracts "github.com/codevault/lw-compiler/detector/contracts"
	"github.com/codevault/lw-compiler/license"
	license_contracts "github.com/codevault/lw-compiler/license/contracts"
	"github.com/codevault/lw-compiler/preset"
	"github.com/spf13/cobra"
)

// RootDependencies holds the dependencies needed for the whole CLI.
type RootDependencies struct {
	Config        *config.Config
	Cwd           string
	Detector      detector_contracts.IEntryPointDetector
	PresetStore   *preset.Store
	LicenseClient license_contracts.ILicenseClient

	// IconConverter turns non-ico icons into .ico before packaging. Left nil
	// here: no converter ships with the CLI, so icons pass through as-is and
	// the backend handles them itself.
	IconConverter backend.IconConverter
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lw-compiler",
	Short: "lw-compiler packages python and node projects into protected executables.",
	Long: `lw-compiler scans a source project, ranks its entry point candidates, and
compiles a validated build manifest that drives the native packaging backend
(Nuitka for python, pkg for node). Presets persist frequently used build
configurations between sessions.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Println(config.DefaultConfig.Version)
			return
		}
		_ = cmd.Help()
	},
}

// handleRootCommand loads configuration and wires the shared dependencies.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	rootDependencies := &RootDependencies{}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		return nil
	}
	rootDependencies.Cwd = cwd

	rootDependencies.Config = config.LoadConfigs(rootCmd, cwd)

	rootDependencies.Detector = detector.NewEntryPointDetector()
	rootDependencies.PresetStore = preset.NewStore(preset.NewFilePort(rootDependencies.Config.PresetsPath))
	rootDependencies.LicenseClient = license.NewClient(&license.ClientConfig{
		BaseURL: rootDependencies.Config.LicenseServerConfig.BaseURL,
	})

	return rootDependencies
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	config.InitFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}
