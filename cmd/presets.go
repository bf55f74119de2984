package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codevault/lw-compiler/constants/lipgloss"
	"github.com/codevault/lw-compiler/preset"
	"github.com/codevault/lw-compiler/wizard"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// presetsCmd groups the preset management subcommands.
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage saved build presets.",
	Long: `The 'presets' subcommand manages the named build configurations persisted
between sessions: list them, save a new one from flags, or delete one by id.
A corrupted preset file is reported once and treated as empty; saving again
replaces it.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the saved presets.",
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return
		}
		handlePresetsListCommand(rootDependencies)
	},
}

var presetsSaveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Save a preset assembled from the given flags.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return
		}
		handlePresetsSaveCommand(rootDependencies, cmd, args[0])
	},
}

var presetsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a preset by id.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return
		}
		handlePresetsDeleteCommand(rootDependencies, args[0])
	},
}

func init() {
	presetsSaveCmd.Flags().String("mode", "generic", "Protection mode stored in the preset ('generic', 'demo' or 'none').")
	presetsSaveCmd.Flags().Int("demo-duration", wizard.DefaultDemoDuration, "Demo trial duration in minutes.")
	presetsSaveCmd.Flags().Bool("hide-console", false, "Hide the console window of the packaged executable.")
	presetsSaveCmd.Flags().String("icon", "", "Path of the executable icon (.ico or .png).")
	presetsSaveCmd.Flags().StringSlice("include", nil, "Packages to force-include in the bundle.")
	presetsSaveCmd.Flags().StringSlice("exclude", nil, "Packages to exclude from the bundle.")
	presetsSaveCmd.Flags().StringSlice("data", nil, "Data folders bundled alongside the executable.")

	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsSaveCmd)
	presetsCmd.AddCommand(presetsDeleteCmd)
	rootCmd.AddCommand(presetsCmd)
}

func handlePresetsListCommand(rootDependencies *RootDependencies) {
	presets, err := rootDependencies.PresetStore.Load()
	if err != nil {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Preset store unreadable, showing an empty list: %v", err)))
	}
	if len(presets) == 0 {
		fmt.Println(lipgloss.Gray.Render("No presets saved."))
		return
	}

	tableData := pterm.TableData{{"Id", "Name", "Mode", "Console", "Created"}}
	for _, p := range presets {
		mode := "generic"
		if p.Config.DemoMode {
			mode = fmt.Sprintf("demo (%dm)", p.Config.DemoDuration)
		}
		console := "shown"
		if !p.Config.ShowConsole {
			console = "hidden"
		}
		tableData = append(tableData, []string{
			p.ID,
			p.Name,
			mode,
			console,
			p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

func handlePresetsSaveCommand(rootDependencies *RootDependencies, cmd *cobra.Command, name string) {
	modeValue, _ := cmd.Flags().GetString("mode")
	mode, err := wizard.ParseProtectionMode(modeValue)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}

	duration, _ := cmd.Flags().GetInt("demo-duration")
	if mode == wizard.ModeDemo && !wizard.IsAllowedDemoDuration(duration) {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("demo duration %d is not one of the allowed values %v", duration, wizard.AllowedDemoDurations)))
		return
	}

	hideConsole, _ := cmd.Flags().GetBool("hide-console")
	iconValue, _ := cmd.Flags().GetString("icon")
	include, _ := cmd.Flags().GetStringSlice("include")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	data, _ := cmd.Flags().GetStringSlice("data")

	var iconPath *string
	if iconValue != "" {
		iconPath = &iconValue
	}

	config := preset.Config{
		ShowConsole:         !hideConsole,
		IncludePackages:     include,
		ExcludePackages:     exclude,
		SelectedDataFolders: data,
		DemoMode:            mode == wizard.ModeDemo,
		DemoDuration:        duration,
		IconPath:            iconPath,
	}

	saved, err := rootDependencies.PresetStore.Save(name, config)
	if err != nil {
		switch {
		case errors.Is(err, preset.ErrInvalidName):
			fmt.Println(lipgloss.Red.Render("Preset names must not be empty or whitespace."))
		case errors.Is(err, preset.ErrDuplicateName):
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("A preset named %q already exists.", strings.TrimSpace(name))))
		default:
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		}
		return
	}

	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("Saved preset %q (%s)", saved.Name, saved.ID)))
}

func handlePresetsDeleteCommand(rootDependencies *RootDependencies, id string) {
	deleted, err := rootDependencies.PresetStore.Delete(id)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}
	if !deleted {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("No preset with id %q.", id)))
		return
	}
	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("Deleted preset %q.", id)))
}
