package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/codevault/lw-compiler/backend"
	"github.com/codevault/lw-compiler/constants/lipgloss"
	"github.com/codevault/lw-compiler/detector/models"
	"github.com/codevault/lw-compiler/utils"
	"github.com/codevault/lw-compiler/wizard"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build [project-dir]",
	Short: "Compile a build manifest and package the project.",
	Long: `The 'build' subcommand scans the project, assembles a build draft from the
selected preset and flags, compiles it into a validated build manifest, and
hands the manifest to the native packaging backend. Validation problems are
collected and reported together; the backend only runs on a valid manifest.`,
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return
		}
		handleBuildCommand(rootDependencies, cmd, args)
	},
}

func init() {
	buildCmd.Flags().String("language", "", "Project language ('python' or 'node'); inferred from the project when omitted.")
	buildCmd.Flags().String("entry", "", "Entry file, relative to the project root; defaults to the top ranked candidate.")
	buildCmd.Flags().String("preset", "", "Name of a saved preset applied before the flags.")
	buildCmd.Flags().String("mode", "", "Protection mode ('generic', 'demo' or 'none').")
	buildCmd.Flags().Int("demo-duration", 0, "Demo trial duration in minutes (30, 60, 120, 240, 1440, 4320, 10080, 20160 or 43200).")
	buildCmd.Flags().Bool("hide-console", false, "Hide the console window of the packaged executable.")
	buildCmd.Flags().String("icon", "", "Path of the executable icon (.ico or .png).")
	buildCmd.Flags().StringSlice("include", nil, "Packages to force-include in the bundle.")
	buildCmd.Flags().StringSlice("exclude", nil, "Packages to exclude from the bundle.")
	buildCmd.Flags().StringSlice("data", nil, "Data folders bundled alongside the executable.")
	buildCmd.Flags().String("node-target", "", "pkg target for node builds (node18-win-x64, node18-linux-x64 or node18-macos-x64).")
	buildCmd.Flags().Bool("obfuscate", false, "Obfuscate node sources before packaging.")
	buildCmd.Flags().String("output", "", "Output executable name; bare names land in the configured output directory, defaults to the project directory name.")
	buildCmd.Flags().Bool("dry-run", false, "Compile and print the manifest without invoking the packaging backend.")

	rootCmd.AddCommand(buildCmd)
}

func handleBuildCommand(rootDependencies *RootDependencies, cmd *cobra.Command, args []string) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	projectDir := rootDependencies.Cwd
	if len(args) > 0 {
		projectDir = args[0]
	}

	language, err := resolveLanguage(cmd, projectDir)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").WithDelay(100).WithRemoveWhenDone(true)
	spinnerScan, _ := spinner.Start("Scanning project...")

	fileSet, structure, err := rootDependencies.Detector.ScanProject(projectDir, language)
	spinnerScan.Stop()
	fmt.Print("\r")
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}

	candidates := rootDependencies.Detector.Rank(*fileSet)
	draft := wizard.NewDraft(language, candidates)

	if defaultMode, parseErr := wizard.ParseProtectionMode(rootDependencies.Config.DefaultMode); parseErr == nil {
		engine := wizard.NewProtectionModeEngine()
		_ = engine.Select(defaultMode)
		draft = draft.WithProtection(engine.Config())
	}

	draft, err = applyPresetFlag(rootDependencies, cmd, draft)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}

	draft, err = applyBuildFlags(cmd, draft, candidates, structure.EnvKeys)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}

	manifest := wizard.Compile(draft)

	renderIssues(manifest)
	renderManifest(manifest, rootDependencies.Config.Theme)

	if !manifest.Valid {
		fmt.Println(lipgloss.Red.Render("Build aborted: the manifest has blocking errors."))
		return
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		return
	}

	outputName, _ := cmd.Flags().GetString("output")
	if outputName == "" {
		outputName = filepath.Base(projectDir)
	}
	outputPath := resolveOutputPath(rootDependencies.Config.OutputDir, outputName)
	if !filepath.IsAbs(outputPath) {
		// The packager runs inside the project, so anchor the output there.
		outputPath = filepath.Join(projectDir, outputPath)
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error creating output directory: %v", err)))
			return
		}
	}

	iconPath, err := backend.ResolveIcon(rootDependencies.IconConverter, manifest.Advanced.IconPath)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}
	manifest.Advanced.IconPath = iconPath

	confirmed, err := utils.ConfirmPrompt(fmt.Sprintf("Package %s as %q?", manifest.EntryFile, outputPath))
	if err != nil || !confirmed {
		fmt.Println(lipgloss.Yellow.Render("Build cancelled."))
		return
	}

	spinnerBuild, _ := spinner.Start("Packaging...")
	runner := backend.NewRunner(projectDir)
	err = runner.Run(ctx, manifest, outputPath)
	spinnerBuild.Stop()
	fmt.Print("\r")
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}

	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("Packaged %s", outputPath)))
}

// resolveOutputPath places bare output names inside the configured output
// directory. Names that already carry a path keep it.
func resolveOutputPath(outputDir, name string) string {
	if outputDir == "" || strings.ContainsRune(name, '/') || strings.ContainsRune(name, os.PathSeparator) {
		return name
	}
	return filepath.Join(outputDir, name)
}

// applyPresetFlag layers the named preset onto the draft, if one was given.
func applyPresetFlag(rootDependencies *RootDependencies, cmd *cobra.Command, draft wizard.Draft) (wizard.Draft, error) {
	presetName, _ := cmd.Flags().GetString("preset")
	if presetName == "" {
		return draft, nil
	}

	presets, err := rootDependencies.PresetStore.Load()
	if err != nil {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Preset store unreadable, continuing without presets: %v", err)))
	}
	for _, p := range presets {
		if p.Name == presetName {
			return draft.ApplyPreset(p.Config), nil
		}
	}
	return draft, fmt.Errorf("no preset named %q", presetName)
}

// applyBuildFlags folds the command line options into the draft. Flags the
// user did not set leave the preset's values in place.
func applyBuildFlags(cmd *cobra.Command, draft wizard.Draft, candidates []models.EntryPointCandidate, envKeys []string) (wizard.Draft, error) {
	draft = draft.WithEnvKeys(envKeys)

	entry, _ := cmd.Flags().GetString("entry")
	if entry == "" && len(candidates) > 0 {
		entry = candidates[0].File
	}
	draft = draft.WithEntryFile(entry)

	if cmd.Flags().Changed("mode") {
		modeValue, _ := cmd.Flags().GetString("mode")
		mode, err := wizard.ParseProtectionMode(modeValue)
		if err != nil {
			return draft, err
		}
		engine := wizard.NewProtectionModeEngine()
		if draft.Protection.DemoDuration != 0 {
			// Carry the preset's duration into the mode switch.
			engine.SetDemoDuration(draft.Protection.DemoDuration)
		}
		if cmd.Flags().Changed("demo-duration") {
			duration, _ := cmd.Flags().GetInt("demo-duration")
			engine.SetDemoDuration(duration)
		}
		if err := engine.Select(mode); err != nil {
			return draft, err
		}
		draft = draft.WithProtection(engine.Config())
	} else if cmd.Flags().Changed("demo-duration") {
		duration, _ := cmd.Flags().GetInt("demo-duration")
		protection := draft.Protection
		protection.DemoDuration = duration
		draft = draft.WithProtection(protection)
	}

	if cmd.Flags().Changed("hide-console") {
		hide, _ := cmd.Flags().GetBool("hide-console")
		draft = draft.WithShowConsole(!hide)
	}
	if cmd.Flags().Changed("icon") {
		icon, _ := cmd.Flags().GetString("icon")
		draft = draft.WithIconPath(icon)
	}
	if cmd.Flags().Changed("include") {
		include, _ := cmd.Flags().GetStringSlice("include")
		draft = draft.WithIncludePackages(include)
	}
	if cmd.Flags().Changed("exclude") {
		exclude, _ := cmd.Flags().GetStringSlice("exclude")
		draft = draft.WithExcludePackages(exclude)
	}
	if cmd.Flags().Changed("data") {
		data, _ := cmd.Flags().GetStringSlice("data")
		draft = draft.WithDataFolders(data)
	}
	if cmd.Flags().Changed("node-target") {
		targetValue, _ := cmd.Flags().GetString("node-target")
		target, err := wizard.ParseNodeTarget(targetValue)
		if err != nil {
			return draft, err
		}
		draft = draft.WithNodeTarget(target)
	}
	if cmd.Flags().Changed("obfuscate") {
		obfuscate, _ := cmd.Flags().GetBool("obfuscate")
		draft = draft.WithObfuscation(obfuscate)
	}

	return draft, nil
}

func renderIssues(manifest wizard.BuildManifest) {
	for _, issue := range manifest.Errors() {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("✗ [%s] %s", issue.Code, issue.Message)))
	}
	for _, issue := range manifest.Warnings() {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("⚠ [%s] %s", issue.Code, issue.Message)))
	}
}

// renderManifest prints the manifest as syntax highlighted JSON.
func renderManifest(manifest wizard.BuildManifest, theme string) {
	encoded, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error encoding manifest: %v", err)))
		return
	}

	if err := quick.Highlight(os.Stdout, string(encoded)+"\n", "json", "terminal256", theme); err != nil {
		fmt.Println(string(encoded))
	}
}
