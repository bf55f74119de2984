package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/codevault/lw-compiler/constants/lipgloss"
	"github.com/codevault/lw-compiler/detector/models"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [project-dir]",
	Short: "Scan a project and rank its entry point candidates.",
	Long: `The 'scan' subcommand walks a python or node project, ranks every source
file as an entry point candidate, and reports the detected project structure:
local packages, data folders, declared dependencies and environment keys.`,
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return
		}
		handleScanCommand(rootDependencies, cmd, args)
	},
}

func init() {
	scanCmd.Flags().String("language", "", "Project language ('python' or 'node'); inferred from the project when omitted.")
	scanCmd.Flags().Int("top", 10, "Number of ranked candidates to display.")

	rootCmd.AddCommand(scanCmd)
}

func handleScanCommand(rootDependencies *RootDependencies, cmd *cobra.Command, args []string) {
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
	if len(candidates) == 0 {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("No %s entry point candidates found in %s", language, projectDir)))
		return
	}

	top, _ := cmd.Flags().GetInt("top")
	if top > 0 && len(candidates) > top {
		candidates = candidates[:top]
	}

	renderCandidateTable(candidates)
	renderStructure(structure)
}

// resolveLanguage honors the --language flag and otherwise infers the
// language from the project's marker files.
func resolveLanguage(cmd *cobra.Command, projectDir string) (models.Language, error) {
	flagValue, _ := cmd.Flags().GetString("language")
	if flagValue != "" {
		language := models.Language(flagValue)
		if !language.Valid() {
			return "", fmt.Errorf("unknown language: %q (expected python or node)", flagValue)
		}
		return language, nil
	}

	if _, err := os.Stat(filepath.Join(projectDir, "package.json")); err == nil {
		return models.LanguageNode, nil
	}
	if _, err := os.Stat(filepath.Join(projectDir, "requirements.txt")); err == nil {
		return models.LanguagePython, nil
	}

	matches, _ := filepath.Glob(filepath.Join(projectDir, "*.py"))
	if len(matches) > 0 {
		return models.LanguagePython, nil
	}

	return "", fmt.Errorf("cannot infer the project language of %s; pass --language", projectDir)
}

func renderCandidateTable(candidates []models.EntryPointCandidate) {
	tableData := pterm.TableData{{"#", "Score", "File", "Reason"}}
	for i, candidate := range candidates {
		tableData = append(tableData, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", candidate.Score),
			candidate.File,
			candidate.Reason,
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

func renderStructure(structure *models.ProjectStructure) {
	if structure == nil {
		return
	}

	var lines []string
	if len(structure.Packages) > 0 {
		lines = append(lines, fmt.Sprintf("Packages:     %s", strings.Join(structure.Packages, ", ")))
	}
	if len(structure.DataFolders) > 0 {
		lines = append(lines, fmt.Sprintf("Data folders: %s", strings.Join(structure.DataFolders, ", ")))
	}
	if len(structure.EnvKeys) > 0 {
		lines = append(lines, fmt.Sprintf("Env keys:     %s", strings.Join(structure.EnvKeys, ", ")))
	}
	if structure.HasRequirements {
		lines = append(lines, fmt.Sprintf("Requirements: %d pinned", len(structure.Requirements)))
	}
	if structure.HasPackageJSON {
		lines = append(lines, fmt.Sprintf("Node deps:    %d declared", len(structure.NodeDeps)))
	}
	if len(lines) == 0 {
		return
	}

	fmt.Println(lipgloss.BoxStyle.Render(strings.Join(lines, "\n")))
}
