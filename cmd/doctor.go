package cmd

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/codevault/lw-compiler/constants/lipgloss"
	"github.com/spf13/cobra"
)

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the packaging toolchains are available.",
	Long: `The 'doctor' subcommand probes the host for the external tools the
packaging backends depend on: python and Nuitka for python builds, node,
npx and javascript-obfuscator for node builds.`,
	Run: func(cmd *cobra.Command, args []string) {
		handleDoctorCommand()
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type toolCheck struct {
	name     string
	probe    func() (string, error)
	required string
}

func handleDoctorCommand() {
	fmt.Println(lipgloss.Info.Render("Checking packaging toolchains..."))

	checks := []toolCheck{
		{name: "python", probe: func() (string, error) { return probeVersion("python", "--version") }, required: "python builds"},
		{name: "nuitka", probe: func() (string, error) { return probeVersion("python", "-m", "nuitka", "--version") }, required: "python builds"},
		{name: "node", probe: func() (string, error) { return probeVersion("node", "--version") }, required: "node builds"},
		{name: "npx", probe: func() (string, error) { return probeVersion("npx", "--version") }, required: "node builds"},
		{name: "javascript-obfuscator", probe: func() (string, error) { return probeVersion("npx", "-y", "javascript-obfuscator", "--version") }, required: "node obfuscation"},
	}

	for _, check := range checks {
		version, err := check.probe()
		if err != nil {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("✗ %-22s missing (needed for %s)", check.name, check.required)))
			continue
		}
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ %-22s %s", check.name, version)))
	}
}

// probeVersion runs a version probe and returns its first output line.
func probeVersion(bin string, args ...string) (string, error) {
	out, err := exec.Command(bin, args...).CombinedOutput()
	if err != nil {
		return "", err
	}
	line := strings.TrimSpace(string(out))
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	return line, nil
}
