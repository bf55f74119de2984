package backend

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/codevault/lw-compiler/detector/models"
	"github.com/codevault/lw-compiler/wizard"
)

// Runner invokes the native packaging toolchain for a compiled manifest.
// Argument construction lives in PackagerArgs; the runner only picks the
// interpreter and streams output.
type Runner struct {
	// PythonBin overrides the python interpreter used for Nuitka builds.
	PythonBin string
	// NpxBin overrides the npx binary used for pkg builds.
	NpxBin string
	// WorkDir is the project root the packager runs in.
	WorkDir string
}

// NewRunner creates a runner rooted at the given project directory.
func NewRunner(workDir string) *Runner {
	return &Runner{WorkDir: workDir}
}

// Run packages the manifest into outputName, streaming backend output to the
// current process. The context cancels the packager mid-build.
func (r *Runner) Run(ctx context.Context, manifest wizard.BuildManifest, outputName string) error {
	args, err := PackagerArgs(manifest, outputName)
	if err != nil {
		return err
	}

	bin, err := r.binaryFor(manifest.Language)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = r.WorkDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("packaging backend failed: %w", err)
	}
	return nil
}

func (r *Runner) binaryFor(language models.Language) (string, error) {
	switch language {
	case models.LanguagePython:
		if r.PythonBin != "" {
			return r.PythonBin, nil
		}
		return "python", nil
	case models.LanguageNode:
		if r.NpxBin != "" {
			return r.NpxBin, nil
		}
		return "npx", nil
	}
	return "", fmt.Errorf("no packaging backend for language %q", language)
}
