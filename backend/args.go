package backend

import (
	"fmt"

	"github.com/codevault/lw-compiler/detector/models"
	"github.com/codevault/lw-compiler/wizard"
)

// PackagerArgs translates a valid build manifest into the argument vector of
// the native packaging backend for its language. The invocation itself stays
// outside the core; only the translation is owned here.
func PackagerArgs(manifest wizard.BuildManifest, outputName string) ([]string, error) {
	if !manifest.Valid {
		return nil, fmt.Errorf("refusing to build packager args from an invalid manifest")
	}
	switch manifest.Language {
	case models.LanguagePython:
		return nuitkaArgs(manifest, outputName), nil
	case models.LanguageNode:
		return pkgArgs(manifest, outputName), nil
	default:
		return nil, fmt.Errorf("no packaging backend for language %q", manifest.Language)
	}
}

// nuitkaArgs builds the Nuitka command line for a python manifest.
func nuitkaArgs(manifest wizard.BuildManifest, outputName string) []string {
	args := []string{
		"-m", "nuitka",
		"--standalone",
		"--onefile",
		"--remove-output",
		"--assume-yes-for-downloads",
		fmt.Sprintf("--output-filename=%s.exe", outputName),
	}

	for _, pkg := range manifest.Advanced.IncludePackages {
		if pkg != "" && pkg != "__pycache__" {
			args = append(args, fmt.Sprintf("--include-package=%s", pkg))
		}
	}
	for _, pkg := range manifest.Advanced.ExcludePackages {
		if pkg != "" {
			args = append(args, fmt.Sprintf("--nofollow-import-to=%s", pkg))
		}
	}
	for _, folder := range manifest.Advanced.DataFolders {
		args = append(args, fmt.Sprintf("--include-data-dir=%s=%s", folder, folder))
	}

	if manifest.Advanced.IconPath != "" {
		args = append(args, fmt.Sprintf("--windows-icon-from-ico=%s", manifest.Advanced.IconPath))
	}
	if !manifest.ShowConsole {
		args = append(args, "--windows-disable-console")
	}

	args = append(args, manifest.EntryFile)
	return args
}

// pkgArgs builds the npx pkg command line for a node manifest. The pkg
// version is pinned for reproducible packaging.
func pkgArgs(manifest wizard.BuildManifest, outputName string) []string {
	target := manifest.Advanced.NodeTarget
	if target == "" {
		target = wizard.TargetNodeWin
	}

	return []string{
		"-y", "pkg@5.8.1",
		manifest.EntryFile,
		"--targets", string(target),
		"--output", outputName,
	}
}
