package backend

import (
	"testing"

	"github.com/codevault/lw-compiler/detector/models"
	"github.com/codevault/lw-compiler/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validManifest(language models.Language, entry string) wizard.BuildManifest {
	candidates := []models.EntryPointCandidate{{File: entry, Score: 100}}
	draft := wizard.NewDraft(language, candidates).WithEntryFile(entry)
	return wizard.Compile(draft)
}

func TestPackagerArgs_RejectsInvalidManifest(t *testing.T) {
	draft := wizard.NewDraft(models.LanguagePython, nil) // no entry point
	manifest := wizard.Compile(draft)
	require.False(t, manifest.Valid)

	_, err := PackagerArgs(manifest, "app")
	assert.Error(t, err)
}

func TestPackagerArgs_PythonBaseline(t *testing.T) {
	manifest := validManifest(models.LanguagePython, "main.py")

	args, err := PackagerArgs(manifest, "myapp")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"-m", "nuitka",
		"--standalone",
		"--onefile",
		"--remove-output",
		"--assume-yes-for-downloads",
		"--output-filename=myapp.exe",
		"main.py",
	}, args)
}

func TestPackagerArgs_PythonOptions(t *testing.T) {
	candidates := []models.EntryPointCandidate{{File: "main.py", Score: 100}}
	draft := wizard.NewDraft(models.LanguagePython, candidates).
		WithEntryFile("main.py").
		WithShowConsole(false).
		WithIconPath("app.ico").
		WithIncludePackages([]string{"core", "__pycache__", ""}).
		WithExcludePackages([]string{"tests"}).
		WithDataFolders([]string{"config", "static"})
	manifest := wizard.Compile(draft)
	require.True(t, manifest.Valid)

	args, err := PackagerArgs(manifest, "myapp")
	require.NoError(t, err)

	assert.Contains(t, args, "--include-package=core")
	// Cache directories and blank names never reach the backend.
	assert.NotContains(t, args, "--include-package=__pycache__")
	assert.NotContains(t, args, "--include-package=")
	assert.Contains(t, args, "--nofollow-import-to=tests")
	assert.Contains(t, args, "--include-data-dir=config=config")
	assert.Contains(t, args, "--include-data-dir=static=static")
	assert.Contains(t, args, "--windows-icon-from-ico=app.ico")
	assert.Contains(t, args, "--windows-disable-console")
	// Entry file always comes last.
	assert.Equal(t, "main.py", args[len(args)-1])
}

func TestPackagerArgs_NodeDefaultsToWindowsTarget(t *testing.T) {
	manifest := validManifest(models.LanguageNode, "index.js")

	args, err := PackagerArgs(manifest, "myapp")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"-y", "pkg@5.8.1",
		"index.js",
		"--targets", "node18-win-x64",
		"--output", "myapp",
	}, args)
}

func TestPackagerArgs_NodeExplicitTarget(t *testing.T) {
	candidates := []models.EntryPointCandidate{{File: "index.js", Score: 100}}
	draft := wizard.NewDraft(models.LanguageNode, candidates).
		WithEntryFile("index.js").
		WithNodeTarget(wizard.TargetNodeLinux)
	manifest := wizard.Compile(draft)
	require.True(t, manifest.Valid)

	args, err := PackagerArgs(manifest, "myapp")
	require.NoError(t, err)
	assert.Contains(t, args, "node18-linux-x64")
}
