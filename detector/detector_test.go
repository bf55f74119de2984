package detector

import (
	"testing"

	"github.com/codevault/lw-compiler/detector/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pythonGuardSource = `import sys

def main():
    print("hello")

if __name__ == "__main__":
    main()
`

const nodeGuardSource = `const app = require('./app');

if (require.main === module) {
    app.start();
}
`

func pythonFileSet(files ...models.SourceFile) models.ProjectFileSet {
	return models.ProjectFileSet{Language: models.LanguagePython, Files: files}
}

// Ranking a python project should put the guarded canonical root file first.
func TestRank_PythonCanonicalGuardedRootWins(t *testing.T) {
	detector := &EntryPointDetector{}

	candidates := detector.Rank(pythonFileSet(
		models.SourceFile{RelativePath: "utils.py", Content: []byte("def helper(): pass\n")},
		models.SourceFile{RelativePath: "main.py", Content: []byte(pythonGuardSource)},
		models.SourceFile{RelativePath: "src/worker.py", Content: []byte("def run(): pass\n")},
	))

	require.Len(t, candidates, 3)
	assert.Equal(t, "main.py", candidates[0].File)
	// canonical name + __main__ guard + root level bonus
	assert.Equal(t, 185, candidates[0].Score)
	assert.Contains(t, candidates[0].Reason, "common entry name 'main.py'")
	assert.Contains(t, candidates[0].Reason, "__main__ guard")
	assert.Contains(t, candidates[0].Reason, "root level file")
}

// Non-source files must be excluded entirely, not ranked with score zero.
func TestRank_FiltersNonSourceExtensions(t *testing.T) {
	detector := &EntryPointDetector{}

	candidates := detector.Rank(pythonFileSet(
		models.SourceFile{RelativePath: "main.py", Content: []byte(pythonGuardSource)},
		models.SourceFile{RelativePath: "README.md", Content: []byte("# readme\n")},
		models.SourceFile{RelativePath: "settings.json", Content: []byte("{}\n")},
	))

	require.Len(t, candidates, 1)
	assert.Equal(t, "main.py", candidates[0].File)
}

// Files under conventional test or build directories sink to the bottom but
// remain in the ranking.
func TestRank_NonEntryDirectoryPenalty(t *testing.T) {
	detector := &EntryPointDetector{}

	candidates := detector.Rank(pythonFileSet(
		models.SourceFile{RelativePath: "tests/test_main.py", Content: []byte("def test(): pass\n")},
		models.SourceFile{RelativePath: "util.py", Content: []byte("x = 1\n")},
	))

	require.Len(t, candidates, 2)
	assert.Equal(t, "util.py", candidates[0].File)
	assert.Equal(t, "tests/test_main.py", candidates[1].File)
	assert.Less(t, candidates[1].Score, 0)
	assert.Contains(t, candidates[1].Reason, "non-entry directory 'tests'")
}

// Equal scores must break ties on the file path so the ranking is stable.
func TestRank_TieBreaksOnPath(t *testing.T) {
	detector := &EntryPointDetector{}

	candidates := detector.Rank(pythonFileSet(
		models.SourceFile{RelativePath: "zebra.py", Content: []byte("z = 1\n")},
		models.SourceFile{RelativePath: "alpha.py", Content: []byte("a = 1\n")},
	))

	require.Len(t, candidates, 2)
	assert.Equal(t, candidates[0].Score, candidates[1].Score)
	assert.Equal(t, "alpha.py", candidates[0].File)
	assert.Equal(t, "zebra.py", candidates[1].File)
}

// Two runs over the same file set must produce identical output.
func TestRank_Deterministic(t *testing.T) {
	detector := &EntryPointDetector{}

	fileSet := pythonFileSet(
		models.SourceFile{RelativePath: "main.py", Content: []byte(pythonGuardSource)},
		models.SourceFile{RelativePath: "app.py", Content: []byte("a = 1\n")},
		models.SourceFile{RelativePath: "pkg/cli.py", Content: []byte("c = 1\n")},
		models.SourceFile{RelativePath: "tests/test_app.py", Content: []byte("t = 1\n")},
	)

	first := detector.Rank(fileSet)
	second := detector.Rank(fileSet)
	assert.Equal(t, first, second)
}

// The package.json main field dominates every other node signal.
func TestRank_NodePackageMainDominates(t *testing.T) {
	detector := &EntryPointDetector{}

	candidates := detector.Rank(models.ProjectFileSet{
		Language:    models.LanguageNode,
		PackageMain: "server.js",
		Files: []models.SourceFile{
			{RelativePath: "index.js", Content: []byte("console.log('hi');\n")},
			{RelativePath: "server.js", Content: []byte("const http = require('http');\n")},
		},
	})

	require.Len(t, candidates, 2)
	assert.Equal(t, "server.js", candidates[0].File)
	// package.json main + canonical name + root level bonus
	assert.Equal(t, 325, candidates[0].Score)
	assert.Contains(t, candidates[0].Reason, "package.json main field")
}

// The require.main guard is detected by parsing, not substring matching on
// comments only; a guarded file outranks an identical unguarded one.
func TestRank_NodeRequireMainGuard(t *testing.T) {
	detector := &EntryPointDetector{}

	candidates := detector.Rank(models.ProjectFileSet{
		Language: models.LanguageNode,
		Files: []models.SourceFile{
			{RelativePath: "guarded.js", Content: []byte(nodeGuardSource)},
			{RelativePath: "plain.js", Content: []byte("module.exports = {};\n")},
		},
	})

	require.Len(t, candidates, 2)
	assert.Equal(t, "guarded.js", candidates[0].File)
	assert.Contains(t, candidates[0].Reason, "require.main guard")
}

// A node shebang marks a file as runnable when no guard is present.
func TestRank_NodeShebang(t *testing.T) {
	detector := &EntryPointDetector{}

	candidates := detector.Rank(models.ProjectFileSet{
		Language: models.LanguageNode,
		Files: []models.SourceFile{
			{RelativePath: "tool.js", Content: []byte("#!/usr/bin/env node\nconsole.log('x');\n")},
			{RelativePath: "lib.js", Content: []byte("module.exports = 1;\n")},
		},
	})

	require.Len(t, candidates, 2)
	assert.Equal(t, "tool.js", candidates[0].File)
	assert.Contains(t, candidates[0].Reason, "node shebang")
}

// A commented-out guard must not count.
func TestRank_PythonCommentedGuardIgnored(t *testing.T) {
	detector := &EntryPointDetector{}

	source := "# if __name__ == \"__main__\":\n#     main()\nx = 1\n"
	candidates := detector.Rank(pythonFileSet(
		models.SourceFile{RelativePath: "maybe.py", Content: []byte(source)},
	))

	require.Len(t, candidates, 1)
	assert.NotContains(t, candidates[0].Reason, "__main__ guard")
	assert.Equal(t, 25, candidates[0].Score)
}
