package detector

import (
	"fmt"
	"path"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/codevault/lw-compiler/detector/contracts"
	"github.com/codevault/lw-compiler/detector/models"
)

// Score weights for entry point ranking.
const (
	scorePackageMain   = 200 // package.json "main" field match (node only)
	scoreCanonicalName = 100 // exact match against the canonical entry names
	scoreGuardIdiom    = 60  // language's run-as-script idiom present
	scoreDepthBase     = 25  // root-level bonus, decays with directory depth
	scoreDepthStep     = 10
	scoreNonEntryDir   = -500 // tests, vendored deps, build output
)

// canonical entry file names per language, highest-signal first.
var (
	pythonEntryNames = []string{"main.py", "app.py", "run.py", "cli.py", "__main__.py", "start.py"}
	nodeEntryNames   = []string{"index.js", "main.js", "app.js", "server.js", "start.js", "cli.js"}
)

// Directories that conventionally never hold the program entry point.
// Files under them still rank, just last.
var nonEntryDirs = []string{
	"test", "tests", "__tests__", "testdata",
	"vendor", "node_modules", "site-packages",
	"dist", "build", "out", "target",
	"__pycache__", "venv", ".venv",
}

// EntryPointDetector ranks candidate source files as likely program entry
// points using language-specific heuristics.
type EntryPointDetector struct{}

// NewEntryPointDetector initializes a new EntryPointDetector.
func NewEntryPointDetector() contracts.IEntryPointDetector {
	return &EntryPointDetector{}
}

// Rank scores every candidate source file and returns them sorted by
// descending score, ties broken by ascending file path. The result is
// deterministic for a given file set.
func (d *EntryPointDetector) Rank(files models.ProjectFileSet) []models.EntryPointCandidate {
	var candidates []models.EntryPointCandidate

	for _, file := range files.Files {
		if !hasSourceExtension(file.RelativePath, files.Language) {
			// Non-source files are not candidates at all, not zero-score ones.
			continue
		}
		candidates = append(candidates, scoreFile(file, files))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].File < candidates[j].File
	})

	return candidates
}

// scoreFile applies the additive scoring policy to a single file.
func scoreFile(file models.SourceFile, set models.ProjectFileSet) models.EntryPointCandidate {
	score := 0
	var reasons []string

	filename := path.Base(file.RelativePath)

	if set.Language == models.LanguageNode && set.PackageMain != "" && file.RelativePath == set.PackageMain {
		score += scorePackageMain
		reasons = append(reasons, "package.json main field")
	}

	if isCanonicalName(filename, set.Language) {
		score += scoreCanonicalName
		reasons = append(reasons, fmt.Sprintf("common entry name '%s'", filename))
	}

	if idiom := detectGuardIdiom(file, set.Language); idiom != "" {
		score += scoreGuardIdiom
		reasons = append(reasons, idiom)
	}

	depth := strings.Count(file.RelativePath, "/")
	if bonus := scoreDepthBase - scoreDepthStep*depth; bonus > 0 {
		score += bonus
		if depth == 0 {
			reasons = append(reasons, "root level file")
		}
	}

	if dir := nonEntryDirOf(file.RelativePath); dir != "" {
		score += scoreNonEntryDir
		reasons = append(reasons, fmt.Sprintf("inside non-entry directory '%s'", dir))
	}

	reason := strings.Join(reasons, ", ")
	if reason == "" {
		reason = fmt.Sprintf("%s source file", set.Language)
	}

	return models.EntryPointCandidate{
		File:   file.RelativePath,
		Score:  score,
		Reason: reason,
	}
}

// hasSourceExtension reports whether the path belongs to the language's
// source extension set.
func hasSourceExtension(relativePath string, language models.Language) bool {
	ext := strings.ToLower(path.Ext(relativePath))
	switch language {
	case models.LanguagePython:
		return ext == ".py"
	case models.LanguageNode:
		return ext == ".js" || ext == ".mjs" || ext == ".cjs" || ext == ".ts"
	default:
		return false
	}
}

func isCanonicalName(filename string, language models.Language) bool {
	names := pythonEntryNames
	if language == models.LanguageNode {
		names = nodeEntryNames
	}
	for _, name := range names {
		if filename == name {
			return true
		}
	}
	return false
}

// nonEntryDirOf returns the first path segment that names a conventional
// non-entry directory, or "" when the file is outside all of them.
func nonEntryDirOf(relativePath string) string {
	parts := strings.Split(relativePath, "/")
	for _, part := range parts[:len(parts)-1] {
		lowered := strings.ToLower(part)
		for _, dir := range nonEntryDirs {
			if lowered == dir {
				return part
			}
		}
	}
	return ""
}

// detectGuardIdiom checks the file for the language's run-as-script idiom and
// returns a human-readable description of the match, or "" when absent.
func detectGuardIdiom(file models.SourceFile, language models.Language) string {
	switch language {
	case models.LanguagePython:
		if hasPythonMainGuard(file.Content) {
			return "has __main__ guard"
		}
	case models.LanguageNode:
		ext := strings.ToLower(path.Ext(file.RelativePath))
		if ext == ".ts" {
			// No tree-sitter grammar wired for TypeScript entry scanning,
			// fall back to a plain text check.
			if strings.Contains(string(file.Content), "require.main") {
				return "has require.main guard"
			}
			return ""
		}
		if hasNodeMainGuard(file.Content) {
			return "has require.main guard"
		}
		if hasNodeShebang(file.Content) {
			return "has node shebang"
		}
	}
	return ""
}

// hasPythonMainGuard parses the source with tree-sitter and looks for a
// top-level `if __name__ == "__main__":` block.
func hasPythonMainGuard(source []byte) bool {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree := parser.Parse(nil, source)
	root := tree.RootNode()

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() != "if_statement" {
			continue
		}
		condition := child.ChildByFieldName("condition")
		if condition == nil {
			continue
		}
		text := condition.Content(source)
		if strings.Contains(text, "__name__") && strings.Contains(text, "__main__") {
			return true
		}
	}

	return false
}

// hasNodeMainGuard parses the source with tree-sitter and looks for a
// top-level `require.main === module` comparison.
func hasNodeMainGuard(source []byte) bool {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree := parser.Parse(nil, source)
	root := tree.RootNode()

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() != "if_statement" {
			continue
		}
		condition := child.ChildByFieldName("condition")
		if condition == nil {
			continue
		}
		text := condition.Content(source)
		if strings.Contains(text, "require.main") && strings.Contains(text, "module") {
			return true
		}
	}

	return false
}

func hasNodeShebang(source []byte) bool {
	if !strings.HasPrefix(string(source), "#!") {
		return false
	}
	firstLine := string(source)
	if idx := strings.IndexByte(firstLine, '\n'); idx >= 0 {
		firstLine = firstLine[:idx]
	}
	return strings.Contains(firstLine, "node")
}
