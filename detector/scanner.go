package detector

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/codevault/lw-compiler/detector/models"
)

// maxScanFileSize caps how large a source file may be before the scanner
// skips it (100 KB).
const maxScanFileSize = 100 * 1024

// Directories the scanner never descends into. Unlike the ranking penalty
// list, files under these are not useful even as low-ranked candidates.
var skippedDirs = []string{
	".git", ".svn", ".idea", ".vscode",
	"node_modules", "venv", ".venv", "__pycache__",
}

// Conventional names for bundleable data folders.
var commonDataNames = []string{"config", "templates", "static", "assets", "data", "resources", "public", "views"}

// ScanProject walks an extracted project directory and returns the immutable
// file set for ranking plus a structure summary feeding the advanced options
// step (packages, data folders, dependencies, env keys).
func (d *EntryPointDetector) ScanProject(rootDir string, language models.Language) (*models.ProjectFileSet, *models.ProjectStructure, error) {
	if !language.Valid() {
		return nil, nil, fmt.Errorf("unsupported language: %q", language)
	}

	fileSet := &models.ProjectFileSet{Language: language}
	structure := &models.ProjectStructure{}

	err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relativePath, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		relativePath = strings.ReplaceAll(relativePath, "\\", "/")
		if relativePath == "." {
			return nil
		}

		if entry.IsDir() {
			if isSkippedDir(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !hasSourceExtension(relativePath, language) {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("failed to get file info: %s, error: %w", relativePath, err)
		}
		if info.Size() > maxScanFileSize {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file: %s, error: %w", relativePath, err)
		}

		fileSet.Files = append(fileSet.Files, models.SourceFile{
			RelativePath: relativePath,
			Content:      content,
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	// Stable file order regardless of walk order differences.
	sort.Slice(fileSet.Files, func(i, j int) bool {
		return fileSet.Files[i].RelativePath < fileSet.Files[j].RelativePath
	})

	if language == models.LanguagePython {
		structure.Packages = detectPythonPackages(rootDir)
		structure.Requirements, structure.HasRequirements = parseRequirements(rootDir)
	} else {
		fileSet.PackageMain, structure.NodeDeps, structure.HasPackageJSON = parsePackageJSON(rootDir)
	}
	structure.DataFolders = detectDataFolders(rootDir)
	structure.EnvKeys = readEnvKeys(rootDir)

	return fileSet, structure, nil
}

func isSkippedDir(name string) bool {
	for _, dir := range skippedDirs {
		if name == dir {
			return true
		}
	}
	return false
}

// detectPythonPackages finds directories carrying an __init__.py, including
// nested sub-packages, named with dotted paths.
func detectPythonPackages(rootDir string) []string {
	var packages []string

	var scan func(dir string)
	scan = func(dir string) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		for _, entry := range entries {
			if !entry.IsDir() || isSkippedDir(entry.Name()) {
				continue
			}
			full := filepath.Join(dir, entry.Name())
			if _, err := os.Stat(filepath.Join(full, "__init__.py")); err != nil {
				continue
			}
			rel, err := filepath.Rel(rootDir, full)
			if err != nil {
				continue
			}
			name := strings.ReplaceAll(strings.ReplaceAll(rel, "\\", "."), "/", ".")
			if !strings.HasPrefix(name, "__") && !strings.HasPrefix(name, ".") {
				packages = append(packages, name)
			}
			scan(full)
		}
	}
	scan(rootDir)

	sort.Strings(packages)
	return packages
}

// detectDataFolders lists top-level directories that look like bundleable
// data rather than code: conventional data names, or folders without an
// __init__.py that contain at least one file.
func detectDataFolders(rootDir string) []string {
	var dataDirs []string

	entries, err := os.ReadDir(rootDir)
	if err != nil {
		return nil
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "__") || isSkippedDir(name) {
			continue
		}

		isCommon := false
		for _, common := range commonDataNames {
			if strings.EqualFold(name, common) {
				isCommon = true
				break
			}
		}

		_, initErr := os.Stat(filepath.Join(rootDir, name, "__init__.py"))
		isPackage := initErr == nil

		if isCommon || !isPackage {
			if hasAnyFile(filepath.Join(rootDir, name)) {
				dataDirs = append(dataDirs, name)
			}
		}
	}

	sort.Strings(dataDirs)
	return dataDirs
}

func hasAnyFile(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			return true
		}
	}
	return false
}

// parseRequirements reads requirements.txt and extracts the bare package
// names, dropping version specifiers and comments.
func parseRequirements(rootDir string) ([]string, bool) {
	content, err := os.ReadFile(filepath.Join(rootDir, "requirements.txt"))
	if err != nil {
		return nil, false
	}

	var packages []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name := strings.TrimSpace(strings.FieldsFunc(line, func(r rune) bool {
			return r == '=' || r == '<' || r == '>' || r == '!' || r == '['
		})[0])
		if name != "" {
			packages = append(packages, name)
		}
	}
	return packages, true
}

// parsePackageJSON reads package.json for the "main" field and dependency
// names of a node project.
func parsePackageJSON(rootDir string) (string, []string, bool) {
	content, err := os.ReadFile(filepath.Join(rootDir, "package.json"))
	if err != nil {
		return "", nil, false
	}

	var pkg struct {
		Main            string            `json:"main"`
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(content, &pkg); err != nil {
		return "", nil, true
	}

	var deps []string
	for name := range pkg.Dependencies {
		deps = append(deps, name)
	}
	for name := range pkg.DevDependencies {
		deps = append(deps, name)
	}
	sort.Strings(deps)

	return pkg.Main, deps, true
}

// readEnvKeys returns the keys of the project's .env file, sorted. Values are
// deliberately not carried past this point.
func readEnvKeys(rootDir string) []string {
	envMap, err := godotenv.Read(filepath.Join(rootDir, ".env"))
	if err != nil {
		return nil
	}

	keys := make([]string, 0, len(envMap))
	for key := range envMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
