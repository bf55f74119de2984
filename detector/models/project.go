package models

// Language identifies the source language of an uploaded project.
type Language string

const (
	LanguagePython Language = "python"
	LanguageNode   Language = "node"
)

// Valid reports whether the language is one of the supported targets.
func (l Language) Valid() bool {
	return l == LanguagePython || l == LanguageNode
}

// SourceFile is a single project file with its content loaded for analysis.
type SourceFile struct {
	RelativePath string
	Content      []byte
}

// ProjectFileSet is the immutable set of files belonging to one uploaded
// project, tagged with its language. It is built once by the scanner when the
// upload step completes and never mutated afterwards.
type ProjectFileSet struct {
	Language Language
	Files    []SourceFile

	// PackageMain is the "main" field of package.json for node projects,
	// empty when absent or for python projects.
	PackageMain string
}

// EntryPointCandidate is one ranked guess at the program entry file.
// Candidates are produced fresh from a ProjectFileSet and never persisted.
type EntryPointCandidate struct {
	File   string `json:"file"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// ProjectStructure summarizes everything the wizard offers as advanced
// options: python packages, bundleable data folders, declared dependencies
// and .env keys.
type ProjectStructure struct {
	Packages        []string
	DataFolders     []string
	EnvKeys         []string
	HasRequirements bool
	Requirements    []string
	HasPackageJSON  bool
	NodeDeps        []string
}
