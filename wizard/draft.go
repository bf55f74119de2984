package wizard

import (
	"fmt"
	"sort"

	"github.com/codevault/lw-compiler/detector/models"
	"github.com/codevault/lw-compiler/preset"
)

// NodeTarget is a pkg packaging target for node builds.
type NodeTarget string

// Targets supported by the pinned pkg toolchain.
const (
	TargetNodeWin   NodeTarget = "node18-win-x64"
	TargetNodeLinux NodeTarget = "node18-linux-x64"
	TargetNodeMac   NodeTarget = "node18-macos-x64"
)

// ParseNodeTarget converts user input into a NodeTarget.
func ParseNodeTarget(s string) (NodeTarget, error) {
	switch NodeTarget(s) {
	case TargetNodeWin, TargetNodeLinux, TargetNodeMac:
		return NodeTarget(s), nil
	}
	return "", fmt.Errorf("unknown node target: %q", s)
}

// AdvancedOptions holds the packaging options of the wizard's advanced step.
// No field has a default that overrides another; every field is set through
// an explicit Draft setter.
type AdvancedOptions struct {
	EnvKeys         []string   `json:"envKeys"`
	IconPath        string     `json:"iconPath"`
	IncludePackages []string   `json:"includePackages"`
	ExcludePackages []string   `json:"excludePackages"`
	DataFolders     []string   `json:"dataFolders"`
	NodeTarget      NodeTarget `json:"nodeTarget"`
	Obfuscation     bool       `json:"obfuscation"`
}

// Draft is the in-progress build configuration owned by one wizard session.
// It is a value: every setter returns a new draft, so there is no hidden
// aliasing between wizard steps and the compiler.
type Draft struct {
	EntryFile   string
	Language    models.Language
	ShowConsole bool
	Protection  ProtectionConfig
	Advanced    AdvancedOptions

	// Candidates is the full ranked entry point sequence for the current
	// project. Validation always runs against this full sequence, never a
	// truncated display prefix.
	Candidates []models.EntryPointCandidate
}

// NewDraft starts a draft for a scanned project with the session defaults:
// console shown, generic protection.
func NewDraft(language models.Language, candidates []models.EntryPointCandidate) Draft {
	return Draft{
		Language:    language,
		ShowConsole: true,
		Protection:  ProtectionConfig{Mode: ModeGeneric},
		Candidates:  candidates,
	}
}

func (d Draft) WithEntryFile(file string) Draft {
	d.EntryFile = file
	return d
}

func (d Draft) WithShowConsole(show bool) Draft {
	d.ShowConsole = show
	return d
}

func (d Draft) WithProtection(config ProtectionConfig) Draft {
	d.Protection = config
	return d
}

// WithEnvKeys replaces the env key set. Keys are deduplicated and sorted.
func (d Draft) WithEnvKeys(keys []string) Draft {
	d.Advanced.EnvKeys = sortedSet(keys)
	return d
}

func (d Draft) WithIconPath(path string) Draft {
	d.Advanced.IconPath = path
	return d
}

func (d Draft) WithIncludePackages(packages []string) Draft {
	d.Advanced.IncludePackages = append([]string(nil), packages...)
	return d
}

func (d Draft) WithExcludePackages(packages []string) Draft {
	d.Advanced.ExcludePackages = append([]string(nil), packages...)
	return d
}

// WithDataFolders replaces the bundled data folder set, deduplicated and
// sorted.
func (d Draft) WithDataFolders(folders []string) Draft {
	d.Advanced.DataFolders = sortedSet(folders)
	return d
}

func (d Draft) WithNodeTarget(target NodeTarget) Draft {
	d.Advanced.NodeTarget = target
	return d
}

func (d Draft) WithObfuscation(enabled bool) Draft {
	d.Advanced.Obfuscation = enabled
	return d
}

// ApplyPreset layers a saved preset snapshot onto the draft. A demo-mode
// preset restores demo protection with its stored duration; otherwise the
// draft falls back to generic mode, retaining the stored duration so a later
// switch to demo picks it up.
func (d Draft) ApplyPreset(config preset.Config) Draft {
	d.ShowConsole = config.ShowConsole
	d.Advanced.IncludePackages = append([]string(nil), config.IncludePackages...)
	d.Advanced.ExcludePackages = append([]string(nil), config.ExcludePackages...)
	d.Advanced.DataFolders = sortedSet(config.SelectedDataFolders)
	if config.IconPath != nil {
		d.Advanced.IconPath = *config.IconPath
	} else {
		d.Advanced.IconPath = ""
	}

	if config.DemoMode {
		d.Protection = ProtectionConfig{Mode: ModeDemo, DemoDuration: config.DemoDuration}
	} else {
		d.Protection = ProtectionConfig{Mode: ModeGeneric, DemoDuration: config.DemoDuration}
	}
	return d
}

// Snapshot captures the draft's preset-persistable slice for saving.
func (d Draft) Snapshot() preset.Config {
	var iconPath *string
	if d.Advanced.IconPath != "" {
		path := d.Advanced.IconPath
		iconPath = &path
	}
	return preset.Config{
		ShowConsole:         d.ShowConsole,
		IncludePackages:     append([]string(nil), d.Advanced.IncludePackages...),
		ExcludePackages:     append([]string(nil), d.Advanced.ExcludePackages...),
		SelectedDataFolders: append([]string(nil), d.Advanced.DataFolders...),
		DemoMode:            d.Protection.DemoMode(),
		DemoDuration:        d.Protection.DemoDuration,
		IconPath:            iconPath,
	}
}

func sortedSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var result []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	sort.Strings(result)
	return result
}
