package wizard

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/codevault/lw-compiler/detector/models"
)

// Icon formats the packaging backends accept directly.
var allowedIconExtensions = []string{".ico", ".png"}

// Compile reduces a wizard draft to a validated build manifest. It is a pure
// function of the draft: no side effects, no exceptions. All validation
// rules run and every finding is collected so the caller can surface the
// complete problem list at once; the manifest is valid iff no blocking error
// fired.
func Compile(draft Draft) BuildManifest {
	var issues []Issue

	// Rule 1: the entry file must be one of the ranked candidates.
	if !isCandidate(draft.EntryFile, draft.Candidates) {
		issues = append(issues, Issue{
			Code:     IssueMissingEntryPoint,
			Severity: SeverityError,
			Message:  "no entry point selected, or the selection is not among the detected candidates",
		})
	}

	// Rule 2: the trial duration only matters in demo mode and must come
	// from the fixed duration set.
	if draft.Protection.Mode == ModeDemo && !IsAllowedDemoDuration(draft.Protection.DemoDuration) {
		issues = append(issues, Issue{
			Code:     IssueInvalidDemoDuration,
			Severity: SeverityError,
			Message:  fmt.Sprintf("demo duration %d is not one of the allowed values %v", draft.Protection.DemoDuration, AllowedDemoDurations),
		})
	}

	// Rule 3: node-only options on a python build are ignored by the
	// backend; warn but do not block.
	if draft.Language == models.LanguagePython {
		if draft.Advanced.NodeTarget != "" || draft.Advanced.Obfuscation {
			issues = append(issues, Issue{
				Code:     IssueIncompatibleOption,
				Severity: SeverityWarning,
				Message:  "node target and obfuscation only apply to node builds and will be ignored",
			})
		}
	}

	// Rule 4: icons must already be in a format the backend accepts.
	if draft.Advanced.IconPath != "" && !hasAllowedIconExtension(draft.Advanced.IconPath) {
		issues = append(issues, Issue{
			Code:     IssueUnsupportedIconFormat,
			Severity: SeverityError,
			Message:  fmt.Sprintf("icon %q must be one of %s", draft.Advanced.IconPath, strings.Join(allowedIconExtensions, ", ")),
		})
	}

	// Rule 5: a package cannot be both included and excluded.
	if overlap := packageOverlap(draft.Advanced.IncludePackages, draft.Advanced.ExcludePackages); len(overlap) > 0 {
		issues = append(issues, Issue{
			Code:     IssueConflictingPackage,
			Severity: SeverityError,
			Message:  fmt.Sprintf("packages listed as both included and excluded: %s", strings.Join(overlap, ", ")),
		})
	}

	valid := true
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			valid = false
			break
		}
	}

	return BuildManifest{
		EntryFile:   draft.EntryFile,
		Language:    draft.Language,
		ShowConsole: draft.ShowConsole,
		Protection:  draft.Protection,
		Advanced:    draft.Advanced,
		Valid:       valid,
		Issues:      issues,
		candidates:  draft.Candidates,
	}
}

func isCandidate(entryFile string, candidates []models.EntryPointCandidate) bool {
	if entryFile == "" {
		return false
	}
	for _, candidate := range candidates {
		if candidate.File == entryFile {
			return true
		}
	}
	return false
}

func hasAllowedIconExtension(iconPath string) bool {
	ext := strings.ToLower(path.Ext(iconPath))
	for _, allowed := range allowedIconExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// packageOverlap returns the sorted set of packages present in both lists.
func packageOverlap(include, exclude []string) []string {
	excluded := make(map[string]struct{}, len(exclude))
	for _, pkg := range exclude {
		excluded[pkg] = struct{}{}
	}

	seen := make(map[string]struct{})
	var overlap []string
	for _, pkg := range include {
		if _, ok := excluded[pkg]; !ok {
			continue
		}
		if _, dup := seen[pkg]; dup {
			continue
		}
		seen[pkg] = struct{}{}
		overlap = append(overlap, pkg)
	}
	sort.Strings(overlap)
	return overlap
}
