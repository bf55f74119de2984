package wizard

import (
	"github.com/codevault/lw-compiler/detector/models"
)

// IssueCode identifies one class of manifest validation problem.
type IssueCode string

const (
	IssueMissingEntryPoint     IssueCode = "MissingEntryPoint"
	IssueInvalidDemoDuration   IssueCode = "InvalidDemoDuration"
	IssueIncompatibleOption    IssueCode = "IncompatibleOption"
	IssueUnsupportedIconFormat IssueCode = "UnsupportedIconFormat"
	IssueConflictingPackage    IssueCode = "ConflictingPackageRule"
)

// Severity splits issues into blocking errors and non-blocking warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one validation finding, returned as data rather than thrown.
type Issue struct {
	Code     IssueCode `json:"code"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
}

// BuildManifest is the compiler's output: the validated, internally
// consistent description of one build, handed to the native packaging
// backend. An invalid manifest is still a manifest — callers render every
// accumulated issue instead of catching exceptions.
type BuildManifest struct {
	EntryFile   string           `json:"entryFile"`
	Language    models.Language  `json:"language"`
	ShowConsole bool             `json:"showConsole"`
	Protection  ProtectionConfig `json:"protection"`
	Advanced    AdvancedOptions  `json:"advanced"`
	Valid       bool             `json:"valid"`
	Issues      []Issue          `json:"issues,omitempty"`

	// candidates carries the ranked sequence the manifest was validated
	// against so AsDraft can reconstruct an equivalent draft.
	candidates []models.EntryPointCandidate
}

// Errors returns the blocking issues.
func (m BuildManifest) Errors() []Issue {
	return m.filter(SeverityError)
}

// Warnings returns the non-blocking issues.
func (m BuildManifest) Warnings() []Issue {
	return m.filter(SeverityWarning)
}

func (m BuildManifest) filter(severity Severity) []Issue {
	var filtered []Issue
	for _, issue := range m.Issues {
		if issue.Severity == severity {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

// AsDraft reconstructs a draft equivalent to the one this manifest was
// compiled from. Compiling that draft again yields an identical manifest.
func (m BuildManifest) AsDraft() Draft {
	return Draft{
		EntryFile:   m.EntryFile,
		Language:    m.Language,
		ShowConsole: m.ShowConsole,
		Protection:  m.Protection,
		Advanced:    m.Advanced,
		Candidates:  m.candidates,
	}
}
