package contracts

import (
	"github.com/codevault/lw-compiler/detector/models"
)

// IEntryPointDetector ranks project files as likely entry points and scans
// extracted projects into the wizard's file set and structure summary.
type IEntryPointDetector interface {
	Rank(files models.ProjectFileSet) []models.EntryPointCandidate
	ScanProject(rootDir string, language models.Language) (*models.ProjectFileSet, *models.ProjectStructure, error)
}
