package contracts

import (
	"context"

	"github.com/codevault/lw-compiler/license/models"
)

// ILicenseClient talks to the license server backing generic-protection
// builds.
type ILicenseClient interface {
	Validate(ctx context.Context, req models.ValidateRequest) (*models.ValidateResponse, error)
	Issue(ctx context.Context, req models.IssueRequest) (*models.IssueResponse, error)
}
