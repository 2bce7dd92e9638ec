package services

import (
	"reviewhub/internal/repositories"
	"reviewhub/pkg/apperrors"

	"gorm.io/gorm"
)

// AccessGuard is the single tenant-isolation check point. Every review and
// company operation that receives a company id resolves authorization here.
type AccessGuard interface {
	// Authorize returns the shared not-found error on any mismatch; a caller
	// can never distinguish "absent" from "owned by someone else".
	Authorize(db *gorm.DB, ownerID, companyID string) error
}

type accessGuard struct {
	companyRepo repositories.CompanyRepository
}

func NewAccessGuard(companyRepo repositories.CompanyRepository) AccessGuard {
	return &accessGuard{companyRepo: companyRepo}
}

func (g *accessGuard) Authorize(db *gorm.DB, ownerID, companyID string) error {
	owns, err := g.companyRepo.OwnsCompany(db, ownerID, companyID)
	if err != nil {
		return apperrors.ErrStorageUnavailable(err)
	}
	if !owns {
		return apperrors.ErrNotFound(repositories.ErrCompanyNotFound)
	}
	return nil
}
