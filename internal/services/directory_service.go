package services

import (
	"strings"

	"reviewhub/internal/logger"
	"reviewhub/internal/models"
	"reviewhub/internal/repositories"
	"reviewhub/internal/services/dto"
	"reviewhub/pkg/apperrors"

	"gorm.io/gorm"
)

type DirectoryService interface {
	CreateCompany(db *gorm.DB, ownerID string, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	ListCompanies(db *gorm.DB, ownerID string, query *dto.ListCompaniesQuery) (*dto.CompanyListResponse, error)
	GetCompany(db *gorm.DB, companyID, ownerID string) (*dto.CompanyResponse, error)
}

type directoryService struct {
	companyRepo repositories.CompanyRepository
	userRepo    repositories.UserRepository
}

func NewDirectoryService(
	companyRepo repositories.CompanyRepository,
	userRepo repositories.UserRepository,
) DirectoryService {
	return &directoryService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
	}
}

func (s *directoryService) CreateCompany(db *gorm.DB, ownerID string, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.ValidationError(map[string]string{"name": "This field is required"})
	}

	company := &models.Company{
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Status:      models.CompanyStatusPublished,
	}

	if err := s.companyRepo.CreateCompany(db, company); err != nil {
		return nil, apperrors.ErrStorageUnavailable(err)
	}

	// One-time owner promotion, sequenced after the insert. Best-effort:
	// a promotion failure is logged and never rolls the creation back.
	promoted, err := s.userRepo.PromoteToAdmin(db, ownerID)
	if err != nil {
		logger.Error("owner promotion failed after company creation",
			"owner_id", ownerID,
			"company_id", company.ID,
			"error", err,
		)
	} else if promoted {
		logger.Info("owner promoted to admin", "owner_id", ownerID, "company_id", company.ID)
	}

	return toCompanyResponse(company), nil
}

func (s *directoryService) ListCompanies(db *gorm.DB, ownerID string, query *dto.ListCompaniesQuery) (*dto.CompanyListResponse, error) {
	var status *models.CompanyStatus
	if query != nil && query.Status != "" {
		st := models.CompanyStatus(query.Status)
		status = &st
	}

	companies, err := s.companyRepo.FindCompaniesByOwner(db, ownerID, status)
	if err != nil {
		return nil, apperrors.ErrStorageUnavailable(err)
	}

	responses := make([]*dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		responses = append(responses, toCompanyResponse(&companies[i]))
	}

	return &dto.CompanyListResponse{
		Companies: responses,
		Total:     len(responses),
	}, nil
}

func (s *directoryService) GetCompany(db *gorm.DB, companyID, ownerID string) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.FindCompanyForOwner(db, companyID, ownerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrStorageUnavailable(err)
	}
	return toCompanyResponse(company), nil
}

func toCompanyResponse(company *models.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:            company.ID,
		OwnerID:       company.OwnerID,
		Name:          company.Name,
		Description:   company.Description,
		Status:        string(company.Status),
		ReviewCount:   company.ReviewCount,
		FeedbackCount: company.FeedbackCount,
		FeedbackSent:  company.FeedbackSent,
		CreatedAt:     company.CreatedAt,
	}
}
