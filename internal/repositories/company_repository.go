package repositories

import (
	"errors"

	"reviewhub/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound = errors.New("company not found")
)

type CompanyRepository interface {
	CreateCompany(db *gorm.DB, company *models.Company) error
	FindCompanyByID(db *gorm.DB, id string) (*models.Company, error)

	// FindCompanyForOwner returns ErrCompanyNotFound both when the company is
	// absent and when it belongs to another owner. Existence of other tenants'
	// companies must not leak.
	FindCompanyForOwner(db *gorm.DB, id, ownerID string) (*models.Company, error)
	FindCompaniesByOwner(db *gorm.DB, ownerID string, status *models.CompanyStatus) ([]models.Company, error)

	OwnsCompany(db *gorm.DB, ownerID, companyID string) (bool, error)
	IncrementFeedbackCounters(db *gorm.DB, companyID string) error
}

type CompanyRepositoryImpl struct{}

func NewCompanyRepository() CompanyRepository {
	return &CompanyRepositoryImpl{}
}

func (r *CompanyRepositoryImpl) CreateCompany(db *gorm.DB, company *models.Company) error {
	return db.Create(company).Error
}

func (r *CompanyRepositoryImpl) FindCompanyByID(db *gorm.DB, id string) (*models.Company, error) {
	var company models.Company
	if err := db.First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) FindCompanyForOwner(db *gorm.DB, id, ownerID string) (*models.Company, error) {
	var company models.Company
	err := db.Where("id = ? AND owner_id = ?", id, ownerID).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) FindCompaniesByOwner(db *gorm.DB, ownerID string, status *models.CompanyStatus) ([]models.Company, error) {
	var companies []models.Company
	query := db.Where("owner_id = ?", ownerID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Order("name ASC").Find(&companies).Error
	return companies, err
}

func (r *CompanyRepositoryImpl) OwnsCompany(db *gorm.DB, ownerID, companyID string) (bool, error) {
	var count int64
	err := db.Model(&models.Company{}).
		Where("id = ? AND owner_id = ?", companyID, ownerID).
		Count(&count).Error
	return count > 0, err
}

func (r *CompanyRepositoryImpl) IncrementFeedbackCounters(db *gorm.DB, companyID string) error {
	return db.Model(&models.Company{}).
		Where("id = ?", companyID).
		UpdateColumns(map[string]interface{}{
			"review_count":   gorm.Expr("review_count + 1"),
			"feedback_count": gorm.Expr("feedback_count + 1"),
		}).Error
}
