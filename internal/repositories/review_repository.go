package repositories

import (
	"errors"
	"time"

	"reviewhub/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrDuplicateToken = errors.New("review token already used")
	ErrAlreadyReplied = errors.New("review already replied")
)

// ReviewFilter scopes a listing to a tenant with optional company and status
// narrowing. The page window and the total count must be computed over the
// same predicate.
type ReviewFilter struct {
	OwnerID   string
	CompanyID *string
	Status    *models.ReviewStatus
}

type ReviewRepository interface {
	CreateReview(db *gorm.DB, review *models.Review) error
	FindReviewByID(db *gorm.DB, id string) (*models.Review, error)
	FindReviewByUID(db *gorm.DB, uid string) (*models.Review, error)

	// FindReviewForOwner joins through companies; a review of another tenant
	// is reported as ErrReviewNotFound.
	FindReviewForOwner(db *gorm.DB, id, ownerID string) (*models.Review, error)

	// RateReview writes the customer's rating conditionally on the review
	// still being open (status = pending). A reply committed by a concurrent
	// transaction therefore wins: the stale write affects zero rows and is
	// reported as ErrAlreadyReplied.
	RateReview(db *gorm.DB, uid string, rating int, comment *string) (*models.Review, error)

	// Reply closes the review with a single conditional UPDATE; replied_at is
	// assigned via COALESCE so the first reply's timestamp survives any later
	// edit, including a concurrent one.
	Reply(db *gorm.DB, id, ownerID, replyText string) (*models.Review, error)

	FindReviewsWithPagination(db *gorm.DB, filter ReviewFilter, page, pageSize int) ([]models.Review, int64, error)

	// FindReviewsByOwnerSubquery lists via the membership subquery instead of
	// the join. Both scopes must agree; kept as the second enforcement point
	// so the equivalence stays testable.
	FindReviewsByOwnerSubquery(db *gorm.DB, filter ReviewFilter) ([]models.Review, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

// ownerJoinScope restricts reviews to a tenant via JOIN on companies.owner_id.
func ownerJoinScope(ownerID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN companies ON companies.id = reviews.company_id AND companies.owner_id = ?", ownerID)
	}
}

// ownerSubqueryScope restricts reviews to a tenant via company membership.
func ownerSubqueryScope(db *gorm.DB, ownerID string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.Company{}).
			Select("id").
			Where("owner_id = ?", ownerID)
		return tx.Where("reviews.company_id IN (?)", sub)
	}
}

func applyFilter(tx *gorm.DB, filter ReviewFilter) *gorm.DB {
	if filter.CompanyID != nil {
		tx = tx.Where("reviews.company_id = ?", *filter.CompanyID)
	}
	if filter.Status != nil {
		tx = tx.Where("reviews.status = ?", *filter.Status)
	}
	return tx
}

func (r *ReviewRepositoryImpl) CreateReview(db *gorm.DB, review *models.Review) error {
	if err := db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateToken
		}
		return err
	}
	return nil
}

func (r *ReviewRepositoryImpl) FindReviewByID(db *gorm.DB, id string) (*models.Review, error) {
	var review models.Review
	if err := db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindReviewByUID(db *gorm.DB, uid string) (*models.Review, error) {
	var review models.Review
	if err := db.First(&review, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindReviewForOwner(db *gorm.DB, id, ownerID string) (*models.Review, error) {
	var review models.Review
	err := db.Scopes(ownerJoinScope(ownerID)).
		Where("reviews.id = ?", id).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) RateReview(db *gorm.DB, uid string, rating int, comment *string) (*models.Review, error) {
	result := db.Model(&models.Review{}).
		Where("uid = ? AND status = ?", uid, models.ReviewStatusPending).
		Updates(map[string]interface{}{
			"rating":  rating,
			"comment": comment,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// Distinguish an unknown token from a review a reply already closed.
		var review models.Review
		if err := db.First(&review, "uid = ?", uid).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReviewNotFound
			}
			return nil, err
		}
		return nil, ErrAlreadyReplied
	}

	return r.FindReviewByUID(db, uid)
}

func (r *ReviewRepositoryImpl) Reply(db *gorm.DB, id, ownerID, replyText string) (*models.Review, error) {
	membership := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Company{}).
		Select("id").
		Where("owner_id = ?", ownerID)

	result := db.Model(&models.Review{}).
		Where("id = ? AND company_id IN (?)", id, membership).
		Updates(map[string]interface{}{
			"reply":  replyText,
			"status": models.ReviewStatusReplied,
			// First reply only; later edits keep the original timestamp so
			// time-to-first-response metrics stay stable.
			"replied_at": gorm.Expr("COALESCE(replied_at, ?)", time.Now()),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrReviewNotFound
	}

	return r.FindReviewForOwner(db, id, ownerID)
}

func (r *ReviewRepositoryImpl) FindReviewsWithPagination(db *gorm.DB, filter ReviewFilter, page, pageSize int) ([]models.Review, int64, error) {
	scoped := applyFilter(db.Model(&models.Review{}).Scopes(ownerJoinScope(filter.OwnerID)), filter)

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	offset := (page - 1) * pageSize
	err := applyFilter(db.Model(&models.Review{}).Scopes(ownerJoinScope(filter.OwnerID)), filter).
		Order("reviews.created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *ReviewRepositoryImpl) FindReviewsByOwnerSubquery(db *gorm.DB, filter ReviewFilter) ([]models.Review, error) {
	var reviews []models.Review
	err := applyFilter(db.Model(&models.Review{}).Scopes(ownerSubqueryScope(db, filter.OwnerID)), filter).
		Order("reviews.created_at DESC").
		Find(&reviews).Error
	return reviews, err
}
