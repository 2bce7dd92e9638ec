package repositories

import (
	"time"

	"reviewhub/internal/models"

	"gorm.io/gorm"
)

// StatsScope narrows aggregation to a tenant, optionally to one company.
type StatsScope struct {
	OwnerID   string
	CompanyID *string
}

// ReviewTimeRow is the raw material for time-bucketed metrics; bucketing
// happens in the service so the SQL stays portable across drivers.
type ReviewTimeRow struct {
	Rating    int
	CreatedAt time.Time
	RepliedAt *time.Time
}

// FeedbackTotals mirrors the company counters the notification collaborator
// maintains. Sent may race ahead of Total.
type FeedbackTotals struct {
	Total int64
	Sent  int64
}

type StatsRepository interface {
	// CountRatedReviews counts reviews carrying a rating; unrated stubs are
	// feedback, not reviews, for rating metrics.
	CountRatedReviews(db *gorm.DB, scope StatsScope) (int64, error)
	AverageRating(db *gorm.DB, scope StatsScope) (float64, error)
	RatingCounts(db *gorm.DB, scope StatsScope) (map[int]int64, error)
	StatusCounts(db *gorm.DB, scope StatsScope) (map[models.ReviewStatus]int64, error)
	CountPendingReplies(db *gorm.DB, scope StatsScope) (int64, error)
	FeedbackTotals(db *gorm.DB, scope StatsScope) (*FeedbackTotals, error)
	ReviewTimes(db *gorm.DB, scope StatsScope, since *time.Time) ([]ReviewTimeRow, error)
}

type StatsRepositoryImpl struct{}

func NewStatsRepository() StatsRepository {
	return &StatsRepositoryImpl{}
}

// scoped applies the tenant boundary through company membership. Listing uses
// the join strategy; both must authorize identically.
func scoped(db *gorm.DB, scope StatsScope) *gorm.DB {
	sub := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Company{}).
		Select("id").
		Where("owner_id = ?", scope.OwnerID)

	tx := db.Model(&models.Review{}).Where("reviews.company_id IN (?)", sub)
	if scope.CompanyID != nil {
		tx = tx.Where("reviews.company_id = ?", *scope.CompanyID)
	}
	return tx
}

func (r *StatsRepositoryImpl) CountRatedReviews(db *gorm.DB, scope StatsScope) (int64, error) {
	var count int64
	err := scoped(db, scope).Where("reviews.rating > 0").Count(&count).Error
	return count, err
}

func (r *StatsRepositoryImpl) AverageRating(db *gorm.DB, scope StatsScope) (float64, error) {
	// Unrated stubs carry rating 0 and are excluded from the mean.
	var avg *float64
	err := scoped(db, scope).
		Where("reviews.rating > 0").
		Select("AVG(reviews.rating)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *StatsRepositoryImpl) RatingCounts(db *gorm.DB, scope StatsScope) (map[int]int64, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	err := scoped(db, scope).
		Where("reviews.rating > 0").
		Select("reviews.rating AS rating, COUNT(*) AS count").
		Group("reviews.rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.Rating] = row.Count
	}
	return counts, nil
}

func (r *StatsRepositoryImpl) StatusCounts(db *gorm.DB, scope StatsScope) (map[models.ReviewStatus]int64, error) {
	var rows []struct {
		Status models.ReviewStatus
		Count  int64
	}
	err := scoped(db, scope).
		Select("reviews.status AS status, COUNT(*) AS count").
		Group("reviews.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ReviewStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *StatsRepositoryImpl) CountPendingReplies(db *gorm.DB, scope StatsScope) (int64, error) {
	// A stub without a rating is not awaiting a reply yet.
	var count int64
	err := scoped(db, scope).
		Where("reviews.status = ? AND reviews.rating > 0", models.ReviewStatusPending).
		Count(&count).Error
	return count, err
}

func (r *StatsRepositoryImpl) FeedbackTotals(db *gorm.DB, scope StatsScope) (*FeedbackTotals, error) {
	tx := db.Model(&models.Company{}).Where("owner_id = ?", scope.OwnerID)
	if scope.CompanyID != nil {
		tx = tx.Where("id = ?", *scope.CompanyID)
	}

	var totals FeedbackTotals
	err := tx.
		Select("COALESCE(SUM(feedback_count), 0) AS total, COALESCE(SUM(feedback_sent), 0) AS sent").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *StatsRepositoryImpl) ReviewTimes(db *gorm.DB, scope StatsScope, since *time.Time) ([]ReviewTimeRow, error) {
	tx := scoped(db, scope).
		Select("reviews.rating AS rating, reviews.created_at AS created_at, reviews.replied_at AS replied_at")
	if since != nil {
		tx = tx.Where("reviews.created_at >= ?", *since)
	}

	var rows []ReviewTimeRow
	err := tx.Order("reviews.created_at ASC").Scan(&rows).Error
	return rows, err
}
