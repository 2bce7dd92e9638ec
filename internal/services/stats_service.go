package services

import (
	"fmt"
	"math"
	"time"

	"reviewhub/internal/models"
	"reviewhub/internal/repositories"
	"reviewhub/internal/services/dto"
	"reviewhub/pkg/apperrors"

	"gorm.io/gorm"
)

// StatsService is the read-only aggregation layer over the review store.
// Empty data never fails; only storage faults propagate.
type StatsService interface {
	Overview(db *gorm.DB, ownerID string, companyID *string) (*dto.OverviewResponse, error)
	ResponseTime(db *gorm.DB, ownerID string, companyID *string) (*dto.ResponseTimeResponse, error)
	Trend(db *gorm.DB, ownerID string, companyID *string, windowDays int) ([]dto.TrendPoint, error)
	WeeklyByDay(db *gorm.DB, ownerID string, companyID *string) ([]dto.WeekdayPoint, error)
	MonthlyCounts(db *gorm.DB, ownerID string, companyID *string, months int) ([]dto.MonthPoint, error)
}

type statsService struct {
	statsRepo repositories.StatsRepository
	guard     AccessGuard
	now       func() time.Time
}

func NewStatsService(statsRepo repositories.StatsRepository, guard AccessGuard) StatsService {
	return &statsService{
		statsRepo: statsRepo,
		guard:     guard,
		now:       time.Now,
	}
}

func (s *statsService) scope(db *gorm.DB, ownerID string, companyID *string) (repositories.StatsScope, error) {
	scope := repositories.StatsScope{OwnerID: ownerID}
	if companyID != nil && *companyID != "" {
		if err := s.guard.Authorize(db, ownerID, *companyID); err != nil {
			return scope, err
		}
		scope.CompanyID = companyID
	}
	return scope, nil
}

func (s *statsService) Overview(db *gorm.DB, ownerID string, companyID *string) (*dto.OverviewResponse, error) {
	scope, err := s.scope(db, ownerID, companyID)
	if err != nil {
		return nil, err
	}

	total, err := s.statsRepo.CountRatedReviews(db, scope)
	if err != nil {
		return nil, apperrors.ErrStorageUnavailable(err)
	}

	avg, err := s.statsRepo.AverageRating(db, scope)
	if err != nil {
		return nil, apperrors.ErrStorageUnavailable(err)
	}

	ratingCounts, err := s.statsRepo.RatingCounts(db, scope)
	if err != nil {
		return nil, apperrors.ErrStorageUnavailable(err)
	}

	statusCounts, err := s.statsRepo.StatusCounts(db, scope)
	if err != nil {
		return nil, apperrors.ErrStorageUnavailable(err)
	}

	totals, err := s.statsRepo.FeedbackTotals(db, scope)
	if err != nil {
		return nil, apperrors.ErrStorageUnavailable(err)
	}

	return &dto.OverviewResponse{
		TotalReviews:       total,
		AverageRating:      formatAverageRating(avg, total),
		RatingDistribution: denseDistribution(ratingCounts),
		StatusDistribution: dto.StatusDistribution{
			Pending: statusCounts[models.ReviewStatusPending],
			Replied: statusCounts[models.ReviewStatusReplied],
		},
		FeedbackStats: dto.FeedbackStats{
			Total:   totals.Total,
			Sent:    totals.Sent,
			Pending: pendingFeedback(totals.Total, totals.Sent),
		},
	}, nil
}

func (s *statsService) ResponseTime(db *gorm.DB, ownerID string, companyID *string) (*dto.ResponseTimeResponse, error) {
	scope, err := s.scope(db, ownerID, companyID)
	if err != nil {
		return nil, err
	}

	pending, err := s.statsRepo.CountPendingReplies(db, scope)
	if err != nil {
		return nil, apperrors.ErrStorageUnavailable(err)
	}

	rows, err := s.statsRepo.ReviewTimes(db, scope, nil)
	if err != nil {
		return nil, apperrors.ErrStorageUnavailable(err)
	}

	var totalHours float64
	var replied int64
	for _, row := range rows {
		if row.RepliedAt == nil {
			continue
		}
		totalHours += row.RepliedAt.Sub(row.CreatedAt).Hours()
		replied++
	}

	avgLabel := "N/A"
	if replied > 0 {
		avgLabel = formatResponseTime(totalHours / float64(replied))
	}

	return &dto.ResponseTimeResponse{
		PendingReplies:  pending,
		AvgResponseTime: avgLabel,
	}, nil
}

func (s *statsService) Trend(db *gorm.DB, ownerID string, companyID *string, windowDays int) ([]dto.TrendPoint, error) {
	scope, err := s.scope(db, ownerID, companyID)
	if err != nil {
		return nil, err
	}

	if windowDays < 1 {
		windowDays = 30
	}
	since := s.now().AddDate(0, 0, -windowDays)

	rows, err := s.statsRepo.ReviewTimes(db, scope, &since)
	if err != nil {
		return nil, apperrors.ErrStorageUnavailable(err)
	}

	// Sparse series: days without a rated review are omitted, not zero-filled.
	type bucket struct {
		sum   int
		count int
	}
	buckets := make(map[string]*bucket)
	var order []string
	for _, row := range rows {
		if row.Rating == 0 {
			continue
		}
		day := row.CreatedAt.Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
			order = append(order, day)
		}
		b.sum += row.Rating
		b.count++
	}

	points := make([]dto.TrendPoint, 0, len(order))
	for _, day := range order {
		b := buckets[day]
		points = append(points, dto.TrendPoint{
			Date:          day,
			AverageRating: roundRating(float64(b.sum) / float64(b.count)),
		})
	}
	return points, nil
}

func (s *statsService) WeeklyByDay(db *gorm.DB, ownerID string, companyID *string) ([]dto.WeekdayPoint, error) {
	scope, err := s.scope(db, ownerID, companyID)
	if err != nil {
		return nil, err
	}

	since := s.now().AddDate(0, 0, -7)
	rows, err := s.statsRepo.ReviewTimes(db, scope, &since)
	if err != nil {
		return nil, apperrors.ErrStorageUnavailable(err)
	}

	var sums [7]int
	var counts [7]int
	for _, row := range rows {
		if row.Rating == 0 {
			continue
		}
		idx := mondayIndex(row.CreatedAt.Weekday())
		sums[idx] += row.Rating
		counts[idx]++
	}

	// Dense series: exactly seven rows, zero when the weekday saw no reviews.
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	points := make([]dto.WeekdayPoint, 0, 7)
	for i, day := range days {
		avg := 0.0
		if counts[i] > 0 {
			avg = roundRating(float64(sums[i]) / float64(counts[i]))
		}
		points = append(points, dto.WeekdayPoint{Day: day, AverageRating: avg})
	}
	return points, nil
}

func (s *statsService) MonthlyCounts(db *gorm.DB, ownerID string, companyID *string, months int) ([]dto.MonthPoint, error) {
	scope, err := s.scope(db, ownerID, companyID)
	if err != nil {
		return nil, err
	}

	if months < 1 {
		months = 12
	}
	since := s.now().AddDate(0, -months, 0)

	rows, err := s.statsRepo.ReviewTimes(db, scope, &since)
	if err != nil {
		return nil, apperrors.ErrStorageUnavailable(err)
	}

	// Rows arrive ordered by created_at, so first appearance of a month is
	// its earliest review timestamp.
	counts := make(map[string]int64)
	var order []string
	for _, row := range rows {
		month := row.CreatedAt.Format("2006-01")
		if _, ok := counts[month]; !ok {
			order = append(order, month)
		}
		counts[month]++
	}

	points := make([]dto.MonthPoint, 0, len(order))
	for _, month := range order {
		points = append(points, dto.MonthPoint{Month: month, TotalReviews: counts[month]})
	}
	return points, nil
}

// formatAverageRating renders the mean of non-zero ratings with one decimal,
// "0.0" for an empty set.
func formatAverageRating(avg float64, total int64) string {
	if total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", avg)
}

// formatResponseTime renders an average in hours below one day, otherwise in
// days, rounding half-up.
func formatResponseTime(avgHours float64) string {
	if avgHours < 24 {
		return fmt.Sprintf("%dh", int(math.Floor(avgHours+0.5)))
	}
	return fmt.Sprintf("%dd", int(math.Floor(avgHours/24+0.5)))
}

// pendingFeedback clamps at zero: the sent counter is maintained by an
// external notifier and may run ahead of the total on retried sends.
func pendingFeedback(total, sent int64) int64 {
	if sent >= total {
		return 0
	}
	return total - sent
}

// denseDistribution reports all five buckets, defaulting missing ones to 0.
func denseDistribution(counts map[int]int64) map[int]int64 {
	dist := make(map[int]int64, 5)
	for star := 1; star <= 5; star++ {
		dist[star] = counts[star]
	}
	return dist
}

func mondayIndex(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}

func roundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
