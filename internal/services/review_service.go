package services

import (
	"strings"

	"reviewhub/internal/models"
	"reviewhub/internal/repositories"
	"reviewhub/internal/services/dto"
	"reviewhub/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	// Token flow: stub first, rating later when the customer follows the link.
	CreateStub(db *gorm.DB, companyID string, req *dto.CreateStubRequest) (*dto.ReviewResponse, error)
	GetByUID(db *gorm.DB, uid string) (*dto.ReviewResponse, error)
	SubmitRating(db *gorm.DB, uid string, req *dto.SubmitRatingRequest) (*dto.ReviewResponse, error)

	// Direct flow: full contact + rating at once, entered by the owner.
	CreateDirect(db *gorm.DB, companyID, ownerID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)

	// Owner side.
	GetReview(db *gorm.DB, reviewID, ownerID string) (*dto.ReviewResponse, error)
	Reply(db *gorm.DB, reviewID, ownerID string, req *dto.ReplyRequest) (*dto.ReviewResponse, error)
	ListReviews(db *gorm.DB, ownerID string, query *dto.ListReviewsQuery, page, pageSize int) (*dto.ReviewListResponse, error)
}

type reviewService struct {
	reviewRepo  repositories.ReviewRepository
	companyRepo repositories.CompanyRepository
	guard       AccessGuard
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	companyRepo repositories.CompanyRepository,
	guard AccessGuard,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		companyRepo: companyRepo,
		guard:       guard,
	}
}

const (
	minPageSize = 1
	maxPageSize = 100
)

func (s *reviewService) CreateStub(db *gorm.DB, companyID string, req *dto.CreateStubRequest) (*dto.ReviewResponse, error) {
	if _, err := s.companyRepo.FindCompanyByID(db, companyID); err != nil {
		if apperrors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrStorageUnavailable(err)
	}

	uid := strings.TrimSpace(req.UID)
	if uid == "" {
		return nil, apperrors.ValidationError(map[string]string{"uid": "This field is required"})
	}

	review := &models.Review{
		CompanyID:    companyID,
		UID:          &uid,
		Rating:       0,
		Status:       models.ReviewStatusPending,
		ContactName:  strings.TrimSpace(req.ContactName),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
	}

	if err := s.reviewRepo.CreateReview(db, review); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateToken) {
			// Duplicate token redemption (e.g. a retried payment callback).
			return nil, apperrors.ErrDuplicateToken(err)
		}
		return nil, apperrors.ErrStorageUnavailable(err)
	}

	if err := s.companyRepo.IncrementFeedbackCounters(db, companyID); err != nil {
		return nil, apperrors.ErrStorageUnavailable(err)
	}

	return toReviewResponse(review), nil
}

func (s *reviewService) GetByUID(db *gorm.DB, uid string) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindReviewByUID(db, uid)
	if err != nil {
		if apperrors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrStorageUnavailable(err)
	}
	return toReviewResponse(review), nil
}

func (s *reviewService) SubmitRating(db *gorm.DB, uid string, req *dto.SubmitRatingRequest) (*dto.ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ValidationError(map[string]string{"rating": "Must be between 1 and 5"})
	}

	// A reply closes the conversation from the customer side; before that,
	// resubmission overwrites the editable draft. The repository write is
	// conditional on the review still being open, so a reply committed by a
	// concurrent request wins over this submission.
	review, err := s.reviewRepo.RateReview(db, uid, req.Rating, trimToNull(req.Comment))
	if err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrReviewNotFound):
			return nil, apperrors.ErrNotFound(err)
		case apperrors.Is(err, repositories.ErrAlreadyReplied):
			return nil, apperrors.ErrAlreadySubmitted(err)
		default:
			return nil, apperrors.ErrStorageUnavailable(err)
		}
	}
	return toReviewResponse(review), nil
}

func (s *reviewService) CreateDirect(db *gorm.DB, companyID, ownerID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if err := s.guard.Authorize(db, ownerID, companyID); err != nil {
		return nil, err
	}

	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ValidationError(map[string]string{"rating": "Must be between 1 and 5"})
	}

	review := &models.Review{
		CompanyID:    companyID,
		Rating:       req.Rating,
		Comment:      trimToNull(req.Comment),
		Status:       models.ReviewStatusPending,
		ContactName:  strings.TrimSpace(req.ContactName),
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
	}

	if err := s.reviewRepo.CreateReview(db, review); err != nil {
		return nil, apperrors.ErrStorageUnavailable(err)
	}

	if err := s.companyRepo.IncrementFeedbackCounters(db, companyID); err != nil {
		return nil, apperrors.ErrStorageUnavailable(err)
	}

	return toReviewResponse(review), nil
}

func (s *reviewService) GetReview(db *gorm.DB, reviewID, ownerID string) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindReviewForOwner(db, reviewID, ownerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrStorageUnavailable(err)
	}
	return toReviewResponse(review), nil
}

func (s *reviewService) Reply(db *gorm.DB, reviewID, ownerID string, req *dto.ReplyRequest) (*dto.ReviewResponse, error) {
	replyText := strings.TrimSpace(req.Reply)
	if replyText == "" {
		return nil, apperrors.ValidationError(map[string]string{"reply": "This field is required"})
	}

	review, err := s.reviewRepo.Reply(db, reviewID, ownerID, replyText)
	if err != nil {
		if apperrors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrStorageUnavailable(err)
	}
	return toReviewResponse(review), nil
}

func (s *reviewService) ListReviews(db *gorm.DB, ownerID string, query *dto.ListReviewsQuery, page, pageSize int) (*dto.ReviewListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < minPageSize {
		pageSize = minPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filter := repositories.ReviewFilter{OwnerID: ownerID}
	if query.CompanyID != "" {
		if err := s.guard.Authorize(db, ownerID, query.CompanyID); err != nil {
			return nil, err
		}
		companyID := query.CompanyID
		filter.CompanyID = &companyID
	}
	if query.Status != "" {
		status := models.ReviewStatus(query.Status)
		if status != models.ReviewStatusPending && status != models.ReviewStatusReplied {
			return nil, apperrors.ValidationError(map[string]string{"status": "Must be a valid review status"})
		}
		filter.Status = &status
	}

	reviews, total, err := s.reviewRepo.FindReviewsWithPagination(db, filter, page, pageSize)
	if err != nil {
		return nil, apperrors.ErrStorageUnavailable(err)
	}

	responses := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, toReviewResponse(&reviews[i]))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &dto.ReviewListResponse{
		Reviews:    responses,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

func trimToNull(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func toReviewResponse(review *models.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:           review.ID,
		CompanyID:    review.CompanyID,
		UID:          review.UID,
		Rating:       review.Rating,
		Comment:      review.Comment,
		Reply:        review.Reply,
		Status:       string(review.Status),
		State:        string(review.State()),
		ContactName:  review.ContactName,
		ContactEmail: review.ContactEmail,
		ContactPhone: review.ContactPhone,
		CreatedAt:    review.CreatedAt,
		UpdatedAt:    review.UpdatedAt,
		RepliedAt:    review.RepliedAt,
	}
}
