package handlers

import (
	"net/http"

	"reviewhub/internal/middleware"
	"reviewhub/internal/services"
	"reviewhub/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	reviews := r.Group("/reviews")
	reviews.Use(middleware.IdentityMiddleware())
	{
		reviews.GET("", h.ListReviews)
		reviews.GET("/:reviewId", h.GetReview)
		reviews.POST("/:reviewId/reply", h.Reply)
	}
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeOwnerID(c)
	if !ok {
		return
	}

	var query dto.ListReviewsQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	page, pageSize := ParsePagination(c)

	result, err := h.reviewService.ListReviews(h.GetDB(c), ownerID, &query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeOwnerID(c)
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(h.GetDB(c), c.Param("reviewId"), ownerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Reply(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeOwnerID(c)
	if !ok {
		return
	}

	var req dto.ReplyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Reply(h.GetDB(c), c.Param("reviewId"), ownerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}
