package handlers

import (
	"net/http"

	"reviewhub/internal/services"
	"reviewhub/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler serves the tokenized customer-facing flow. No identity is
// required here: the single-use uid is the whole credential.
type FeedbackHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewFeedbackHandler(base *BaseHandler, reviewService services.ReviewService) *FeedbackHandler {
	return &FeedbackHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *FeedbackHandler) RegisterRoutes(r *gin.RouterGroup) {
	feedback := r.Group("/feedback")
	{
		// Called by the token-issuing collaborator (e.g. a payment callback).
		feedback.POST("/companies/:companyId/stub", h.CreateStub)
		// Called when the customer follows the tokenized link.
		feedback.GET("/:uid", h.GetByUID)
		feedback.POST("/:uid", h.SubmitRating)
	}
}

func (h *FeedbackHandler) CreateStub(c *gin.Context) {
	var req dto.CreateStubRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.reviewService.CreateStub(h.GetDB(c), c.Param("companyId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *FeedbackHandler) GetByUID(c *gin.Context) {
	review, err := h.reviewService.GetByUID(h.GetDB(c), c.Param("uid"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *FeedbackHandler) SubmitRating(c *gin.Context) {
	var req dto.SubmitRatingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.reviewService.SubmitRating(h.GetDB(c), c.Param("uid"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}
