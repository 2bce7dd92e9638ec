package handlers

import (
	"net/http"

	"reviewhub/internal/middleware"
	"reviewhub/internal/services"
	"reviewhub/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	*BaseHandler
	directoryService services.DirectoryService
	reviewService    services.ReviewService
}

func NewCompanyHandler(base *BaseHandler, directoryService services.DirectoryService, reviewService services.ReviewService) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:      base,
		directoryService: directoryService,
		reviewService:    reviewService,
	}
}

func (h *CompanyHandler) RegisterRoutes(r *gin.RouterGroup) {
	companies := r.Group("/companies")
	companies.Use(middleware.IdentityMiddleware())
	{
		companies.POST("", h.CreateCompany)
		companies.GET("", h.ListCompanies)
		companies.GET("/:companyId", h.GetCompany)
		companies.POST("/:companyId/reviews", h.CreateDirectReview)
	}
}

func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeOwnerID(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	company, err := h.directoryService.CreateCompany(h.GetDB(c), ownerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeOwnerID(c)
	if !ok {
		return
	}

	var query dto.ListCompaniesQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	companies, err := h.directoryService.ListCompanies(h.GetDB(c), ownerID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, companies)
}

func (h *CompanyHandler) GetCompany(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeOwnerID(c)
	if !ok {
		return
	}

	company, err := h.directoryService.GetCompany(h.GetDB(c), c.Param("companyId"), ownerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) CreateDirectReview(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeOwnerID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.reviewService.CreateDirect(h.GetDB(c), c.Param("companyId"), ownerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}
