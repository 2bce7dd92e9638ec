package handlers

import (
	"net/http"

	"reviewhub/internal/middleware"
	"reviewhub/internal/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	*BaseHandler
	statsService services.StatsService
}

func NewStatsHandler(base *BaseHandler, statsService services.StatsService) *StatsHandler {
	return &StatsHandler{
		BaseHandler:  base,
		statsService: statsService,
	}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	stats.Use(middleware.IdentityMiddleware())
	{
		stats.GET("/overview", h.Overview)
		stats.GET("/response-time", h.ResponseTime)
		stats.GET("/trend", h.Trend)
		stats.GET("/weekly", h.WeeklyByDay)
		stats.GET("/monthly", h.MonthlyCounts)
	}
}

// companyFilter reads the optional company_id query parameter.
func companyFilter(c *gin.Context) *string {
	if companyID := c.Query("company_id"); companyID != "" {
		return &companyID
	}
	return nil
}

func (h *StatsHandler) Overview(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeOwnerID(c)
	if !ok {
		return
	}

	overview, err := h.statsService.Overview(h.GetDB(c), ownerID, companyFilter(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

func (h *StatsHandler) ResponseTime(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeOwnerID(c)
	if !ok {
		return
	}

	stats, err := h.statsService.ResponseTime(h.GetDB(c), ownerID, companyFilter(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) Trend(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeOwnerID(c)
	if !ok {
		return
	}

	days := ParseQueryInt(c, "days", 30)

	points, err := h.statsService.Trend(h.GetDB(c), ownerID, companyFilter(c), days)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trend": points})
}

func (h *StatsHandler) WeeklyByDay(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeOwnerID(c)
	if !ok {
		return
	}

	points, err := h.statsService.WeeklyByDay(h.GetDB(c), ownerID, companyFilter(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"weekly": points})
}

func (h *StatsHandler) MonthlyCounts(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeOwnerID(c)
	if !ok {
		return
	}

	months := ParseQueryInt(c, "months", 12)

	points, err := h.statsService.MonthlyCounts(h.GetDB(c), ownerID, companyFilter(c), months)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"monthly": points})
}
