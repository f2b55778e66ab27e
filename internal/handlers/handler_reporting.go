package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sekolahpay/spp_billing_app/internal/core/ports/services"
	"github.com/sekolahpay/spp_billing_app/internal/dto"
	"github.com/sekolahpay/spp_billing_app/internal/middleware"
)

type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// RegisterReportingRoutes registers the read-only reporting routes.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/academic-year/:id", h.academicYearReport)
		reports.GET("/institution/:id", h.institutionReport)
		reports.GET("/class/:id", h.classReport)
		reports.GET("/defaulters", h.defaultersList)
		reports.GET("/daily-stats", h.dailyStats)
	}
}

// academicYearReport godoc
// @Summary Collection summary for an academic year
// @Tags reports
// @Produce json
// @Param id path string true "Academic year ID"
// @Success 200 {object} dto.CollectionSummaryResponse
// @Security BearerAuth
// @Router /reports/academic-year/{id} [get]
func (h *reportingHandler) academicYearReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reportingService.AcademicYearReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to build academic year report")
		return
	}
	c.JSON(http.StatusOK, dto.ToCollectionSummaryResponse(summary))
}

// institutionReport godoc
// @Summary Collection summary for an institution
// @Tags reports
// @Produce json
// @Param id path string true "Institution ID"
// @Success 200 {object} dto.CollectionSummaryResponse
// @Security BearerAuth
// @Router /reports/institution/{id} [get]
func (h *reportingHandler) institutionReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reportingService.InstitutionReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to build institution report")
		return
	}
	c.JSON(http.StatusOK, dto.ToCollectionSummaryResponse(summary))
}

// classReport godoc
// @Summary Collection summary for a class
// @Tags reports
// @Produce json
// @Param id path string true "Classroom ID"
// @Success 200 {object} dto.CollectionSummaryResponse
// @Security BearerAuth
// @Router /reports/class/{id} [get]
func (h *reportingHandler) classReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reportingService.ClassReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to build class report")
		return
	}
	c.JSON(http.StatusOK, dto.ToCollectionSummaryResponse(summary))
}

// defaultersList godoc
// @Summary List overdue and defaulting billing records
// @Tags reports
// @Produce json
// @Param institutionId query string false "Filter by institution"
// @Success 200 {array} dto.BillingResponse
// @Security BearerAuth
// @Router /reports/defaulters [get]
func (h *reportingHandler) defaultersList(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	defaulters, err := h.reportingService.DefaultersList(c.Request.Context(), c.Query("institutionId"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to list defaulters")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillingResponses(defaulters))
}

// dailyStats godoc
// @Summary Today's cashier desk statistics
// @Tags reports
// @Produce json
// @Success 200 {object} dto.DailyStatsResponse
// @Security BearerAuth
// @Router /reports/daily-stats [get]
func (h *reportingHandler) dailyStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stats, err := h.reportingService.DailyStats(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute daily stats")
		return
	}
	c.JSON(http.StatusOK, dto.ToDailyStatsResponse(stats))
}
