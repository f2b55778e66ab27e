package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	portssvc "github.com/sekolahpay/spp_billing_app/internal/core/ports/services"
	"github.com/sekolahpay/spp_billing_app/internal/dto"
	"github.com/sekolahpay/spp_billing_app/internal/middleware"
)

type academicYearHandler struct {
	yearService portssvc.AcademicYearSvcFacade
}

func newAcademicYearHandler(yearService portssvc.AcademicYearSvcFacade) *academicYearHandler {
	return &academicYearHandler{yearService: yearService}
}

// registerAcademicYearRoutes registers routes related to academic years.
// Mutations are admin-only; reads are open to every authenticated operator.
func registerAcademicYearRoutes(rg *gin.RouterGroup, yearService portssvc.AcademicYearSvcFacade) {
	h := newAcademicYearHandler(yearService)

	years := rg.Group("/academic-years")
	{
		years.GET("", h.listAcademicYears)
		years.GET("/current", h.currentAcademicYear)
		years.GET("/:id", h.getAcademicYear)

		admin := years.Group("", middleware.RequireRole(domain.RoleAdmin))
		admin.POST("", h.createAcademicYear)
		admin.PUT("/:id", h.updateAcademicYear)
		admin.DELETE("/:id", h.deleteAcademicYear)
		admin.POST("/:id/activate", h.activateAcademicYear)
	}
}

// createAcademicYear godoc
// @Summary Create an academic year
// @Tags academic-years
// @Accept json
// @Produce json
// @Param year body dto.CreateAcademicYearRequest true "Academic year details"
// @Success 201 {object} dto.AcademicYearResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /academic-years [post]
func (h *academicYearHandler) createAcademicYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAcademicYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, err := h.yearService.CreateAcademicYear(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create academic year")
		return
	}

	logger.Info("academic year created", slog.String("academic_year_id", year.AcademicYearID))
	c.JSON(http.StatusCreated, dto.ToAcademicYearResponse(year))
}

// listAcademicYears godoc
// @Summary List academic years
// @Tags academic-years
// @Produce json
// @Success 200 {array} dto.AcademicYearResponse
// @Security BearerAuth
// @Router /academic-years [get]
func (h *academicYearHandler) listAcademicYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	years, err := h.yearService.ListAcademicYears(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list academic years")
		return
	}
	c.JSON(http.StatusOK, dto.ToAcademicYearResponses(years))
}

// currentAcademicYear godoc
// @Summary Get the active academic year
// @Tags academic-years
// @Produce json
// @Success 200 {object} dto.AcademicYearResponse
// @Failure 404 {object} map[string]string "No active academic year"
// @Security BearerAuth
// @Router /academic-years/current [get]
func (h *academicYearHandler) currentAcademicYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := h.yearService.CurrentAcademicYear(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to resolve active academic year")
		return
	}
	c.JSON(http.StatusOK, dto.ToAcademicYearResponse(year))
}

// getAcademicYear godoc
// @Summary Get an academic year by id
// @Tags academic-years
// @Produce json
// @Param id path string true "Academic year ID"
// @Success 200 {object} dto.AcademicYearResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /academic-years/{id} [get]
func (h *academicYearHandler) getAcademicYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := h.yearService.GetAcademicYearByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to load academic year")
		return
	}
	c.JSON(http.StatusOK, dto.ToAcademicYearResponse(year))
}

// updateAcademicYear godoc
// @Summary Update an academic year
// @Tags academic-years
// @Accept json
// @Produce json
// @Param id path string true "Academic year ID"
// @Param year body dto.UpdateAcademicYearRequest true "Fields to update"
// @Success 200 {object} dto.AcademicYearResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /academic-years/{id} [put]
func (h *academicYearHandler) updateAcademicYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateAcademicYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, err := h.yearService.UpdateAcademicYear(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update academic year")
		return
	}
	c.JSON(http.StatusOK, dto.ToAcademicYearResponse(year))
}

// deleteAcademicYear godoc
// @Summary Delete an academic year
// @Description Fails with 409 while billing records still reference the year
// @Tags academic-years
// @Produce json
// @Param id path string true "Academic year ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 409 {object} map[string]string "Billing records reference this year"
// @Security BearerAuth
// @Router /academic-years/{id} [delete]
func (h *academicYearHandler) deleteAcademicYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.yearService.DeleteAcademicYear(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, logger, err, "Failed to delete academic year")
		return
	}
	c.Status(http.StatusNoContent)
}

// activateAcademicYear godoc
// @Summary Activate an academic year
// @Description Makes the year the single active one, deactivating all others
// @Tags academic-years
// @Produce json
// @Param id path string true "Academic year ID"
// @Success 200 {object} dto.AcademicYearResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /academic-years/{id}/activate [post]
func (h *academicYearHandler) activateAcademicYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, err := h.yearService.ActivateAcademicYear(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to activate academic year")
		return
	}

	logger.Info("academic year activated", slog.String("academic_year_id", year.AcademicYearID))
	c.JSON(http.StatusOK, dto.ToAcademicYearResponse(year))
}
