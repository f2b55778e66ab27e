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

type institutionHandler struct {
	institutionService portssvc.InstitutionSvcFacade
}

func newInstitutionHandler(institutionService portssvc.InstitutionSvcFacade) *institutionHandler {
	return &institutionHandler{institutionService: institutionService}
}

// registerInstitutionRoutes registers routes related to institutions.
func registerInstitutionRoutes(rg *gin.RouterGroup, institutionService portssvc.InstitutionSvcFacade) {
	h := newInstitutionHandler(institutionService)

	institutions := rg.Group("/institutions")
	{
		institutions.GET("", h.listInstitutions)
		institutions.GET("/:id", h.getInstitution)

		admin := institutions.Group("", middleware.RequireRole(domain.RoleAdmin))
		admin.POST("", h.createInstitution)
		admin.PUT("/:id", h.updateInstitution)
		admin.DELETE("/:id", h.deleteInstitution)
	}
}

// createInstitution godoc
// @Summary Register an institution
// @Tags institutions
// @Accept json
// @Produce json
// @Param institution body dto.CreateInstitutionRequest true "Institution details"
// @Success 201 {object} dto.InstitutionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Code already registered"
// @Security BearerAuth
// @Router /institutions [post]
func (h *institutionHandler) createInstitution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateInstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	institution, err := h.institutionService.CreateInstitution(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create institution")
		return
	}

	logger.Info("institution created", slog.String("institution_id", institution.InstitutionID))
	c.JSON(http.StatusCreated, dto.ToInstitutionResponse(institution))
}

// listInstitutions godoc
// @Summary List institutions
// @Tags institutions
// @Produce json
// @Success 200 {array} dto.InstitutionResponse
// @Security BearerAuth
// @Router /institutions [get]
func (h *institutionHandler) listInstitutions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	institutions, err := h.institutionService.ListInstitutions(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list institutions")
		return
	}
	c.JSON(http.StatusOK, dto.ToInstitutionResponses(institutions))
}

// getInstitution godoc
// @Summary Get an institution by id
// @Tags institutions
// @Produce json
// @Param id path string true "Institution ID"
// @Success 200 {object} dto.InstitutionResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /institutions/{id} [get]
func (h *institutionHandler) getInstitution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	institution, err := h.institutionService.GetInstitutionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to load institution")
		return
	}
	c.JSON(http.StatusOK, dto.ToInstitutionResponse(institution))
}

// updateInstitution godoc
// @Summary Update an institution
// @Tags institutions
// @Accept json
// @Produce json
// @Param id path string true "Institution ID"
// @Param institution body dto.UpdateInstitutionRequest true "Fields to update"
// @Success 200 {object} dto.InstitutionResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /institutions/{id} [put]
func (h *institutionHandler) updateInstitution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateInstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	institution, err := h.institutionService.UpdateInstitution(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update institution")
		return
	}
	c.JSON(http.StatusOK, dto.ToInstitutionResponse(institution))
}

// deleteInstitution godoc
// @Summary Delete an institution
// @Description Fails with 409 while classrooms still reference the institution
// @Tags institutions
// @Produce json
// @Param id path string true "Institution ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 409 {object} map[string]string "Classrooms reference this institution"
// @Security BearerAuth
// @Router /institutions/{id} [delete]
func (h *institutionHandler) deleteInstitution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.institutionService.DeleteInstitution(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, logger, err, "Failed to delete institution")
		return
	}
	c.Status(http.StatusNoContent)
}
