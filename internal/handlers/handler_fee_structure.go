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

type feeStructureHandler struct {
	structureService portssvc.FeeStructureSvcFacade
}

func newFeeStructureHandler(structureService portssvc.FeeStructureSvcFacade) *feeStructureHandler {
	return &feeStructureHandler{structureService: structureService}
}

// registerFeeStructureRoutes registers routes related to fee structures.
func registerFeeStructureRoutes(rg *gin.RouterGroup, structureService portssvc.FeeStructureSvcFacade) {
	h := newFeeStructureHandler(structureService)

	structures := rg.Group("/fee-structures")
	{
		structures.GET("", h.listFeeStructures)
		structures.GET("/:id", h.getFeeStructure)

		admin := structures.Group("", middleware.RequireRole(domain.RoleAdmin))
		admin.POST("", h.createFeeStructure)
		admin.PUT("/:id", h.updateFeeStructure)
		admin.DELETE("/:id", h.deleteFeeStructure)
	}
}

// createFeeStructure godoc
// @Summary Create a fee structure
// @Description Derives the annual total (monthly items count twelve times) and the 12-installment schedule
// @Tags fee-structures
// @Accept json
// @Produce json
// @Param structure body dto.CreateFeeStructureRequest true "Fee structure details"
// @Success 201 {object} dto.FeeStructureResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /fee-structures [post]
func (h *feeStructureHandler) createFeeStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFeeStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	structure, err := h.structureService.CreateFeeStructure(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create fee structure")
		return
	}

	logger.Info("fee structure created",
		slog.String("fee_structure_id", structure.FeeStructureID),
		slog.String("total_amount", structure.TotalAmount.String()),
	)
	c.JSON(http.StatusCreated, dto.ToFeeStructureResponse(structure))
}

// listFeeStructures godoc
// @Summary List fee structures
// @Tags fee-structures
// @Produce json
// @Param institutionId query string false "Filter by institution"
// @Success 200 {array} dto.FeeStructureResponse
// @Security BearerAuth
// @Router /fee-structures [get]
func (h *feeStructureHandler) listFeeStructures(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	structures, err := h.structureService.ListFeeStructures(c.Request.Context(), c.Query("institutionId"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to list fee structures")
		return
	}
	c.JSON(http.StatusOK, dto.ToFeeStructureResponses(structures))
}

// getFeeStructure godoc
// @Summary Get a fee structure by id
// @Description Installment statuses are re-derived against the current time
// @Tags fee-structures
// @Produce json
// @Param id path string true "Fee structure ID"
// @Success 200 {object} dto.FeeStructureResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /fee-structures/{id} [get]
func (h *feeStructureHandler) getFeeStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	structure, err := h.structureService.GetFeeStructureByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to load fee structure")
		return
	}
	c.JSON(http.StatusOK, dto.ToFeeStructureResponse(structure))
}

// updateFeeStructure godoc
// @Summary Update a fee structure
// @Description Replacing fee items recomputes the total and regenerates the schedule
// @Tags fee-structures
// @Accept json
// @Produce json
// @Param id path string true "Fee structure ID"
// @Param structure body dto.UpdateFeeStructureRequest true "Fields to update"
// @Success 200 {object} dto.FeeStructureResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /fee-structures/{id} [put]
func (h *feeStructureHandler) updateFeeStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateFeeStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	structure, err := h.structureService.UpdateFeeStructure(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update fee structure")
		return
	}
	c.JSON(http.StatusOK, dto.ToFeeStructureResponse(structure))
}

// deleteFeeStructure godoc
// @Summary Delete a fee structure
// @Tags fee-structures
// @Produce json
// @Param id path string true "Fee structure ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /fee-structures/{id} [delete]
func (h *feeStructureHandler) deleteFeeStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.structureService.DeleteFeeStructure(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, logger, err, "Failed to delete fee structure")
		return
	}
	c.Status(http.StatusNoContent)
}
