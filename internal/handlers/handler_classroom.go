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

type classroomHandler struct {
	classroomService portssvc.ClassroomSvcFacade
}

func newClassroomHandler(classroomService portssvc.ClassroomSvcFacade) *classroomHandler {
	return &classroomHandler{classroomService: classroomService}
}

// registerClassroomRoutes registers routes related to classrooms.
func registerClassroomRoutes(rg *gin.RouterGroup, classroomService portssvc.ClassroomSvcFacade) {
	h := newClassroomHandler(classroomService)

	classes := rg.Group("/classes")
	{
		classes.GET("", h.listClassrooms)
		classes.GET("/:id", h.getClassroom)

		admin := classes.Group("", middleware.RequireRole(domain.RoleAdmin))
		admin.POST("", h.createClassroom)
		admin.PUT("/:id", h.updateClassroom)
		admin.DELETE("/:id", h.deleteClassroom)
	}
}

// createClassroom godoc
// @Summary Create a classroom
// @Tags classes
// @Accept json
// @Produce json
// @Param classroom body dto.CreateClassroomRequest true "Classroom details"
// @Success 201 {object} dto.ClassroomResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Institution or year not found"
// @Security BearerAuth
// @Router /classes [post]
func (h *classroomHandler) createClassroom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	classroom, err := h.classroomService.CreateClassroom(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create classroom")
		return
	}

	logger.Info("classroom created", slog.String("classroom_id", classroom.ClassroomID))
	c.JSON(http.StatusCreated, dto.ToClassroomResponse(classroom))
}

// listClassrooms godoc
// @Summary List classrooms
// @Tags classes
// @Produce json
// @Param institutionId query string false "Filter by institution"
// @Success 200 {array} dto.ClassroomResponse
// @Security BearerAuth
// @Router /classes [get]
func (h *classroomHandler) listClassrooms(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	classrooms, err := h.classroomService.ListClassrooms(c.Request.Context(), c.Query("institutionId"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to list classrooms")
		return
	}
	c.JSON(http.StatusOK, dto.ToClassroomResponses(classrooms))
}

// getClassroom godoc
// @Summary Get a classroom by id
// @Tags classes
// @Produce json
// @Param id path string true "Classroom ID"
// @Success 200 {object} dto.ClassroomResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /classes/{id} [get]
func (h *classroomHandler) getClassroom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	classroom, err := h.classroomService.GetClassroomByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to load classroom")
		return
	}
	c.JSON(http.StatusOK, dto.ToClassroomResponse(classroom))
}

// updateClassroom godoc
// @Summary Update a classroom
// @Tags classes
// @Accept json
// @Produce json
// @Param id path string true "Classroom ID"
// @Param classroom body dto.UpdateClassroomRequest true "Fields to update"
// @Success 200 {object} dto.ClassroomResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /classes/{id} [put]
func (h *classroomHandler) updateClassroom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	classroom, err := h.classroomService.UpdateClassroom(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update classroom")
		return
	}
	c.JSON(http.StatusOK, dto.ToClassroomResponse(classroom))
}

// deleteClassroom godoc
// @Summary Delete a classroom
// @Description Fails with 409 while students are still enrolled
// @Tags classes
// @Produce json
// @Param id path string true "Classroom ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 409 {object} map[string]string "Students still enrolled"
// @Security BearerAuth
// @Router /classes/{id} [delete]
func (h *classroomHandler) deleteClassroom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.classroomService.DeleteClassroom(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, logger, err, "Failed to delete classroom")
		return
	}
	c.Status(http.StatusNoContent)
}
