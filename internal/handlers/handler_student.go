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

type studentHandler struct {
	studentService   portssvc.StudentSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

func newStudentHandler(studentService portssvc.StudentSvcFacade, reportingService portssvc.ReportingSvcFacade) *studentHandler {
	return &studentHandler{studentService: studentService, reportingService: reportingService}
}

// registerStudentRoutes registers routes related to students. The cashier
// desk needs read access for payment entry; roster mutations are admin-only.
func registerStudentRoutes(rg *gin.RouterGroup, studentService portssvc.StudentSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	h := newStudentHandler(studentService, reportingService)

	students := rg.Group("/students")
	{
		students.GET("", h.listStudents)
		students.GET("/:id", h.getStudent)
		students.GET("/:id/payments", h.studentPayments)

		admin := students.Group("", middleware.RequireRole(domain.RoleAdmin))
		admin.POST("", h.createStudent)
		admin.PUT("/:id", h.updateStudent)
		admin.DELETE("/:id", h.deleteStudent)
	}
}

// createStudent godoc
// @Summary Enroll a student
// @Tags students
// @Accept json
// @Produce json
// @Param student body dto.CreateStudentRequest true "Student details"
// @Success 201 {object} dto.StudentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "NIS already registered"
// @Security BearerAuth
// @Router /students [post]
func (h *studentHandler) createStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	student, err := h.studentService.CreateStudent(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to enroll student")
		return
	}

	logger.Info("student enrolled", slog.String("student_id", student.StudentID), slog.String("nis", student.NIS))
	c.JSON(http.StatusCreated, dto.ToStudentResponse(student))
}

// listStudents godoc
// @Summary List students
// @Description Supports filtering by class, institution, academic year, and a name/NIS search term
// @Tags students
// @Produce json
// @Param classId query string false "Filter by classroom"
// @Param institutionId query string false "Filter by institution"
// @Param academicYearId query string false "Filter by academic year"
// @Param search query string false "Name or NIS fragment"
// @Success 200 {array} dto.StudentResponse
// @Security BearerAuth
// @Router /students [get]
func (h *studentHandler) listStudents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListStudentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	students, err := h.studentService.ListStudents(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list students")
		return
	}
	c.JSON(http.StatusOK, dto.ToStudentResponses(students))
}

// getStudent godoc
// @Summary Get a student by id
// @Tags students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} dto.StudentResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /students/{id} [get]
func (h *studentHandler) getStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	student, err := h.studentService.GetStudentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to load student")
		return
	}
	c.JSON(http.StatusOK, dto.ToStudentResponse(student))
}

// studentPayments godoc
// @Summary Payment history of a student
// @Description Returns every payment in chronological order across billing records
// @Tags students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Student not found"
// @Security BearerAuth
// @Router /students/{id}/payments [get]
func (h *studentHandler) studentPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payments, err := h.reportingService.PaymentHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to load payment history")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponses(payments))
}

// updateStudent godoc
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param student body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.StudentResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /students/{id} [put]
func (h *studentHandler) updateStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	student, err := h.studentService.UpdateStudent(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update student")
		return
	}
	c.JSON(http.StatusOK, dto.ToStudentResponse(student))
}

// deleteStudent godoc
// @Summary Remove a student
// @Description Deactivates instead of deleting when billing history exists
// @Tags students
// @Produce json
// @Param id path string true "Student ID"
// @Success 204 "Removed or deactivated"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /students/{id} [delete]
func (h *studentHandler) deleteStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.studentService.DeleteStudent(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondWithError(c, logger, err, "Failed to remove student")
		return
	}
	c.Status(http.StatusNoContent)
}
