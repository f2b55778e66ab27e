package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sekolahpay/spp_billing_app/internal/core/ports/services"
	"github.com/sekolahpay/spp_billing_app/internal/dto"
	"github.com/sekolahpay/spp_billing_app/internal/middleware"
)

type billingHandler struct {
	billingService portssvc.BillingSvcFacade
}

func newBillingHandler(billingService portssvc.BillingSvcFacade) *billingHandler {
	return &billingHandler{billingService: billingService}
}

// RegisterBillingRoutes registers routes for the billing ledger. Payments
// are the cashier desk's main operation, so no extra role gate beyond auth.
func RegisterBillingRoutes(rg *gin.RouterGroup, billingService portssvc.BillingSvcFacade) {
	h := newBillingHandler(billingService)

	billings := rg.Group("/billings")
	{
		billings.POST("", h.createBilling)
		billings.GET("", h.listBillings)
		billings.GET("/:id", h.getBilling)
		billings.POST("/:id/payments", h.applyPayment)
		billings.POST("/:id/discounts", h.applyDiscount)
		billings.POST("/:id/late-fees", h.assessLateFee)
		billings.POST("/refresh-statuses", h.refreshStatuses)
	}
}

// createBilling godoc
// @Summary Open a billing record for a student
// @Description One billing record per student per academic year, totals taken from the fee structure
// @Tags billings
// @Accept json
// @Produce json
// @Param billing body dto.CreateBillingRequest true "Billing details"
// @Success 201 {object} dto.BillingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Student or fee structure not found"
// @Failure 409 {object} map[string]string "Billing record already exists"
// @Security BearerAuth
// @Router /billings [post]
func (h *billingHandler) createBilling(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	billing, err := h.billingService.CreateBilling(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create billing record")
		return
	}

	logger.Info("billing record created",
		slog.String("billing_id", billing.StudentBillingID),
		slog.String("student_id", billing.StudentID),
	)
	c.JSON(http.StatusCreated, dto.ToBillingResponse(billing))
}

// listBillings godoc
// @Summary List billing records
// @Description Optionally resolves a single record by studentId + academicYearId
// @Tags billings
// @Produce json
// @Param studentId query string false "Student ID (with academicYearId)"
// @Param academicYearId query string false "Academic year ID (with studentId)"
// @Success 200 {array} dto.BillingResponse
// @Security BearerAuth
// @Router /billings [get]
func (h *billingHandler) listBillings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	studentID := c.Query("studentId")
	academicYearID := c.Query("academicYearId")
	if studentID != "" && academicYearID != "" {
		billing, err := h.billingService.GetBillingByStudent(c.Request.Context(), studentID, academicYearID)
		if err != nil {
			respondWithError(c, logger, err, "Failed to load billing record")
			return
		}
		c.JSON(http.StatusOK, []dto.BillingResponse{dto.ToBillingResponse(billing)})
		return
	}

	billings, err := h.billingService.ListBillings(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list billing records")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillingResponses(billings))
}

// getBilling godoc
// @Summary Get a billing record by id
// @Tags billings
// @Produce json
// @Param id path string true "Billing ID"
// @Success 200 {object} dto.BillingResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /billings/{id} [get]
func (h *billingHandler) getBilling(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	billing, err := h.billingService.GetBillingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to load billing record")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillingResponse(billing))
}

// applyPayment godoc
// @Summary Record a payment
// @Description Applies money against the outstanding balance and issues a receipt number
// @Tags billings
// @Accept json
// @Produce json
// @Param id path string true "Billing ID"
// @Param payment body dto.ApplyPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Billing record not found"
// @Failure 422 {object} map[string]string "Payment exceeds outstanding balance"
// @Security BearerAuth
// @Router /billings/{id}/payments [post]
func (h *billingHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	_, payment, err := h.billingService.ApplyPayment(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("receipt_number", payment.ReceiptNumber),
	)
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// applyDiscount godoc
// @Summary Grant a discount
// @Tags billings
// @Accept json
// @Produce json
// @Param id path string true "Billing ID"
// @Param discount body dto.ApplyDiscountRequest true "Discount details"
// @Success 200 {object} dto.BillingResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Billing record not found"
// @Security BearerAuth
// @Router /billings/{id}/discounts [post]
func (h *billingHandler) applyDiscount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	billing, err := h.billingService.ApplyDiscount(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to apply discount")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillingResponse(billing))
}

// assessLateFee godoc
// @Summary Assess a late fee
// @Description Adds the institution's late fee percentage of the outstanding balance, once per due date
// @Tags billings
// @Produce json
// @Param id path string true "Billing ID"
// @Success 200 {object} dto.BillingResponse
// @Failure 404 {object} map[string]string "Billing record not found"
// @Failure 409 {object} map[string]string "Not overdue or already assessed"
// @Security BearerAuth
// @Router /billings/{id}/late-fees [post]
func (h *billingHandler) assessLateFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	billing, err := h.billingService.AssessLateFee(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to assess late fee")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillingResponse(billing))
}

// refreshStatuses godoc
// @Summary Refresh billing statuses
// @Description Re-derives every billing status, reclassifying persistent overdue records as defaulters
// @Tags billings
// @Produce json
// @Success 200 {object} map[string]int "Number of records updated"
// @Security BearerAuth
// @Router /billings/refresh-statuses [post]
func (h *billingHandler) refreshStatuses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	changed, err := h.billingService.RefreshStatuses(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to refresh billing statuses")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": changed})
}
