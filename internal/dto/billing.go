package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/utils"
)

// CreateBillingRequest opens a billing record for a student in an academic
// year, materializing the totals from the given fee structure.
type CreateBillingRequest struct {
	StudentID      string `json:"studentId" binding:"required"`
	AcademicYearID string `json:"academicYearId" binding:"required"`
	FeeStructureID string `json:"feeStructureId" binding:"required"`
	SpecialNotes   string `json:"specialNotes"`
}

// ApplyPaymentRequest records a payment against a billing record.
type ApplyPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method" binding:"required,oneof=cash card transfer cheque online"`
	PaymentDate *time.Time      `json:"paymentDate,omitempty"`
	FeeItemIDs  []string        `json:"feeItemIds,omitempty"`
	Notes       string          `json:"notes"`
}

// ApplyDiscountRequest grants a discount on a billing record.
type ApplyDiscountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Reason string          `json:"reason" binding:"required,min=3,max=200"`
}

// PaymentResponse is the API representation of a payment.
type PaymentResponse struct {
	ID                 string          `json:"id"`
	StudentBillingID   string          `json:"studentBillingId"`
	StudentID          string          `json:"studentId"`
	Amount             decimal.Decimal `json:"amount"`
	AmountFormatted    string          `json:"amountFormatted"`
	Method             string          `json:"method"`
	PaymentDate        time.Time       `json:"paymentDate"`
	PaymentDateDisplay string          `json:"paymentDateDisplay"`
	ReceiptNumber      string          `json:"receiptNumber"`
	FeeItemIDs         []string        `json:"feeItemIds,omitempty"`
	ProcessedBy        string          `json:"processedBy"`
	Status             string          `json:"status"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// ToPaymentResponse maps a domain payment to its API representation.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                 p.PaymentID,
		StudentBillingID:   p.StudentBillingID,
		StudentID:          p.StudentID,
		Amount:             p.Amount,
		AmountFormatted:    utils.FormatIDR(p.Amount),
		Method:             string(p.Method),
		PaymentDate:        p.PaymentDate,
		PaymentDateDisplay: utils.FormatDateTimeWIB(p.PaymentDate),
		ReceiptNumber:      p.ReceiptNumber,
		FeeItemIDs:         p.FeeItemIDs,
		ProcessedBy:        p.ProcessedBy,
		Status:             string(p.Status),
		Notes:              p.Notes,
		CreatedAt:          p.CreatedAt,
	}
}

// ToPaymentResponses maps a slice of domain payments.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, ToPaymentResponse(&payments[i]))
	}
	return responses
}

// BillingResponse is the API representation of a student billing record.
type BillingResponse struct {
	ID                         string            `json:"id"`
	StudentID                  string            `json:"studentId"`
	InstitutionID              string            `json:"institutionId"`
	AcademicYearID             string            `json:"academicYearId"`
	ClassroomID                string            `json:"classId"`
	FeeStructureID             string            `json:"feeStructureId"`
	TotalFees                  decimal.Decimal   `json:"totalFees"`
	TotalFeesFormatted         string            `json:"totalFeesFormatted"`
	PaidAmount                 decimal.Decimal   `json:"paidAmount"`
	PaidAmountFormatted        string            `json:"paidAmountFormatted"`
	OutstandingAmount          decimal.Decimal   `json:"outstandingAmount"`
	OutstandingAmountFormatted string            `json:"outstandingAmountFormatted"`
	DiscountAmount             decimal.Decimal   `json:"discountAmount"`
	LateFeeAmount              decimal.Decimal   `json:"lateFeeAmount"`
	PaymentHistory             []PaymentResponse `json:"paymentHistory"`
	NextDueDate                time.Time         `json:"nextDueDate"`
	NextDueDateFormatted       string            `json:"nextDueDateFormatted"`
	Status                     string            `json:"status"`
	SpecialNotes               string            `json:"specialNotes,omitempty"`
	CreatedAt                  time.Time         `json:"createdAt"`
	UpdatedAt                  time.Time         `json:"updatedAt"`
}

// ToBillingResponse maps a domain billing record to its API representation.
func ToBillingResponse(b *domain.StudentBilling) BillingResponse {
	return BillingResponse{
		ID:                         b.StudentBillingID,
		StudentID:                  b.StudentID,
		InstitutionID:              b.InstitutionID,
		AcademicYearID:             b.AcademicYearID,
		ClassroomID:                b.ClassroomID,
		FeeStructureID:             b.FeeStructureID,
		TotalFees:                  b.TotalFees,
		TotalFeesFormatted:         utils.FormatIDR(b.TotalFees),
		PaidAmount:                 b.PaidAmount,
		PaidAmountFormatted:        utils.FormatIDR(b.PaidAmount),
		OutstandingAmount:          b.OutstandingAmount,
		OutstandingAmountFormatted: utils.FormatIDR(b.OutstandingAmount),
		DiscountAmount:             b.DiscountAmount,
		LateFeeAmount:              b.LateFeeAmount,
		PaymentHistory:             ToPaymentResponses(b.PaymentHistory),
		NextDueDate:                b.NextDueDate,
		NextDueDateFormatted:       utils.FormatDateWIB(b.NextDueDate),
		Status:                     string(b.Status),
		SpecialNotes:               b.SpecialNotes,
		CreatedAt:                  b.CreatedAt,
		UpdatedAt:                  b.LastUpdatedAt,
	}
}

// ToBillingResponses maps a slice of domain billing records.
func ToBillingResponses(billings []domain.StudentBilling) []BillingResponse {
	responses := make([]BillingResponse, 0, len(billings))
	for i := range billings {
		responses = append(responses, ToBillingResponse(&billings[i]))
	}
	return responses
}
