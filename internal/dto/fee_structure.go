package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/utils"
)

// FeeItemPayload is one charge line in a fee structure request.
type FeeItemPayload struct {
	Name        string          `json:"name" binding:"required,min=2,max=100"`
	Category    string          `json:"category" binding:"required,oneof=tuition admission development transport library lab sports other"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	IsRecurring bool            `json:"isRecurring"`
	Frequency   string          `json:"frequency" binding:"omitempty,oneof=monthly quarterly annually"`
	IsOptional  bool            `json:"isOptional"`
}

// CreateFeeStructureRequest is the request body for creating a fee structure.
type CreateFeeStructureRequest struct {
	Name           string           `json:"name" binding:"required,min=3,max=100"`
	InstitutionID  string           `json:"institutionId" binding:"required"`
	AcademicYearID string           `json:"academicYearId" binding:"required"`
	ApplicableFor  string           `json:"applicableFor" binding:"required,oneof=institution class student"`
	TargetID       string           `json:"targetId"`
	Fees           []FeeItemPayload `json:"fees" binding:"required,min=1,dive"`
}

// UpdateFeeStructureRequest is the request body for updating a fee structure.
// Replacing the fee items recomputes the total and regenerates the schedule.
type UpdateFeeStructureRequest struct {
	Name   *string          `json:"name,omitempty" binding:"omitempty,min=3,max=100"`
	Fees   []FeeItemPayload `json:"fees,omitempty" binding:"omitempty,min=1,dive"`
	Status *string          `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}

// FeeItemResponse is the API representation of a fee item.
type FeeItemResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	AmountFormatted string          `json:"amountFormatted"`
	IsRecurring     bool            `json:"isRecurring"`
	Frequency       string          `json:"frequency,omitempty"`
	IsOptional      bool            `json:"isOptional"`
}

// InstallmentResponse is the API representation of a schedule installment.
type InstallmentResponse struct {
	ID                string          `json:"id"`
	InstallmentNumber int             `json:"installmentNumber"`
	DueDate           time.Time       `json:"dueDate"`
	DueDateFormatted  string          `json:"dueDateFormatted"`
	Amount            decimal.Decimal `json:"amount"`
	AmountFormatted   string          `json:"amountFormatted"`
	FeeItemIDs        []string        `json:"feeItemIds"`
	Status            string          `json:"status"`
}

// FeeStructureResponse is the API representation of a fee structure.
type FeeStructureResponse struct {
	ID                   string                `json:"id"`
	Name                 string                `json:"name"`
	InstitutionID        string                `json:"institutionId"`
	AcademicYearID       string                `json:"academicYearId"`
	ApplicableFor        string                `json:"applicableFor"`
	TargetID             string                `json:"targetId,omitempty"`
	Fees                 []FeeItemResponse     `json:"fees"`
	TotalAmount          decimal.Decimal       `json:"totalAmount"`
	TotalAmountFormatted string                `json:"totalAmountFormatted"`
	PaymentSchedule      []InstallmentResponse `json:"paymentSchedule"`
	Status               string                `json:"status"`
	CreatedAt            time.Time             `json:"createdAt"`
	UpdatedAt            time.Time             `json:"updatedAt"`
}

// ToFeeStructureResponse maps a domain fee structure to its API representation.
func ToFeeStructureResponse(fs *domain.FeeStructure) FeeStructureResponse {
	fees := make([]FeeItemResponse, 0, len(fs.Fees))
	for _, item := range fs.Fees {
		fees = append(fees, FeeItemResponse{
			ID:              item.FeeItemID,
			Name:            item.Name,
			Category:        string(item.Category),
			Amount:          item.Amount,
			AmountFormatted: utils.FormatIDR(item.Amount),
			IsRecurring:     item.IsRecurring,
			Frequency:       string(item.Frequency),
			IsOptional:      item.IsOptional,
		})
	}

	schedule := make([]InstallmentResponse, 0, len(fs.PaymentSchedule))
	for _, inst := range fs.PaymentSchedule {
		schedule = append(schedule, InstallmentResponse{
			ID:                inst.InstallmentID,
			InstallmentNumber: inst.InstallmentNumber,
			DueDate:           inst.DueDate,
			DueDateFormatted:  utils.FormatDateWIB(inst.DueDate),
			Amount:            inst.Amount,
			AmountFormatted:   utils.FormatIDR(inst.Amount),
			FeeItemIDs:        inst.FeeItemIDs,
			Status:            string(inst.Status),
		})
	}

	return FeeStructureResponse{
		ID:                   fs.FeeStructureID,
		Name:                 fs.Name,
		InstitutionID:        fs.InstitutionID,
		AcademicYearID:       fs.AcademicYearID,
		ApplicableFor:        string(fs.ApplicableFor),
		TargetID:             fs.TargetID,
		Fees:                 fees,
		TotalAmount:          fs.TotalAmount,
		TotalAmountFormatted: utils.FormatIDR(fs.TotalAmount),
		PaymentSchedule:      schedule,
		Status:               string(fs.Status),
		CreatedAt:            fs.CreatedAt,
		UpdatedAt:            fs.LastUpdatedAt,
	}
}

// ToFeeStructureResponses maps a slice of domain fee structures.
func ToFeeStructureResponses(structures []domain.FeeStructure) []FeeStructureResponse {
	responses := make([]FeeStructureResponse, 0, len(structures))
	for i := range structures {
		responses = append(responses, ToFeeStructureResponse(&structures[i]))
	}
	return responses
}
