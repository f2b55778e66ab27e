package dto

import (
	"time"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
)

// CreateAcademicYearRequest is the request body for creating an academic year.
type CreateAcademicYearRequest struct {
	Name      string    `json:"name" binding:"required,min=4,max=20"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	IsDefault bool      `json:"isDefault"`
}

// UpdateAcademicYearRequest is the request body for updating an academic year.
// Activation is a separate operation and is not accepted here.
type UpdateAcademicYearRequest struct {
	Name      *string    `json:"name,omitempty" binding:"omitempty,min=4,max=20"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	IsDefault *bool      `json:"isDefault,omitempty"`
}

// AcademicYearResponse is the API representation of an academic year.
type AcademicYearResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToAcademicYearResponse maps a domain academic year to its API representation.
func ToAcademicYearResponse(y *domain.AcademicYear) AcademicYearResponse {
	return AcademicYearResponse{
		ID:        y.AcademicYearID,
		Name:      y.Name,
		StartDate: y.StartDate,
		EndDate:   y.EndDate,
		Status:    string(y.Status),
		IsDefault: y.IsDefault,
		CreatedAt: y.CreatedAt,
		UpdatedAt: y.LastUpdatedAt,
	}
}

// ToAcademicYearResponses maps a slice of domain academic years.
func ToAcademicYearResponses(years []domain.AcademicYear) []AcademicYearResponse {
	responses := make([]AcademicYearResponse, 0, len(years))
	for i := range years {
		responses = append(responses, ToAcademicYearResponse(&years[i]))
	}
	return responses
}
