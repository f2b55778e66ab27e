package dto

import (
	"time"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
)

// InstitutionSettingsPayload carries the per-institution billing policy.
type InstitutionSettingsPayload struct {
	Currency            string `json:"currency" binding:"omitempty,len=3"`
	Timezone            string `json:"timezone"`
	AcademicYearStart   int    `json:"academicYearStart" binding:"omitempty,min=1,max=12"`
	PaymentDueDays      int    `json:"paymentDueDays" binding:"omitempty,min=1,max=90"`
	LateFeePercentage   int    `json:"lateFeePercentage" binding:"omitempty,min=0,max=100"`
	EnableAutoReminders bool   `json:"enableAutoReminders"`
}

// CreateInstitutionRequest is the request body for registering an institution.
type CreateInstitutionRequest struct {
	Name            string                      `json:"name" binding:"required,min=3,max=100"`
	Code            string                      `json:"code" binding:"required,min=2,max=20"`
	Address         string                      `json:"address"`
	Phone           string                      `json:"phone"`
	Email           string                      `json:"email" binding:"omitempty,email"`
	PrincipalName   string                      `json:"principalName"`
	EstablishedYear int                         `json:"establishedYear" binding:"omitempty,min=1900,max=2100"`
	Settings        *InstitutionSettingsPayload `json:"settings,omitempty"`
}

// UpdateInstitutionRequest is the request body for updating an institution.
type UpdateInstitutionRequest struct {
	Name            *string                     `json:"name,omitempty" binding:"omitempty,min=3,max=100"`
	Address         *string                     `json:"address,omitempty"`
	Phone           *string                     `json:"phone,omitempty"`
	Email           *string                     `json:"email,omitempty" binding:"omitempty,email"`
	PrincipalName   *string                     `json:"principalName,omitempty"`
	EstablishedYear *int                        `json:"establishedYear,omitempty" binding:"omitempty,min=1900,max=2100"`
	Status          *string                     `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
	Settings        *InstitutionSettingsPayload `json:"settings,omitempty"`
}

// InstitutionResponse is the API representation of an institution.
type InstitutionResponse struct {
	ID              string                     `json:"id"`
	Name            string                     `json:"name"`
	Code            string                     `json:"code"`
	Address         string                     `json:"address,omitempty"`
	Phone           string                     `json:"phone,omitempty"`
	Email           string                     `json:"email,omitempty"`
	PrincipalName   string                     `json:"principalName,omitempty"`
	EstablishedYear int                        `json:"establishedYear,omitempty"`
	Status          string                     `json:"status"`
	Settings        InstitutionSettingsPayload `json:"settings"`
	CreatedAt       time.Time                  `json:"createdAt"`
	UpdatedAt       time.Time                  `json:"updatedAt"`
}

// ToInstitutionResponse maps a domain institution to its API representation.
func ToInstitutionResponse(inst *domain.Institution) InstitutionResponse {
	return InstitutionResponse{
		ID:              inst.InstitutionID,
		Name:            inst.Name,
		Code:            inst.Code,
		Address:         inst.Address,
		Phone:           inst.Phone,
		Email:           inst.Email,
		PrincipalName:   inst.PrincipalName,
		EstablishedYear: inst.EstablishedYear,
		Status:          string(inst.Status),
		Settings: InstitutionSettingsPayload{
			Currency:            inst.Settings.Currency,
			Timezone:            inst.Settings.Timezone,
			AcademicYearStart:   inst.Settings.AcademicYearStart,
			PaymentDueDays:      inst.Settings.PaymentDueDays,
			LateFeePercentage:   inst.Settings.LateFeePercentage,
			EnableAutoReminders: inst.Settings.EnableAutoReminders,
		},
		CreatedAt: inst.CreatedAt,
		UpdatedAt: inst.LastUpdatedAt,
	}
}

// ToInstitutionResponses maps a slice of domain institutions.
func ToInstitutionResponses(insts []domain.Institution) []InstitutionResponse {
	responses := make([]InstitutionResponse, 0, len(insts))
	for i := range insts {
		responses = append(responses, ToInstitutionResponse(&insts[i]))
	}
	return responses
}
