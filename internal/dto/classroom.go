package dto

import (
	"time"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
)

// CreateClassroomRequest is the request body for creating a classroom.
type CreateClassroomRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=50"`
	Code           string `json:"code" binding:"required,min=1,max=20"`
	InstitutionID  string `json:"institutionId" binding:"required"`
	AcademicYearID string `json:"academicYearId" binding:"required"`
	Level          string `json:"level"`
	Section        string `json:"section"`
	Capacity       int    `json:"capacity" binding:"omitempty,min=1,max=200"`
	ClassTeacherID string `json:"classTeacherId"`
	FeeStructureID string `json:"feeStructureId"`
}

// UpdateClassroomRequest is the request body for updating a classroom.
type UpdateClassroomRequest struct {
	Name           *string `json:"name,omitempty" binding:"omitempty,min=1,max=50"`
	Level          *string `json:"level,omitempty"`
	Section        *string `json:"section,omitempty"`
	Capacity       *int    `json:"capacity,omitempty" binding:"omitempty,min=1,max=200"`
	ClassTeacherID *string `json:"classTeacherId,omitempty"`
	FeeStructureID *string `json:"feeStructureId,omitempty"`
	Status         *string `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}

// ClassroomResponse is the API representation of a classroom.
type ClassroomResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Code            string    `json:"code"`
	InstitutionID   string    `json:"institutionId"`
	AcademicYearID  string    `json:"academicYearId"`
	Level           string    `json:"level,omitempty"`
	Section         string    `json:"section,omitempty"`
	Capacity        int       `json:"capacity"`
	CurrentStrength int       `json:"currentStrength"`
	OverCapacity    bool      `json:"overCapacity"`
	ClassTeacherID  string    `json:"classTeacherId,omitempty"`
	FeeStructureID  string    `json:"feeStructureId,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ToClassroomResponse maps a domain classroom to its API representation.
func ToClassroomResponse(cr *domain.Classroom) ClassroomResponse {
	return ClassroomResponse{
		ID:              cr.ClassroomID,
		Name:            cr.Name,
		Code:            cr.Code,
		InstitutionID:   cr.InstitutionID,
		AcademicYearID:  cr.AcademicYearID,
		Level:           cr.Level,
		Section:         cr.Section,
		Capacity:        cr.Capacity,
		CurrentStrength: cr.CurrentStrength,
		OverCapacity:    cr.IsOverCapacity(),
		ClassTeacherID:  cr.ClassTeacherID,
		FeeStructureID:  cr.FeeStructureID,
		Status:          string(cr.Status),
		CreatedAt:       cr.CreatedAt,
		UpdatedAt:       cr.LastUpdatedAt,
	}
}

// ToClassroomResponses maps a slice of domain classrooms.
func ToClassroomResponses(classrooms []domain.Classroom) []ClassroomResponse {
	responses := make([]ClassroomResponse, 0, len(classrooms))
	for i := range classrooms {
		responses = append(responses, ToClassroomResponse(&classrooms[i]))
	}
	return responses
}
