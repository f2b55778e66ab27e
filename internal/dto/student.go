package dto

import (
	"time"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
)

// CreateStudentRequest is the request body for enrolling a student.
type CreateStudentRequest struct {
	NIS            string `json:"nis" binding:"required,min=4,max=20"`
	Name           string `json:"name" binding:"required,min=2,max=100"`
	ClassroomID    string `json:"classId" binding:"required"`
	InstitutionID  string `json:"institutionId" binding:"required"`
	AcademicYearID string `json:"academicYearId" binding:"required"`
	Phone          string `json:"phone"`
	Email          string `json:"email" binding:"omitempty,email"`
	Address        string `json:"address"`
}

// UpdateStudentRequest is the request body for updating a student.
type UpdateStudentRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	ClassroomID *string `json:"classId,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	Address     *string `json:"address,omitempty"`
	Status      *string `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}

// ListStudentsParams are the query filters for listing students.
type ListStudentsParams struct {
	ClassroomID    string `form:"classId"`
	InstitutionID  string `form:"institutionId"`
	AcademicYearID string `form:"academicYearId"`
	Search         string `form:"search"`
}

// StudentResponse is the API representation of a student.
type StudentResponse struct {
	ID             string    `json:"id"`
	NIS            string    `json:"nis"`
	Name           string    `json:"name"`
	ClassroomID    string    `json:"classId"`
	InstitutionID  string    `json:"institutionId"`
	AcademicYearID string    `json:"academicYearId"`
	Status         string    `json:"status"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	Address        string    `json:"address,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToStudentResponse maps a domain student to its API representation.
func ToStudentResponse(s *domain.Student) StudentResponse {
	return StudentResponse{
		ID:             s.StudentID,
		NIS:            s.NIS,
		Name:           s.Name,
		ClassroomID:    s.ClassroomID,
		InstitutionID:  s.InstitutionID,
		AcademicYearID: s.AcademicYearID,
		Status:         string(s.Status),
		Phone:          s.Phone,
		Email:          s.Email,
		Address:        s.Address,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.LastUpdatedAt,
	}
}

// ToStudentResponses maps a slice of domain students.
func ToStudentResponses(students []domain.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for i := range students {
		responses = append(responses, ToStudentResponse(&students[i]))
	}
	return responses
}
