package services

import (
	"context"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/dto"
)

// StudentSvcFacade defines operations for managing students.
type StudentSvcFacade interface {
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest, creatorUserID string) (*domain.Student, error)
	GetStudentByID(ctx context.Context, studentID string) (*domain.Student, error)
	ListStudents(ctx context.Context, params dto.ListStudentsParams) ([]domain.Student, error)
	UpdateStudent(ctx context.Context, studentID string, req dto.UpdateStudentRequest, userID string) (*domain.Student, error)

	// DeleteStudent removes a student, or deactivates them instead when a
	// billing record already references them (financial history must survive).
	DeleteStudent(ctx context.Context, studentID string, userID string) error
}
