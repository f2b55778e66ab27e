package repositories

import (
	"context"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
)

// ClassroomRepositoryFacade defines persistence operations for classrooms.
type ClassroomRepositoryFacade interface {
	SaveClassroom(ctx context.Context, classroom domain.Classroom) error
	FindClassroomByID(ctx context.Context, classroomID string) (*domain.Classroom, error)
	ListClassrooms(ctx context.Context) ([]domain.Classroom, error)
	ListClassroomsByInstitution(ctx context.Context, institutionID string) ([]domain.Classroom, error)
	UpdateClassroom(ctx context.Context, classroom domain.Classroom) error
	DeleteClassroom(ctx context.Context, classroomID string) error
}
