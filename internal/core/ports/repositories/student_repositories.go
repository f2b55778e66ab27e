package repositories

import (
	"context"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
)

// StudentRepositoryFacade defines persistence operations for students.
type StudentRepositoryFacade interface {
	SaveStudent(ctx context.Context, student domain.Student) error
	FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error)
	FindStudentByNIS(ctx context.Context, nis string) (*domain.Student, error)
	ListStudents(ctx context.Context) ([]domain.Student, error)
	ListStudentsByClassroom(ctx context.Context, classroomID string) ([]domain.Student, error)
	UpdateStudent(ctx context.Context, student domain.Student) error
	DeleteStudent(ctx context.Context, studentID string) error
}
