package services

import (
	"context"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/dto"
)

// ClassroomSvcFacade defines operations for managing classrooms.
type ClassroomSvcFacade interface {
	CreateClassroom(ctx context.Context, req dto.CreateClassroomRequest, creatorUserID string) (*domain.Classroom, error)
	GetClassroomByID(ctx context.Context, classroomID string) (*domain.Classroom, error)
	ListClassrooms(ctx context.Context, institutionID string) ([]domain.Classroom, error)
	UpdateClassroom(ctx context.Context, classroomID string, req dto.UpdateClassroomRequest, userID string) (*domain.Classroom, error)
	DeleteClassroom(ctx context.Context, classroomID string, userID string) error
}
