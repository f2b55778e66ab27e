package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sekolahpay/spp_billing_app/internal/apperrors"
	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/core/ports/repositories"
	ports "github.com/sekolahpay/spp_billing_app/internal/core/ports/services"
	"github.com/sekolahpay/spp_billing_app/internal/dto"
)

type classroomService struct {
	*BaseService
	classroomRepo   repositories.ClassroomRepositoryFacade
	institutionRepo repositories.InstitutionRepositoryFacade
	yearRepo        repositories.AcademicYearRepositoryFacade
	studentRepo     repositories.StudentRepositoryFacade
	now             func() time.Time
}

var _ ports.ClassroomSvcFacade = (*classroomService)(nil)

// NewClassroomService creates a new classroom service.
func NewClassroomService(
	classroomRepo repositories.ClassroomRepositoryFacade,
	institutionRepo repositories.InstitutionRepositoryFacade,
	yearRepo repositories.AcademicYearRepositoryFacade,
	studentRepo repositories.StudentRepositoryFacade,
	logger *slog.Logger,
) ports.ClassroomSvcFacade {
	return &classroomService{
		BaseService:     NewBaseService(logger),
		classroomRepo:   classroomRepo,
		institutionRepo: institutionRepo,
		yearRepo:        yearRepo,
		studentRepo:     studentRepo,
		now:             time.Now,
	}
}

func (s *classroomService) CreateClassroom(ctx context.Context, req dto.CreateClassroomRequest, creatorUserID string) (*domain.Classroom, error) {
	if _, err := s.institutionRepo.FindInstitutionByID(ctx, req.InstitutionID); err != nil {
		return nil, fmt.Errorf("institution lookup: %w", err)
	}
	if _, err := s.yearRepo.FindAcademicYearByID(ctx, req.AcademicYearID); err != nil {
		return nil, fmt.Errorf("academic year lookup: %w", err)
	}

	now := s.now()
	classroom := domain.Classroom{
		ClassroomID:    uuid.NewString(),
		Name:           req.Name,
		Code:           req.Code,
		InstitutionID:  req.InstitutionID,
		AcademicYearID: req.AcademicYearID,
		Level:          req.Level,
		Section:        req.Section,
		Capacity:       req.Capacity,
		ClassTeacherID: req.ClassTeacherID,
		FeeStructureID: req.FeeStructureID,
		Status:         domain.StatusActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.classroomRepo.SaveClassroom(ctx, classroom); err != nil {
		s.LogError(ctx, "failed to save classroom", "error", err, "code", req.Code)
		return nil, err
	}

	s.LogInfo(ctx, "classroom created", "classroom_id", classroom.ClassroomID, "name", classroom.Name)
	return &classroom, nil
}

func (s *classroomService) GetClassroomByID(ctx context.Context, classroomID string) (*domain.Classroom, error) {
	classroom, err := s.classroomRepo.FindClassroomByID(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshStrength(ctx, classroom); err != nil {
		return nil, err
	}
	return classroom, nil
}

func (s *classroomService) ListClassrooms(ctx context.Context, institutionID string) ([]domain.Classroom, error) {
	var classrooms []domain.Classroom
	var err error
	if institutionID != "" {
		classrooms, err = s.classroomRepo.ListClassroomsByInstitution(ctx, institutionID)
	} else {
		classrooms, err = s.classroomRepo.ListClassrooms(ctx)
	}
	if err != nil {
		return nil, err
	}
	for i := range classrooms {
		if err := s.refreshStrength(ctx, &classrooms[i]); err != nil {
			return nil, err
		}
	}
	return classrooms, nil
}

// refreshStrength derives current enrollment from the student roster.
func (s *classroomService) refreshStrength(ctx context.Context, classroom *domain.Classroom) error {
	students, err := s.studentRepo.ListStudentsByClassroom(ctx, classroom.ClassroomID)
	if err != nil {
		return err
	}
	active := 0
	for i := range students {
		if students[i].Status == domain.StatusActive {
			active++
		}
	}
	classroom.CurrentStrength = active
	return nil
}

func (s *classroomService) UpdateClassroom(ctx context.Context, classroomID string, req dto.UpdateClassroomRequest, userID string) (*domain.Classroom, error) {
	classroom, err := s.classroomRepo.FindClassroomByID(ctx, classroomID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		classroom.Name = *req.Name
	}
	if req.Level != nil {
		classroom.Level = *req.Level
	}
	if req.Section != nil {
		classroom.Section = *req.Section
	}
	if req.Capacity != nil {
		classroom.Capacity = *req.Capacity
	}
	if req.ClassTeacherID != nil {
		classroom.ClassTeacherID = *req.ClassTeacherID
	}
	if req.FeeStructureID != nil {
		classroom.FeeStructureID = *req.FeeStructureID
	}
	if req.Status != nil {
		classroom.Status = domain.EntityStatus(*req.Status)
	}

	classroom.LastUpdatedAt = s.now()
	classroom.LastUpdatedBy = userID

	if err := s.classroomRepo.UpdateClassroom(ctx, *classroom); err != nil {
		s.LogError(ctx, "failed to update classroom", "error", err, "classroom_id", classroomID)
		return nil, err
	}
	if err := s.refreshStrength(ctx, classroom); err != nil {
		return nil, err
	}
	return classroom, nil
}

func (s *classroomService) DeleteClassroom(ctx context.Context, classroomID string, userID string) error {
	if _, err := s.classroomRepo.FindClassroomByID(ctx, classroomID); err != nil {
		return err
	}

	students, err := s.studentRepo.ListStudentsByClassroom(ctx, classroomID)
	if err != nil {
		return err
	}
	if len(students) > 0 {
		return fmt.Errorf("%w: %d students enrolled in classroom %s", apperrors.ErrConflict, len(students), classroomID)
	}

	if err := s.classroomRepo.DeleteClassroom(ctx, classroomID); err != nil {
		s.LogError(ctx, "failed to delete classroom", "error", err, "classroom_id", classroomID)
		return err
	}
	s.LogInfo(ctx, "classroom deleted", "classroom_id", classroomID, "deleted_by", userID)
	return nil
}
