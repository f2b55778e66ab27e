package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sekolahpay/spp_billing_app/internal/apperrors"
	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/core/ports/repositories"
	ports "github.com/sekolahpay/spp_billing_app/internal/core/ports/services"
	"github.com/sekolahpay/spp_billing_app/internal/dto"
)

type studentService struct {
	*BaseService
	studentRepo   repositories.StudentRepositoryFacade
	classroomRepo repositories.ClassroomRepositoryFacade
	billingRepo   repositories.BillingRepositoryFacade
	now           func() time.Time
}

var _ ports.StudentSvcFacade = (*studentService)(nil)

// NewStudentService creates a new student service.
func NewStudentService(
	studentRepo repositories.StudentRepositoryFacade,
	classroomRepo repositories.ClassroomRepositoryFacade,
	billingRepo repositories.BillingRepositoryFacade,
	logger *slog.Logger,
) ports.StudentSvcFacade {
	return &studentService{
		BaseService:   NewBaseService(logger),
		studentRepo:   studentRepo,
		classroomRepo: classroomRepo,
		billingRepo:   billingRepo,
		now:           time.Now,
	}
}

func (s *studentService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest, creatorUserID string) (*domain.Student, error) {
	if existing, err := s.studentRepo.FindStudentByNIS(ctx, req.NIS); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: NIS %s already registered", apperrors.ErrDuplicate, req.NIS)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	classroom, err := s.classroomRepo.FindClassroomByID(ctx, req.ClassroomID)
	if err != nil {
		return nil, fmt.Errorf("classroom lookup: %w", err)
	}
	if classroom.InstitutionID != req.InstitutionID {
		return nil, fmt.Errorf("%w: classroom belongs to a different institution", apperrors.ErrValidation)
	}

	now := s.now()
	student := domain.Student{
		StudentID:      uuid.NewString(),
		NIS:            req.NIS,
		Name:           req.Name,
		ClassroomID:    req.ClassroomID,
		InstitutionID:  req.InstitutionID,
		AcademicYearID: req.AcademicYearID,
		Status:         domain.StatusActive,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.studentRepo.SaveStudent(ctx, student); err != nil {
		s.LogError(ctx, "failed to save student", "error", err, "nis", req.NIS)
		return nil, err
	}

	s.LogInfo(ctx, "student enrolled", "student_id", student.StudentID, "nis", student.NIS)
	return &student, nil
}

func (s *studentService) GetStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	return s.studentRepo.FindStudentByID(ctx, studentID)
}

func (s *studentService) ListStudents(ctx context.Context, params dto.ListStudentsParams) ([]domain.Student, error) {
	students, err := s.studentRepo.ListStudents(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Student, 0, len(students))
	search := strings.ToLower(strings.TrimSpace(params.Search))
	for _, st := range students {
		if params.ClassroomID != "" && st.ClassroomID != params.ClassroomID {
			continue
		}
		if params.InstitutionID != "" && st.InstitutionID != params.InstitutionID {
			continue
		}
		if params.AcademicYearID != "" && st.AcademicYearID != params.AcademicYearID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(st.Name), search) &&
			!strings.Contains(strings.ToLower(st.NIS), search) {
			continue
		}
		filtered = append(filtered, st)
	}
	return filtered, nil
}

func (s *studentService) UpdateStudent(ctx context.Context, studentID string, req dto.UpdateStudentRequest, userID string) (*domain.Student, error) {
	student, err := s.studentRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.ClassroomID != nil {
		if _, err := s.classroomRepo.FindClassroomByID(ctx, *req.ClassroomID); err != nil {
			return nil, fmt.Errorf("classroom lookup: %w", err)
		}
		student.ClassroomID = *req.ClassroomID
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if req.Status != nil {
		student.Status = domain.EntityStatus(*req.Status)
	}

	student.LastUpdatedAt = s.now()
	student.LastUpdatedBy = userID

	if err := s.studentRepo.UpdateStudent(ctx, *student); err != nil {
		s.LogError(ctx, "failed to update student", "error", err, "student_id", studentID)
		return nil, err
	}
	return student, nil
}

func (s *studentService) DeleteStudent(ctx context.Context, studentID string, userID string) error {
	student, err := s.studentRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		return err
	}

	// Once a billing record references the student their financial history
	// must survive, so deactivate instead of deleting.
	billing, err := s.billingRepo.FindBillingByStudentAndYear(ctx, studentID, student.AcademicYearID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if billing != nil {
		student.Status = domain.StatusInactive
		student.LastUpdatedAt = s.now()
		student.LastUpdatedBy = userID
		if err := s.studentRepo.UpdateStudent(ctx, *student); err != nil {
			return err
		}
		s.LogInfo(ctx, "student deactivated instead of deleted", "student_id", studentID, "deactivated_by", userID)
		return nil
	}

	if err := s.studentRepo.DeleteStudent(ctx, studentID); err != nil {
		s.LogError(ctx, "failed to delete student", "error", err, "student_id", studentID)
		return err
	}
	s.LogInfo(ctx, "student deleted", "student_id", studentID, "deleted_by", userID)
	return nil
}
