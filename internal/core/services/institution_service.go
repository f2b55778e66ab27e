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

// Billing policy applied when an institution is registered without settings.
var defaultInstitutionSettings = domain.InstitutionSettings{
	Currency:            "IDR",
	Timezone:            "Asia/Jakarta",
	AcademicYearStart:   7,
	PaymentDueDays:      10,
	LateFeePercentage:   5,
	EnableAutoReminders: true,
}

type institutionService struct {
	*BaseService
	institutionRepo repositories.InstitutionRepositoryFacade
	classroomRepo   repositories.ClassroomRepositoryFacade
	now             func() time.Time
}

var _ ports.InstitutionSvcFacade = (*institutionService)(nil)

// NewInstitutionService creates a new institution service.
func NewInstitutionService(
	institutionRepo repositories.InstitutionRepositoryFacade,
	classroomRepo repositories.ClassroomRepositoryFacade,
	logger *slog.Logger,
) ports.InstitutionSvcFacade {
	return &institutionService{
		BaseService:     NewBaseService(logger),
		institutionRepo: institutionRepo,
		classroomRepo:   classroomRepo,
		now:             time.Now,
	}
}

func settingsFromPayload(p *dto.InstitutionSettingsPayload) domain.InstitutionSettings {
	settings := defaultInstitutionSettings
	if p == nil {
		return settings
	}
	if p.Currency != "" {
		settings.Currency = p.Currency
	}
	if p.Timezone != "" {
		settings.Timezone = p.Timezone
	}
	if p.AcademicYearStart != 0 {
		settings.AcademicYearStart = p.AcademicYearStart
	}
	if p.PaymentDueDays != 0 {
		settings.PaymentDueDays = p.PaymentDueDays
	}
	if p.LateFeePercentage != 0 {
		settings.LateFeePercentage = p.LateFeePercentage
	}
	settings.EnableAutoReminders = p.EnableAutoReminders
	return settings
}

func (s *institutionService) CreateInstitution(ctx context.Context, req dto.CreateInstitutionRequest, creatorUserID string) (*domain.Institution, error) {
	now := s.now()
	institution := domain.Institution{
		InstitutionID:   uuid.NewString(),
		Name:            req.Name,
		Code:            req.Code,
		Address:         req.Address,
		Phone:           req.Phone,
		Email:           req.Email,
		PrincipalName:   req.PrincipalName,
		EstablishedYear: req.EstablishedYear,
		Status:          domain.StatusActive,
		Settings:        settingsFromPayload(req.Settings),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.institutionRepo.SaveInstitution(ctx, institution); err != nil {
		s.LogError(ctx, "failed to save institution", "error", err, "code", req.Code)
		return nil, err
	}

	s.LogInfo(ctx, "institution created", "institution_id", institution.InstitutionID, "code", institution.Code)
	return &institution, nil
}

func (s *institutionService) GetInstitutionByID(ctx context.Context, institutionID string) (*domain.Institution, error) {
	return s.institutionRepo.FindInstitutionByID(ctx, institutionID)
}

func (s *institutionService) ListInstitutions(ctx context.Context) ([]domain.Institution, error) {
	return s.institutionRepo.ListInstitutions(ctx)
}

func (s *institutionService) UpdateInstitution(ctx context.Context, institutionID string, req dto.UpdateInstitutionRequest, userID string) (*domain.Institution, error) {
	institution, err := s.institutionRepo.FindInstitutionByID(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		institution.Name = *req.Name
	}
	if req.Address != nil {
		institution.Address = *req.Address
	}
	if req.Phone != nil {
		institution.Phone = *req.Phone
	}
	if req.Email != nil {
		institution.Email = *req.Email
	}
	if req.PrincipalName != nil {
		institution.PrincipalName = *req.PrincipalName
	}
	if req.EstablishedYear != nil {
		institution.EstablishedYear = *req.EstablishedYear
	}
	if req.Status != nil {
		institution.Status = domain.EntityStatus(*req.Status)
	}
	if req.Settings != nil {
		institution.Settings = settingsFromPayload(req.Settings)
	}

	institution.LastUpdatedAt = s.now()
	institution.LastUpdatedBy = userID

	if err := s.institutionRepo.UpdateInstitution(ctx, *institution); err != nil {
		s.LogError(ctx, "failed to update institution", "error", err, "institution_id", institutionID)
		return nil, err
	}
	return institution, nil
}

func (s *institutionService) DeleteInstitution(ctx context.Context, institutionID string, userID string) error {
	if _, err := s.institutionRepo.FindInstitutionByID(ctx, institutionID); err != nil {
		return err
	}

	classrooms, err := s.classroomRepo.ListClassroomsByInstitution(ctx, institutionID)
	if err != nil {
		return err
	}
	if len(classrooms) > 0 {
		return fmt.Errorf("%w: %d classrooms reference institution %s", apperrors.ErrConflict, len(classrooms), institutionID)
	}

	if err := s.institutionRepo.DeleteInstitution(ctx, institutionID); err != nil {
		s.LogError(ctx, "failed to delete institution", "error", err, "institution_id", institutionID)
		return err
	}
	s.LogInfo(ctx, "institution deleted", "institution_id", institutionID, "deleted_by", userID)
	return nil
}
