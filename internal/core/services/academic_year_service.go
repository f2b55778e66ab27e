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

type academicYearService struct {
	*BaseService
	yearRepo    repositories.AcademicYearRepositoryFacade
	billingRepo repositories.BillingRepositoryFacade
	now         func() time.Time
}

var _ ports.AcademicYearSvcFacade = (*academicYearService)(nil)

// AcademicYearServiceOption configures the academic year service.
type AcademicYearServiceOption func(*academicYearService)

// WithAcademicYearClock overrides the service clock.
func WithAcademicYearClock(now func() time.Time) AcademicYearServiceOption {
	return func(s *academicYearService) { s.now = now }
}

// NewAcademicYearService creates a new academic year service.
func NewAcademicYearService(
	yearRepo repositories.AcademicYearRepositoryFacade,
	billingRepo repositories.BillingRepositoryFacade,
	logger *slog.Logger,
	opts ...AcademicYearServiceOption,
) ports.AcademicYearSvcFacade {
	svc := &academicYearService{
		BaseService: NewBaseService(logger),
		yearRepo:    yearRepo,
		billingRepo: billingRepo,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *academicYearService) CreateAcademicYear(ctx context.Context, req dto.CreateAcademicYearRequest, creatorUserID string) (*domain.AcademicYear, error) {
	if !req.StartDate.Before(req.EndDate) {
		return nil, fmt.Errorf("%w: start date must be before end date", apperrors.ErrValidation)
	}

	now := s.now()
	status := domain.YearInactive
	if req.StartDate.After(now) {
		status = domain.YearUpcoming
	}

	year := domain.AcademicYear{
		AcademicYearID: uuid.NewString(),
		Name:           req.Name,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Status:         status,
		IsDefault:      req.IsDefault,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.yearRepo.SaveAcademicYear(ctx, year); err != nil {
		s.LogError(ctx, "failed to save academic year", "error", err, "name", req.Name)
		return nil, err
	}

	s.LogInfo(ctx, "academic year created", "academic_year_id", year.AcademicYearID, "name", year.Name)
	return &year, nil
}

func (s *academicYearService) GetAcademicYearByID(ctx context.Context, yearID string) (*domain.AcademicYear, error) {
	return s.yearRepo.FindAcademicYearByID(ctx, yearID)
}

func (s *academicYearService) ListAcademicYears(ctx context.Context) ([]domain.AcademicYear, error) {
	return s.yearRepo.ListAcademicYears(ctx)
}

func (s *academicYearService) UpdateAcademicYear(ctx context.Context, yearID string, req dto.UpdateAcademicYearRequest, userID string) (*domain.AcademicYear, error) {
	year, err := s.yearRepo.FindAcademicYearByID(ctx, yearID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		year.Name = *req.Name
	}
	if req.StartDate != nil {
		year.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		year.EndDate = *req.EndDate
	}
	if req.IsDefault != nil {
		year.IsDefault = *req.IsDefault
	}
	if !year.StartDate.Before(year.EndDate) {
		return nil, fmt.Errorf("%w: start date must be before end date", apperrors.ErrValidation)
	}

	year.LastUpdatedAt = s.now()
	year.LastUpdatedBy = userID

	if err := s.yearRepo.UpdateAcademicYear(ctx, *year); err != nil {
		s.LogError(ctx, "failed to update academic year", "error", err, "academic_year_id", yearID)
		return nil, err
	}
	return year, nil
}

func (s *academicYearService) DeleteAcademicYear(ctx context.Context, yearID string, userID string) error {
	if _, err := s.yearRepo.FindAcademicYearByID(ctx, yearID); err != nil {
		return err
	}

	count, err := s.billingRepo.CountBillingsByAcademicYear(ctx, yearID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d billing records reference academic year %s", apperrors.ErrConflict, count, yearID)
	}

	if err := s.yearRepo.DeleteAcademicYear(ctx, yearID); err != nil {
		s.LogError(ctx, "failed to delete academic year", "error", err, "academic_year_id", yearID)
		return err
	}
	s.LogInfo(ctx, "academic year deleted", "academic_year_id", yearID, "deleted_by", userID)
	return nil
}

func (s *academicYearService) ActivateAcademicYear(ctx context.Context, yearID string, userID string) (*domain.AcademicYear, error) {
	if _, err := s.yearRepo.FindAcademicYearByID(ctx, yearID); err != nil {
		return nil, err
	}

	if err := s.yearRepo.ActivateAcademicYear(ctx, yearID, userID, s.now()); err != nil {
		s.LogError(ctx, "failed to activate academic year", "error", err, "academic_year_id", yearID)
		return nil, err
	}

	s.LogInfo(ctx, "academic year activated", "academic_year_id", yearID, "activated_by", userID)
	return s.yearRepo.FindAcademicYearByID(ctx, yearID)
}

func (s *academicYearService) CurrentAcademicYear(ctx context.Context) (*domain.AcademicYear, error) {
	years, err := s.yearRepo.ListAcademicYears(ctx)
	if err != nil {
		return nil, err
	}
	for i := range years {
		if years[i].Status == domain.YearActive {
			return &years[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no active academic year", apperrors.ErrNotFound)
}
