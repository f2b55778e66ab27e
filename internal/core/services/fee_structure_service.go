package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sekolahpay/spp_billing_app/internal/apperrors"
	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/core/ports/repositories"
	ports "github.com/sekolahpay/spp_billing_app/internal/core/ports/services"
	"github.com/sekolahpay/spp_billing_app/internal/dto"
)

// monthlyInstallments is the number of installments in one academic year.
const monthlyInstallments = 12

type feeStructureService struct {
	*BaseService
	structureRepo   repositories.FeeStructureRepositoryFacade
	institutionRepo repositories.InstitutionRepositoryFacade
	yearRepo        repositories.AcademicYearRepositoryFacade
	excludeOptional bool
	now             func() time.Time
}

var _ ports.FeeStructureSvcFacade = (*feeStructureService)(nil)

// FeeStructureServiceOption configures the fee structure service.
type FeeStructureServiceOption func(*feeStructureService)

// WithExcludeOptionalFees switches the total policy to skip optional items.
func WithExcludeOptionalFees(exclude bool) FeeStructureServiceOption {
	return func(s *feeStructureService) { s.excludeOptional = exclude }
}

// WithFeeStructureClock overrides the service clock.
func WithFeeStructureClock(now func() time.Time) FeeStructureServiceOption {
	return func(s *feeStructureService) { s.now = now }
}

// NewFeeStructureService creates a new fee structure service.
func NewFeeStructureService(
	structureRepo repositories.FeeStructureRepositoryFacade,
	institutionRepo repositories.InstitutionRepositoryFacade,
	yearRepo repositories.AcademicYearRepositoryFacade,
	logger *slog.Logger,
	opts ...FeeStructureServiceOption,
) ports.FeeStructureSvcFacade {
	svc := &feeStructureService{
		BaseService:     NewBaseService(logger),
		structureRepo:   structureRepo,
		institutionRepo: institutionRepo,
		yearRepo:        yearRepo,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func feeItemsFromPayload(payload []dto.FeeItemPayload) ([]domain.FeeItem, error) {
	items := make([]domain.FeeItem, 0, len(payload))
	for _, p := range payload {
		if !p.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: fee item %q", apperrors.ErrInvalidAmount, p.Name)
		}
		if p.IsRecurring && p.Frequency == "" {
			return nil, fmt.Errorf("%w: recurring fee item %q needs a frequency", apperrors.ErrValidation, p.Name)
		}
		item := domain.FeeItem{
			FeeItemID:   uuid.NewString(),
			Name:        p.Name,
			Category:    domain.FeeCategory(p.Category),
			Amount:      p.Amount,
			IsRecurring: p.IsRecurring,
			IsOptional:  p.IsOptional,
		}
		if p.IsRecurring {
			item.Frequency = domain.FeeFrequency(p.Frequency)
		}
		items = append(items, item)
	}
	return items, nil
}

// buildSchedule derives the 12-installment payment schedule for an academic
// year. The first installment carries every non-monthly item plus the first
// month of each monthly item; installments 2..12 carry the monthly items only.
func buildSchedule(structure *domain.FeeStructure, yearStart time.Time, excludeOptional bool) []domain.PaymentScheduleInstallment {
	var monthlyIDs, onceIDs []string
	monthlyTotal, onceTotal := decimal.Zero, decimal.Zero

	for _, item := range structure.Fees {
		if excludeOptional && item.IsOptional {
			continue
		}
		if item.IsRecurring && item.Frequency == domain.FrequencyMonthly {
			monthlyIDs = append(monthlyIDs, item.FeeItemID)
			monthlyTotal = monthlyTotal.Add(item.Amount)
		} else {
			onceIDs = append(onceIDs, item.FeeItemID)
			onceTotal = onceTotal.Add(item.AnnualContribution())
		}
	}

	schedule := make([]domain.PaymentScheduleInstallment, 0, monthlyInstallments)
	for n := 1; n <= monthlyInstallments; n++ {
		inst := domain.PaymentScheduleInstallment{
			InstallmentID:     uuid.NewString(),
			InstallmentNumber: n,
			DueDate:           yearStart.AddDate(0, n-1, 0),
			Amount:            monthlyTotal,
			FeeItemIDs:        append([]string(nil), monthlyIDs...),
			Status:            domain.InstallmentUpcoming,
		}
		if n == 1 {
			inst.Amount = inst.Amount.Add(onceTotal)
			inst.FeeItemIDs = append(inst.FeeItemIDs, onceIDs...)
		}
		schedule = append(schedule, inst)
	}
	return schedule
}

// refreshScheduleStatuses re-derives installment statuses against now using
// the owning institution's due-window policy.
func (s *feeStructureService) refreshScheduleStatuses(ctx context.Context, structure *domain.FeeStructure) {
	dueWindowDays := defaultInstitutionSettings.PaymentDueDays
	if inst, err := s.institutionRepo.FindInstitutionByID(ctx, structure.InstitutionID); err == nil {
		dueWindowDays = inst.Settings.PaymentDueDays
	}
	now := s.now()
	for i := range structure.PaymentSchedule {
		structure.PaymentSchedule[i].Status = structure.PaymentSchedule[i].DeriveStatus(now, dueWindowDays)
	}
}

func (s *feeStructureService) CreateFeeStructure(ctx context.Context, req dto.CreateFeeStructureRequest, creatorUserID string) (*domain.FeeStructure, error) {
	if _, err := s.institutionRepo.FindInstitutionByID(ctx, req.InstitutionID); err != nil {
		return nil, fmt.Errorf("institution lookup: %w", err)
	}
	year, err := s.yearRepo.FindAcademicYearByID(ctx, req.AcademicYearID)
	if err != nil {
		return nil, fmt.Errorf("academic year lookup: %w", err)
	}

	applicableFor := domain.FeeApplicability(req.ApplicableFor)
	if applicableFor != domain.ApplicableToInstitution && req.TargetID == "" {
		return nil, fmt.Errorf("%w: targetId is required when applicability is %s", apperrors.ErrValidation, applicableFor)
	}

	fees, err := feeItemsFromPayload(req.Fees)
	if err != nil {
		return nil, err
	}

	now := s.now()
	structure := domain.FeeStructure{
		FeeStructureID: uuid.NewString(),
		Name:           req.Name,
		InstitutionID:  req.InstitutionID,
		AcademicYearID: req.AcademicYearID,
		ApplicableFor:  applicableFor,
		TargetID:       req.TargetID,
		Fees:           fees,
		Status:         domain.StatusActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	structure.TotalAmount = structure.ComputeTotal(s.excludeOptional)
	structure.PaymentSchedule = buildSchedule(&structure, year.StartDate, s.excludeOptional)
	s.refreshScheduleStatuses(ctx, &structure)

	if err := s.structureRepo.SaveFeeStructure(ctx, structure); err != nil {
		s.LogError(ctx, "failed to save fee structure", "error", err, "name", req.Name)
		return nil, err
	}

	s.LogInfo(ctx, "fee structure created",
		"fee_structure_id", structure.FeeStructureID,
		"total_amount", structure.TotalAmount.String(),
	)
	return &structure, nil
}

func (s *feeStructureService) GetFeeStructureByID(ctx context.Context, structureID string) (*domain.FeeStructure, error) {
	structure, err := s.structureRepo.FindFeeStructureByID(ctx, structureID)
	if err != nil {
		return nil, err
	}
	s.refreshScheduleStatuses(ctx, structure)
	return structure, nil
}

func (s *feeStructureService) ListFeeStructures(ctx context.Context, institutionID string) ([]domain.FeeStructure, error) {
	var structures []domain.FeeStructure
	var err error
	if institutionID != "" {
		structures, err = s.structureRepo.ListFeeStructuresByInstitution(ctx, institutionID)
	} else {
		structures, err = s.structureRepo.ListFeeStructures(ctx)
	}
	if err != nil {
		return nil, err
	}
	for i := range structures {
		s.refreshScheduleStatuses(ctx, &structures[i])
	}
	return structures, nil
}

func (s *feeStructureService) UpdateFeeStructure(ctx context.Context, structureID string, req dto.UpdateFeeStructureRequest, userID string) (*domain.FeeStructure, error) {
	structure, err := s.structureRepo.FindFeeStructureByID(ctx, structureID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		structure.Name = *req.Name
	}
	if req.Status != nil {
		structure.Status = domain.EntityStatus(*req.Status)
	}
	if req.Fees != nil {
		fees, err := feeItemsFromPayload(req.Fees)
		if err != nil {
			return nil, err
		}
		year, err := s.yearRepo.FindAcademicYearByID(ctx, structure.AcademicYearID)
		if err != nil {
			return nil, fmt.Errorf("academic year lookup: %w", err)
		}
		structure.Fees = fees
		structure.TotalAmount = structure.ComputeTotal(s.excludeOptional)
		structure.PaymentSchedule = buildSchedule(structure, year.StartDate, s.excludeOptional)
	}
	s.refreshScheduleStatuses(ctx, structure)

	structure.LastUpdatedAt = s.now()
	structure.LastUpdatedBy = userID

	if err := s.structureRepo.UpdateFeeStructure(ctx, *structure); err != nil {
		s.LogError(ctx, "failed to update fee structure", "error", err, "fee_structure_id", structureID)
		return nil, err
	}
	return structure, nil
}

func (s *feeStructureService) DeleteFeeStructure(ctx context.Context, structureID string, userID string) error {
	if _, err := s.structureRepo.FindFeeStructureByID(ctx, structureID); err != nil {
		return err
	}
	if err := s.structureRepo.DeleteFeeStructure(ctx, structureID); err != nil {
		s.LogError(ctx, "failed to delete fee structure", "error", err, "fee_structure_id", structureID)
		return err
	}
	s.LogInfo(ctx, "fee structure deleted", "fee_structure_id", structureID, "deleted_by", userID)
	return nil
}
