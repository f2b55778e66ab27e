package services

import (
	"context"
	"errors"
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

type billingService struct {
	*BaseService
	billingRepo     repositories.BillingRepositoryFacade
	studentRepo     repositories.StudentRepositoryFacade
	structureRepo   repositories.FeeStructureRepositoryFacade
	institutionRepo repositories.InstitutionRepositoryFacade
	now             func() time.Time
}

var _ ports.BillingSvcFacade = (*billingService)(nil)

// BillingServiceOption configures the billing service.
type BillingServiceOption func(*billingService)

// WithBillingClock overrides the service clock.
func WithBillingClock(now func() time.Time) BillingServiceOption {
	return func(s *billingService) { s.now = now }
}

// NewBillingService creates a new billing service.
func NewBillingService(
	billingRepo repositories.BillingRepositoryFacade,
	studentRepo repositories.StudentRepositoryFacade,
	structureRepo repositories.FeeStructureRepositoryFacade,
	institutionRepo repositories.InstitutionRepositoryFacade,
	logger *slog.Logger,
	opts ...BillingServiceOption,
) ports.BillingSvcFacade {
	svc := &billingService{
		BaseService:     NewBaseService(logger),
		billingRepo:     billingRepo,
		studentRepo:     studentRepo,
		structureRepo:   structureRepo,
		institutionRepo: institutionRepo,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// graceDays returns the institution's payment grace period, falling back to
// the default policy when the institution is unknown.
func (s *billingService) graceDays(ctx context.Context, institutionID string) int {
	if inst, err := s.institutionRepo.FindInstitutionByID(ctx, institutionID); err == nil {
		return inst.Settings.PaymentDueDays
	}
	return defaultInstitutionSettings.PaymentDueDays
}

func (s *billingService) CreateBilling(ctx context.Context, req dto.CreateBillingRequest, creatorUserID string) (*domain.StudentBilling, error) {
	student, err := s.studentRepo.FindStudentByID(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("student lookup: %w", err)
	}

	structure, err := s.structureRepo.FindFeeStructureByID(ctx, req.FeeStructureID)
	if err != nil {
		return nil, fmt.Errorf("fee structure lookup: %w", err)
	}
	if structure.AcademicYearID != req.AcademicYearID {
		return nil, fmt.Errorf("%w: fee structure belongs to a different academic year", apperrors.ErrValidation)
	}

	if existing, err := s.billingRepo.FindBillingByStudentAndYear(ctx, req.StudentID, req.AcademicYearID); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: billing record already exists for student %s in year %s",
			apperrors.ErrDuplicate, req.StudentID, req.AcademicYearID)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := s.now()
	billing := domain.StudentBilling{
		StudentBillingID: uuid.NewString(),
		StudentID:        student.StudentID,
		InstitutionID:    student.InstitutionID,
		AcademicYearID:   req.AcademicYearID,
		ClassroomID:      student.ClassroomID,
		FeeStructureID:   structure.FeeStructureID,
		TotalFees:        structure.TotalAmount,
		PaidAmount:       decimal.Zero,
		DiscountAmount:   decimal.Zero,
		LateFeeAmount:    decimal.Zero,
		PaymentHistory:   []domain.Payment{},
		SpecialNotes:     req.SpecialNotes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	billing.RecalculateOutstanding()
	if len(structure.PaymentSchedule) > 0 {
		billing.NextDueDate = structure.PaymentSchedule[0].DueDate
	} else {
		billing.NextDueDate = now
	}
	billing.Status = billing.DeriveStatus(now, s.graceDays(ctx, billing.InstitutionID))

	if err := s.billingRepo.SaveBilling(ctx, billing); err != nil {
		s.LogError(ctx, "failed to save billing record", "error", err, "student_id", req.StudentID)
		return nil, err
	}

	s.LogInfo(ctx, "billing record created",
		"billing_id", billing.StudentBillingID,
		"student_id", billing.StudentID,
		"total_fees", billing.TotalFees.String(),
	)
	return &billing, nil
}

func (s *billingService) GetBillingByID(ctx context.Context, billingID string) (*domain.StudentBilling, error) {
	return s.billingRepo.FindBillingByID(ctx, billingID)
}

func (s *billingService) GetBillingByStudent(ctx context.Context, studentID, academicYearID string) (*domain.StudentBilling, error) {
	return s.billingRepo.FindBillingByStudentAndYear(ctx, studentID, academicYearID)
}

func (s *billingService) ListBillings(ctx context.Context) ([]domain.StudentBilling, error) {
	return s.billingRepo.ListBillings(ctx)
}

// advanceNextDueDate moves the due date to the earliest installment whose
// cumulative scheduled amount is not yet covered by payments and discounts.
func advanceNextDueDate(b *domain.StudentBilling, schedule []domain.PaymentScheduleInstallment) {
	if len(schedule) == 0 {
		return
	}
	covered := b.PaidAmount.Add(b.DiscountAmount)
	cumulative := decimal.Zero
	for _, inst := range schedule {
		cumulative = cumulative.Add(inst.Amount)
		if covered.LessThan(cumulative) {
			b.NextDueDate = inst.DueDate
			return
		}
	}
	b.NextDueDate = schedule[len(schedule)-1].DueDate
}

func (s *billingService) ApplyPayment(ctx context.Context, billingID string, req dto.ApplyPaymentRequest, processedByUserID string) (*domain.StudentBilling, *domain.Payment, error) {
	if !req.Amount.IsPositive() {
		return nil, nil, apperrors.ErrInvalidAmount
	}

	existing, err := s.billingRepo.FindBillingByID(ctx, billingID)
	if err != nil {
		return nil, nil, err
	}

	// Fetched outside the mutation; schedule and policy are stable data.
	var schedule []domain.PaymentScheduleInstallment
	if structure, err := s.structureRepo.FindFeeStructureByID(ctx, existing.FeeStructureID); err == nil {
		schedule = structure.PaymentSchedule
	}
	grace := s.graceDays(ctx, existing.InstitutionID)

	receiptNumber, err := s.billingRepo.NextReceiptNumber(ctx)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	billing, payment, err := s.billingRepo.RecordPayment(ctx, billingID, func(b *domain.StudentBilling) (domain.Payment, error) {
		if req.Amount.GreaterThan(b.OutstandingAmount) {
			return domain.Payment{}, fmt.Errorf("%w: amount %s, outstanding %s",
				apperrors.ErrOverpayment, req.Amount.String(), b.OutstandingAmount.String())
		}

		payment := domain.Payment{
			PaymentID:        uuid.NewString(),
			StudentBillingID: b.StudentBillingID,
			StudentID:        b.StudentID,
			Amount:           req.Amount,
			Method:           domain.PaymentMethod(req.Method),
			PaymentDate:      paymentDate,
			ReceiptNumber:    receiptNumber,
			FeeItemIDs:       req.FeeItemIDs,
			ProcessedBy:      processedByUserID,
			Status:           domain.PaymentCompleted,
			Notes:            req.Notes,
			CreatedAt:        now,
		}

		b.PaidAmount = b.PaidAmount.Add(req.Amount)
		b.RecalculateOutstanding()
		advanceNextDueDate(b, schedule)
		b.Status = b.DeriveStatus(now, grace)
		b.LastUpdatedAt = now
		b.LastUpdatedBy = processedByUserID
		return payment, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrOverpayment) {
			s.LogWarn(ctx, "overpayment rejected", "billing_id", billingID, "amount", req.Amount.String())
		} else {
			s.LogError(ctx, "failed to record payment", "error", err, "billing_id", billingID)
		}
		return nil, nil, err
	}

	s.LogInfo(ctx, "payment recorded",
		"billing_id", billingID,
		"payment_id", payment.PaymentID,
		"receipt_number", payment.ReceiptNumber,
		"amount", payment.Amount.String(),
	)
	return billing, payment, nil
}

func (s *billingService) ApplyDiscount(ctx context.Context, billingID string, req dto.ApplyDiscountRequest, userID string) (*domain.StudentBilling, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	existing, err := s.billingRepo.FindBillingByID(ctx, billingID)
	if err != nil {
		return nil, err
	}
	grace := s.graceDays(ctx, existing.InstitutionID)
	now := s.now()

	billing, err := s.billingRepo.UpdateBilling(ctx, billingID, func(b *domain.StudentBilling) error {
		if req.Amount.GreaterThan(b.OutstandingAmount) {
			return fmt.Errorf("%w: discount %s exceeds outstanding %s",
				apperrors.ErrValidation, req.Amount.String(), b.OutstandingAmount.String())
		}
		b.DiscountAmount = b.DiscountAmount.Add(req.Amount)
		b.RecalculateOutstanding()
		b.Status = b.DeriveStatus(now, grace)
		if b.SpecialNotes != "" {
			b.SpecialNotes += "; "
		}
		b.SpecialNotes += "discount: " + req.Reason
		b.LastUpdatedAt = now
		b.LastUpdatedBy = userID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "discount applied", "billing_id", billingID, "amount", req.Amount.String(), "reason", req.Reason)
	return billing, nil
}

func (s *billingService) AssessLateFee(ctx context.Context, billingID string, userID string) (*domain.StudentBilling, error) {
	existing, err := s.billingRepo.FindBillingByID(ctx, billingID)
	if err != nil {
		return nil, err
	}

	institution, err := s.institutionRepo.FindInstitutionByID(ctx, existing.InstitutionID)
	if err != nil {
		return nil, fmt.Errorf("institution lookup: %w", err)
	}
	percentage := decimal.NewFromInt(int64(institution.Settings.LateFeePercentage))
	grace := institution.Settings.PaymentDueDays
	now := s.now()

	billing, err := s.billingRepo.UpdateBilling(ctx, billingID, func(b *domain.StudentBilling) error {
		if b.OutstandingAmount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: nothing outstanding on billing %s", apperrors.ErrConflict, billingID)
		}
		if !now.After(b.NextDueDate) {
			return fmt.Errorf("%w: billing %s is not overdue", apperrors.ErrConflict, billingID)
		}
		if b.LateFeeAssessedAt != nil && b.LateFeeAssessedAt.Equal(b.NextDueDate) {
			return fmt.Errorf("%w: late fee already assessed for due date %s",
				apperrors.ErrConflict, b.NextDueDate.Format(time.DateOnly))
		}

		fee := b.OutstandingAmount.Mul(percentage).Div(decimal.NewFromInt(100)).Round(0)
		b.LateFeeAmount = b.LateFeeAmount.Add(fee)
		b.RecalculateOutstanding()
		dueDate := b.NextDueDate
		b.LateFeeAssessedAt = &dueDate
		b.Status = b.DeriveStatus(now, grace)
		b.LastUpdatedAt = now
		b.LastUpdatedBy = userID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "late fee assessed",
		"billing_id", billingID,
		"late_fee_total", billing.LateFeeAmount.String(),
		"assessed_by", userID,
	)
	return billing, nil
}

func (s *billingService) RefreshStatuses(ctx context.Context, userID string) (int, error) {
	billings, err := s.billingRepo.ListBillings(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	graceByInstitution := make(map[string]int)
	changed := 0

	for i := range billings {
		grace, ok := graceByInstitution[billings[i].InstitutionID]
		if !ok {
			grace = s.graceDays(ctx, billings[i].InstitutionID)
			graceByInstitution[billings[i].InstitutionID] = grace
		}

		derived := billings[i].DeriveStatus(now, grace)
		if derived == billings[i].Status {
			continue
		}

		_, err := s.billingRepo.UpdateBilling(ctx, billings[i].StudentBillingID, func(b *domain.StudentBilling) error {
			b.Status = b.DeriveStatus(now, grace)
			b.LastUpdatedAt = now
			b.LastUpdatedBy = userID
			return nil
		})
		if err != nil {
			return changed, err
		}
		changed++
	}

	if changed > 0 {
		s.LogInfo(ctx, "billing statuses refreshed", "changed", changed, "refreshed_by", userID)
	}
	return changed, nil
}
