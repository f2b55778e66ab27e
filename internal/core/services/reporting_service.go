package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/core/ports/repositories"
	ports "github.com/sekolahpay/spp_billing_app/internal/core/ports/services"
	"github.com/sekolahpay/spp_billing_app/internal/utils"
)

type reportingService struct {
	*BaseService
	billingRepo     repositories.BillingRepositoryFacade
	studentRepo     repositories.StudentRepositoryFacade
	institutionRepo repositories.InstitutionRepositoryFacade
	now             func() time.Time
}

var _ ports.ReportingSvcFacade = (*reportingService)(nil)

// ReportingServiceOption configures the reporting service.
type ReportingServiceOption func(*reportingService)

// WithReportingClock overrides the service clock.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) { s.now = now }
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	billingRepo repositories.BillingRepositoryFacade,
	studentRepo repositories.StudentRepositoryFacade,
	institutionRepo repositories.InstitutionRepositoryFacade,
	logger *slog.Logger,
	opts ...ReportingServiceOption,
) ports.ReportingSvcFacade {
	svc := &reportingService{
		BaseService:     NewBaseService(logger),
		billingRepo:     billingRepo,
		studentRepo:     studentRepo,
		institutionRepo: institutionRepo,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// effectiveStatus derives the billing status on the fly so report figures
// are current even between refresh runs. Reports never mutate state.
func (s *reportingService) effectiveStatus(ctx context.Context, b *domain.StudentBilling, graceByInstitution map[string]int) domain.BillingStatus {
	grace, ok := graceByInstitution[b.InstitutionID]
	if !ok {
		grace = defaultInstitutionSettings.PaymentDueDays
		if inst, err := s.institutionRepo.FindInstitutionByID(ctx, b.InstitutionID); err == nil {
			grace = inst.Settings.PaymentDueDays
		}
		graceByInstitution[b.InstitutionID] = grace
	}
	return b.DeriveStatus(s.now(), grace)
}

// summarize aggregates every billing record that matches the cohort filter.
// An empty cohort yields all-zero figures, never a division by zero.
func (s *reportingService) summarize(ctx context.Context, match func(*domain.StudentBilling) bool) (*domain.CollectionSummary, error) {
	billings, err := s.billingRepo.ListBillings(ctx)
	if err != nil {
		return nil, err
	}

	summary := &domain.CollectionSummary{
		TotalFees:        decimal.Zero,
		TotalCollected:   decimal.Zero,
		TotalOutstanding: decimal.Zero,
		CollectionRate:   decimal.Zero,
	}
	graceByInstitution := make(map[string]int)

	for i := range billings {
		b := &billings[i]
		if !match(b) {
			continue
		}
		summary.TotalStudents++
		summary.TotalFees = summary.TotalFees.Add(b.TotalFees)
		summary.TotalCollected = summary.TotalCollected.Add(b.PaidAmount)
		summary.TotalOutstanding = summary.TotalOutstanding.Add(b.OutstandingAmount)
		summary.TotalPayments += len(b.PaymentHistory)

		switch s.effectiveStatus(ctx, b, graceByInstitution) {
		case domain.BillingOverdue, domain.BillingDefaulter:
			summary.OverdueCount++
		}
	}

	if summary.TotalFees.IsPositive() {
		summary.CollectionRate = summary.TotalCollected.
			Mul(decimal.NewFromInt(100)).
			Div(summary.TotalFees).
			Round(2)
	}
	return summary, nil
}

func (s *reportingService) AcademicYearReport(ctx context.Context, academicYearID string) (*domain.CollectionSummary, error) {
	return s.summarize(ctx, func(b *domain.StudentBilling) bool {
		return b.AcademicYearID == academicYearID
	})
}

func (s *reportingService) InstitutionReport(ctx context.Context, institutionID string) (*domain.CollectionSummary, error) {
	return s.summarize(ctx, func(b *domain.StudentBilling) bool {
		return b.InstitutionID == institutionID
	})
}

func (s *reportingService) ClassReport(ctx context.Context, classroomID string) (*domain.CollectionSummary, error) {
	return s.summarize(ctx, func(b *domain.StudentBilling) bool {
		return b.ClassroomID == classroomID
	})
}

func (s *reportingService) DefaultersList(ctx context.Context, institutionID string) ([]domain.StudentBilling, error) {
	billings, err := s.billingRepo.ListBillings(ctx)
	if err != nil {
		return nil, err
	}

	graceByInstitution := make(map[string]int)
	defaulters := make([]domain.StudentBilling, 0)
	for i := range billings {
		b := &billings[i]
		if institutionID != "" && b.InstitutionID != institutionID {
			continue
		}
		switch s.effectiveStatus(ctx, b, graceByInstitution) {
		case domain.BillingOverdue, domain.BillingDefaulter:
			defaulters = append(defaulters, *b)
		}
	}
	return defaulters, nil
}

func (s *reportingService) DailyStats(ctx context.Context) (*domain.DailyStats, error) {
	payments, err := s.billingRepo.ListPayments(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.DailyStats{
		TotalCollected:    decimal.Zero,
		OutstandingAmount: decimal.Zero,
	}

	today := utils.StartOfDayWIB(s.now())
	tomorrow := today.AddDate(0, 0, 1)
	for i := range payments {
		p := &payments[i]
		if p.Status != domain.PaymentCompleted {
			continue
		}
		if p.PaymentDate.Before(today) || !p.PaymentDate.Before(tomorrow) {
			continue
		}
		stats.TotalCollected = stats.TotalCollected.Add(p.Amount)
		stats.TotalTransactions++
	}

	billings, err := s.billingRepo.ListBillings(ctx)
	if err != nil {
		return nil, err
	}
	for i := range billings {
		stats.OutstandingAmount = stats.OutstandingAmount.Add(billings[i].OutstandingAmount)
	}

	students, err := s.studentRepo.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	for i := range students {
		if students[i].Status == domain.StatusActive {
			stats.ActiveStudents++
		}
	}

	return stats, nil
}

func (s *reportingService) PaymentHistory(ctx context.Context, studentID string) ([]domain.Payment, error) {
	if _, err := s.studentRepo.FindStudentByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.billingRepo.ListPaymentsByStudent(ctx, studentID)
}
