package services

import (
	"context"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
)

// ReportingSvcFacade defines pure aggregation queries over the current
// billing records and payments. Reports never mutate state; statuses are
// derived on the fly so figures are current even between refresh runs.
type ReportingSvcFacade interface {
	AcademicYearReport(ctx context.Context, academicYearID string) (*domain.CollectionSummary, error)
	InstitutionReport(ctx context.Context, institutionID string) (*domain.CollectionSummary, error)
	ClassReport(ctx context.Context, classroomID string) (*domain.CollectionSummary, error)

	// DefaultersList returns billing records with status overdue or defaulter,
	// optionally filtered by institution, in insertion order.
	DefaultersList(ctx context.Context, institutionID string) ([]domain.StudentBilling, error)

	DailyStats(ctx context.Context) (*domain.DailyStats, error)
	PaymentHistory(ctx context.Context, studentID string) ([]domain.Payment, error)
}
