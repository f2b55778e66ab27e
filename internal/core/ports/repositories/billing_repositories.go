package repositories

import (
	"context"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
)

// BillingRepositoryFacade defines persistence operations for student billing
// records and their payments. Payments live in the same store as billings so
// that recording a payment and mutating its billing record is one atomic step.
type BillingRepositoryFacade interface {
	SaveBilling(ctx context.Context, billing domain.StudentBilling) error
	FindBillingByID(ctx context.Context, billingID string) (*domain.StudentBilling, error)
	FindBillingByStudentAndYear(ctx context.Context, studentID, academicYearID string) (*domain.StudentBilling, error)
	ListBillings(ctx context.Context) ([]domain.StudentBilling, error)

	// UpdateBilling applies mutate to the stored record under the store lock.
	// The mutation either fully applies or, when mutate returns an error, the
	// record is left untouched. Payment application against one record is
	// thereby serialized (read-modify-write race, see ApplyPayment).
	UpdateBilling(ctx context.Context, billingID string, mutate func(b *domain.StudentBilling) error) (*domain.StudentBilling, error)

	// RecordPayment atomically appends the payment produced by mutate to both
	// the billing record's history and the payment ledger.
	RecordPayment(ctx context.Context, billingID string, mutate func(b *domain.StudentBilling) (domain.Payment, error)) (*domain.StudentBilling, *domain.Payment, error)

	ListPayments(ctx context.Context) ([]domain.Payment, error)
	ListPaymentsByStudent(ctx context.Context, studentID string) ([]domain.Payment, error)

	// NextReceiptNumber issues a unique, monotonically increasing receipt
	// number such as RCP-2026-000042.
	NextReceiptNumber(ctx context.Context) (string, error)

	// CountBillingsByAcademicYear supports the academic-year deletion guard.
	CountBillingsByAcademicYear(ctx context.Context, academicYearID string) (int, error)
}
