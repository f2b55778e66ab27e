package services

import (
	"context"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/dto"
)

// BillingSvcFacade is the billing ledger: it creates student billing records
// from fee structures and applies payments and adjustments against them.
type BillingSvcFacade interface {
	CreateBilling(ctx context.Context, req dto.CreateBillingRequest, creatorUserID string) (*domain.StudentBilling, error)
	GetBillingByID(ctx context.Context, billingID string) (*domain.StudentBilling, error)
	GetBillingByStudent(ctx context.Context, studentID, academicYearID string) (*domain.StudentBilling, error)
	ListBillings(ctx context.Context) ([]domain.StudentBilling, error)

	// ApplyPayment applies money against a billing record. It fails with
	// ErrInvalidAmount when amount <= 0 and ErrOverpayment when amount
	// exceeds the outstanding balance; on failure the record is untouched.
	ApplyPayment(ctx context.Context, billingID string, req dto.ApplyPaymentRequest, processedByUserID string) (*domain.StudentBilling, *domain.Payment, error)

	// ApplyDiscount reduces the outstanding balance without a payment.
	ApplyDiscount(ctx context.Context, billingID string, req dto.ApplyDiscountRequest, userID string) (*domain.StudentBilling, error)

	// AssessLateFee adds the institution's late fee percentage of the
	// outstanding balance, at most once per due date.
	AssessLateFee(ctx context.Context, billingID string, userID string) (*domain.StudentBilling, error)

	// RefreshStatuses re-derives the status of every billing record,
	// reclassifying persistent overdue records as defaulters. This is the
	// periodic derived check of the ledger, not a payment side effect.
	RefreshStatuses(ctx context.Context, userID string) (int, error)
}
