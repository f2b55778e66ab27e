package memory_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahpay/spp_billing_app/internal/apperrors"
	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/repositories/memory"
)

func saveTestBilling(t *testing.T, repo *memory.BillingRepository, totalFees int64) domain.StudentBilling {
	t.Helper()
	billing := domain.StudentBilling{
		StudentBillingID:  "bill-1",
		StudentID:         "stu-1",
		InstitutionID:     "inst-1",
		AcademicYearID:    "year-2024",
		TotalFees:         decimal.NewFromInt(totalFees),
		OutstandingAmount: decimal.NewFromInt(totalFees),
		NextDueDate:       time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Status:            domain.BillingCurrent,
	}
	require.NoError(t, repo.SaveBilling(context.Background(), billing))
	return billing
}

func TestSaveBilling_DuplicateStudentYear(t *testing.T) {
	repo := memory.NewBillingRepository()
	saveTestBilling(t, repo, 7800000)

	err := repo.SaveBilling(context.Background(), domain.StudentBilling{
		StudentBillingID: "bill-2",
		StudentID:        "stu-1",
		AcademicYearID:   "year-2024",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestUpdateBilling_MutateErrorLeavesStoreUntouched(t *testing.T) {
	repo := memory.NewBillingRepository()
	billing := saveTestBilling(t, repo, 7800000)
	ctx := context.Background()

	_, err := repo.UpdateBilling(ctx, billing.StudentBillingID, func(b *domain.StudentBilling) error {
		b.PaidAmount = decimal.NewFromInt(999999)
		return fmt.Errorf("%w: rejected mid-mutation", apperrors.ErrValidation)
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	stored, err := repo.FindBillingByID(ctx, billing.StudentBillingID)
	require.NoError(t, err)
	assert.True(t, stored.PaidAmount.IsZero(), "failed mutation must not leak into the store")
}

func TestFindBillingByID_ReturnsDetachedCopy(t *testing.T) {
	repo := memory.NewBillingRepository()
	billing := saveTestBilling(t, repo, 7800000)
	ctx := context.Background()

	first, err := repo.FindBillingByID(ctx, billing.StudentBillingID)
	require.NoError(t, err)
	first.PaymentHistory = append(first.PaymentHistory, domain.Payment{PaymentID: "rogue"})
	first.PaidAmount = decimal.NewFromInt(1)

	second, err := repo.FindBillingByID(ctx, billing.StudentBillingID)
	require.NoError(t, err)
	assert.Empty(t, second.PaymentHistory)
	assert.True(t, second.PaidAmount.IsZero())
}

// 150 concurrent cashiers each try to collect 1,000 against a 120,000 bill.
// Exactly 120 payments fit; the rest must be rejected as overpayment, and the
// ledger, history, and outstanding figure must agree when the dust settles.
func TestRecordPayment_ConcurrentCollection(t *testing.T) {
	repo := memory.NewBillingRepository()
	billing := saveTestBilling(t, repo, 120000)
	ctx := context.Background()

	const (
		attempts  = 150
		increment = 1000
	)

	var wg sync.WaitGroup
	var rejected atomic.Int64
	amount := decimal.NewFromInt(increment)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _, err := repo.RecordPayment(ctx, billing.StudentBillingID, func(b *domain.StudentBilling) (domain.Payment, error) {
				if amount.GreaterThan(b.OutstandingAmount) {
					return domain.Payment{}, apperrors.ErrOverpayment
				}
				b.PaidAmount = b.PaidAmount.Add(amount)
				b.RecalculateOutstanding()
				return domain.Payment{
					PaymentID:        fmt.Sprintf("pay-%d", n),
					StudentBillingID: b.StudentBillingID,
					StudentID:        b.StudentID,
					Amount:           amount,
					Method:           domain.MethodCash,
					Status:           domain.PaymentCompleted,
				}, nil
			})
			if err != nil {
				rejected.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, attempts-120, rejected.Load())

	stored, err := repo.FindBillingByID(ctx, billing.StudentBillingID)
	require.NoError(t, err)
	assert.True(t, stored.PaidAmount.Equal(decimal.NewFromInt(120000)))
	assert.True(t, stored.OutstandingAmount.IsZero())
	assert.Len(t, stored.PaymentHistory, 120)

	ledger, err := repo.ListPayments(ctx)
	require.NoError(t, err)
	assert.Len(t, ledger, 120, "rejected attempts never reach the ledger")
}

func TestNextReceiptNumber_SequenceAndYearReset(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	repo := memory.NewBillingRepository(memory.WithBillingRepositoryClock(func() time.Time { return now }))
	ctx := context.Background()

	first, err := repo.NextReceiptNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "RCP-2025-000001", first)

	second, err := repo.NextReceiptNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "RCP-2025-000002", second)

	// Sequence restarts with the calendar year.
	now = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	third, err := repo.NextReceiptNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "RCP-2026-000001", third)
}

func TestNextReceiptNumber_UniqueUnderConcurrency(t *testing.T) {
	repo := memory.NewBillingRepository()
	ctx := context.Background()

	const n = 200
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]bool, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, err := repo.NextReceiptNumber(ctx)
			assert.NoError(t, err)
			mu.Lock()
			seen[number] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n, "every issued receipt number is distinct")
}

func TestCountBillingsByAcademicYear(t *testing.T) {
	repo := memory.NewBillingRepository()
	saveTestBilling(t, repo, 7800000)
	ctx := context.Background()

	count, err := repo.CountBillingsByAcademicYear(ctx, "year-2024")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = repo.CountBillingsByAcademicYear(ctx, "year-2023")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
