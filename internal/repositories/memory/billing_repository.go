package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sekolahpay/spp_billing_app/internal/apperrors"
	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/core/ports/repositories"
)

// BillingRepository is an in-memory store for student billing records and
// the payment ledger. Both live behind one mutex so that recording a payment
// and mutating its billing record is a single atomic step.
type BillingRepository struct {
	mu            sync.RWMutex
	billings      map[string]domain.StudentBilling
	byStudentYear map[string]string // studentID+"/"+academicYearID -> billingID
	order         []string
	payments      []domain.Payment
	receiptYear   int
	receiptSeq    int
	now           func() time.Time
}

var _ repositories.BillingRepositoryFacade = (*BillingRepository)(nil)

// BillingRepositoryOption configures the billing store.
type BillingRepositoryOption func(*BillingRepository)

// WithBillingRepositoryClock overrides the clock used for receipt numbering.
func WithBillingRepositoryClock(now func() time.Time) BillingRepositoryOption {
	return func(r *BillingRepository) { r.now = now }
}

// NewBillingRepository creates an empty billing store.
func NewBillingRepository(opts ...BillingRepositoryOption) *BillingRepository {
	repo := &BillingRepository{
		billings:      make(map[string]domain.StudentBilling),
		byStudentYear: make(map[string]string),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

func studentYearKey(studentID, academicYearID string) string {
	return studentID + "/" + academicYearID
}

// cloneBilling deep-copies the payment history so callers never alias the store.
func cloneBilling(b domain.StudentBilling) domain.StudentBilling {
	history := make([]domain.Payment, len(b.PaymentHistory))
	for i, p := range b.PaymentHistory {
		p.FeeItemIDs = append([]string(nil), p.FeeItemIDs...)
		history[i] = p
	}
	b.PaymentHistory = history
	if b.LateFeeAssessedAt != nil {
		at := *b.LateFeeAssessedAt
		b.LateFeeAssessedAt = &at
	}
	return b
}

func clonePayment(p domain.Payment) domain.Payment {
	p.FeeItemIDs = append([]string(nil), p.FeeItemIDs...)
	return p
}

func (r *BillingRepository) SaveBilling(_ context.Context, billing domain.StudentBilling) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.billings[billing.StudentBillingID]; exists {
		return fmt.Errorf("%w: billing %s", apperrors.ErrDuplicate, billing.StudentBillingID)
	}
	key := studentYearKey(billing.StudentID, billing.AcademicYearID)
	if _, exists := r.byStudentYear[key]; exists {
		return fmt.Errorf("%w: billing for student %s in year %s",
			apperrors.ErrDuplicate, billing.StudentID, billing.AcademicYearID)
	}

	r.billings[billing.StudentBillingID] = cloneBilling(billing)
	r.byStudentYear[key] = billing.StudentBillingID
	r.order = append(r.order, billing.StudentBillingID)
	return nil
}

func (r *BillingRepository) FindBillingByID(_ context.Context, billingID string) (*domain.StudentBilling, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	billing, ok := r.billings[billingID]
	if !ok {
		return nil, fmt.Errorf("%w: billing %s", apperrors.ErrNotFound, billingID)
	}
	clone := cloneBilling(billing)
	return &clone, nil
}

func (r *BillingRepository) FindBillingByStudentAndYear(_ context.Context, studentID, academicYearID string) (*domain.StudentBilling, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byStudentYear[studentYearKey(studentID, academicYearID)]
	if !ok {
		return nil, fmt.Errorf("%w: billing for student %s in year %s",
			apperrors.ErrNotFound, studentID, academicYearID)
	}
	clone := cloneBilling(r.billings[id])
	return &clone, nil
}

func (r *BillingRepository) ListBillings(_ context.Context) ([]domain.StudentBilling, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	billings := make([]domain.StudentBilling, 0, len(r.order))
	for _, id := range r.order {
		billings = append(billings, cloneBilling(r.billings[id]))
	}
	return billings, nil
}

func (r *BillingRepository) UpdateBilling(_ context.Context, billingID string, mutate func(b *domain.StudentBilling) error) (*domain.StudentBilling, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.billings[billingID]
	if !ok {
		return nil, fmt.Errorf("%w: billing %s", apperrors.ErrNotFound, billingID)
	}

	// Mutate a working copy; the store only changes when mutate succeeds.
	working := cloneBilling(stored)
	if err := mutate(&working); err != nil {
		return nil, err
	}

	r.billings[billingID] = cloneBilling(working)
	return &working, nil
}

func (r *BillingRepository) RecordPayment(_ context.Context, billingID string, mutate func(b *domain.StudentBilling) (domain.Payment, error)) (*domain.StudentBilling, *domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.billings[billingID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: billing %s", apperrors.ErrNotFound, billingID)
	}

	working := cloneBilling(stored)
	payment, err := mutate(&working)
	if err != nil {
		return nil, nil, err
	}

	working.PaymentHistory = append(working.PaymentHistory, clonePayment(payment))
	r.billings[billingID] = cloneBilling(working)
	r.payments = append(r.payments, clonePayment(payment))

	result := clonePayment(payment)
	return &working, &result, nil
}

func (r *BillingRepository) ListPayments(_ context.Context) ([]domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payments := make([]domain.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		payments = append(payments, clonePayment(p))
	}
	return payments, nil
}

func (r *BillingRepository) ListPaymentsByStudent(_ context.Context, studentID string) ([]domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payments := make([]domain.Payment, 0)
	for _, p := range r.payments {
		if p.StudentID == studentID {
			payments = append(payments, clonePayment(p))
		}
	}
	return payments, nil
}

func (r *BillingRepository) NextReceiptNumber(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	year := r.now().Year()
	if year != r.receiptYear {
		r.receiptYear = year
		r.receiptSeq = 0
	}
	r.receiptSeq++
	return fmt.Sprintf("RCP-%d-%06d", r.receiptYear, r.receiptSeq), nil
}

func (r *BillingRepository) CountBillingsByAcademicYear(_ context.Context, academicYearID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, id := range r.order {
		if r.billings[id].AcademicYearID == academicYearID {
			count++
		}
	}
	return count, nil
}
