package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingStatus is the derived payment standing of a student billing record.
type BillingStatus string

const (
	BillingCurrent   BillingStatus = "current"
	BillingOverdue   BillingStatus = "overdue"
	BillingPaid      BillingStatus = "paid"
	BillingDefaulter BillingStatus = "defaulter"
)

// PaymentMethod is the channel a payment was received through.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
	MethodCheque   PaymentMethod = "cheque"
	MethodOnline   PaymentMethod = "online"
)

// PaymentStatus is the lifecycle state of a payment record.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Payment is an immutable, append-only record of money applied against a
// student billing record. Completed payments are never modified or deleted.
type Payment struct {
	PaymentID        string          `json:"paymentID"`
	StudentBillingID string          `json:"studentBillingID"`
	StudentID        string          `json:"studentID"`
	Amount           decimal.Decimal `json:"amount"`
	Method           PaymentMethod   `json:"method"`
	PaymentDate      time.Time       `json:"paymentDate"`
	ReceiptNumber    string          `json:"receiptNumber"` // unique
	FeeItemIDs       []string        `json:"feeItemIDs"`
	ProcessedBy      string          `json:"processedBy"` // operator UserID
	Status           PaymentStatus   `json:"status"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// StudentBilling is the aggregate root for one student's financial state
// within one academic year. It is mutated only through payment application
// and adjustment operations, and never deleted once a payment exists.
type StudentBilling struct {
	StudentBillingID  string          `json:"studentBillingID"`
	StudentID         string          `json:"studentID"`
	InstitutionID     string          `json:"institutionID"`
	AcademicYearID    string          `json:"academicYearID"`
	ClassroomID       string          `json:"classroomID"`
	FeeStructureID    string          `json:"feeStructureID"`
	TotalFees         decimal.Decimal `json:"totalFees"`
	PaidAmount        decimal.Decimal `json:"paidAmount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	DiscountAmount    decimal.Decimal `json:"discountAmount"`
	LateFeeAmount     decimal.Decimal `json:"lateFeeAmount"`
	PaymentHistory    []Payment       `json:"paymentHistory"`
	NextDueDate       time.Time       `json:"nextDueDate"`
	Status            BillingStatus   `json:"status"`
	LateFeeAssessedAt *time.Time      `json:"lateFeeAssessedAt,omitempty"` // due date the current late fee was assessed for
	SpecialNotes      string          `json:"specialNotes,omitempty"`
	AuditFields
}

// RecalculateOutstanding re-derives the outstanding amount from its parts.
// Invariant: outstanding = totalFees - paid - discount + lateFee.
func (b *StudentBilling) RecalculateOutstanding() {
	b.OutstandingAmount = b.TotalFees.
		Sub(b.PaidAmount).
		Sub(b.DiscountAmount).
		Add(b.LateFeeAmount)
}

// DeriveStatus computes the billing status for the given time.
// graceDays is the institution's payment grace period beyond the next due
// date; a record still outstanding past that window is a defaulter.
func (b StudentBilling) DeriveStatus(now time.Time, graceDays int) BillingStatus {
	if b.OutstandingAmount.LessThanOrEqual(decimal.Zero) {
		return BillingPaid
	}
	if !now.After(b.NextDueDate) {
		return BillingCurrent
	}
	if graceDays > 0 && now.After(b.NextDueDate.AddDate(0, 0, graceDays)) {
		return BillingDefaulter
	}
	return BillingOverdue
}
