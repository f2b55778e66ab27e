package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeCategory classifies a single charge line.
type FeeCategory string

const (
	FeeTuition     FeeCategory = "tuition"
	FeeAdmission   FeeCategory = "admission"
	FeeDevelopment FeeCategory = "development"
	FeeTransport   FeeCategory = "transport"
	FeeLibrary     FeeCategory = "library"
	FeeLab         FeeCategory = "lab"
	FeeSports      FeeCategory = "sports"
	FeeOther       FeeCategory = "other"
)

// FeeFrequency is the recurrence interval of a recurring fee item.
type FeeFrequency string

const (
	FrequencyMonthly   FeeFrequency = "monthly"
	FrequencyQuarterly FeeFrequency = "quarterly"
	FrequencyAnnually  FeeFrequency = "annually"
)

// FeeItem is a single charge line within a fee structure.
// Amount is in minor currency units (whole rupiah for IDR).
type FeeItem struct {
	FeeItemID   string          `json:"feeItemID"`
	Name        string          `json:"name"`
	Category    FeeCategory     `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	IsRecurring bool            `json:"isRecurring"`
	Frequency   FeeFrequency    `json:"frequency,omitempty"` // set iff IsRecurring
	IsOptional  bool            `json:"isOptional"`
}

// AnnualContribution is the amount this item contributes to the fee
// structure total for one full academic year: monthly recurring items
// count twelve times, everything else counts once.
func (f FeeItem) AnnualContribution() decimal.Decimal {
	if f.IsRecurring && f.Frequency == FrequencyMonthly {
		return f.Amount.Mul(decimal.NewFromInt(12))
	}
	return f.Amount
}

// FeeApplicability scopes a fee structure to an institution, one class,
// or one student.
type FeeApplicability string

const (
	ApplicableToInstitution FeeApplicability = "institution"
	ApplicableToClass       FeeApplicability = "class"
	ApplicableToStudent     FeeApplicability = "student"
)

// InstallmentStatus is derived from the installment due date relative to now.
type InstallmentStatus string

const (
	InstallmentUpcoming InstallmentStatus = "upcoming"
	InstallmentDue      InstallmentStatus = "due"
	InstallmentOverdue  InstallmentStatus = "overdue"
)

// PaymentScheduleInstallment is one derived installment of a fee structure.
type PaymentScheduleInstallment struct {
	InstallmentID     string            `json:"installmentID"`
	InstallmentNumber int               `json:"installmentNumber"` // 1-based, sequential
	DueDate           time.Time         `json:"dueDate"`
	Amount            decimal.Decimal   `json:"amount"`
	FeeItemIDs        []string          `json:"feeItemIDs"`
	Status            InstallmentStatus `json:"status"`
}

// DeriveStatus computes the installment status for the given time.
// An installment is due once within dueWindowDays of its due date,
// overdue once the due date has passed.
func (p PaymentScheduleInstallment) DeriveStatus(now time.Time, dueWindowDays int) InstallmentStatus {
	if now.After(p.DueDate) {
		return InstallmentOverdue
	}
	if !now.Before(p.DueDate.AddDate(0, 0, -dueWindowDays)) {
		return InstallmentDue
	}
	return InstallmentUpcoming
}

// FeeStructure is a named bundle of fee items applicable to an
// institution, class, or individual student for one academic year.
type FeeStructure struct {
	FeeStructureID  string                       `json:"feeStructureID"`
	Name            string                       `json:"name"`
	InstitutionID   string                       `json:"institutionID"`
	AcademicYearID  string                       `json:"academicYearID"`
	ApplicableFor   FeeApplicability             `json:"applicableFor"`
	TargetID        string                       `json:"targetID,omitempty"` // classroom or student id, required unless institution-wide
	Fees            []FeeItem                    `json:"fees"`
	TotalAmount     decimal.Decimal              `json:"totalAmount"` // derived, see ComputeTotal
	PaymentSchedule []PaymentScheduleInstallment `json:"paymentSchedule"`
	Status          EntityStatus                 `json:"status"`
	AuditFields
}

// ComputeTotal sums the annual contribution of every fee item.
// Optional items are included unless excludeOptional is set; the source
// system always included them, so inclusion is the default policy.
func (f FeeStructure) ComputeTotal(excludeOptional bool) decimal.Decimal {
	total := decimal.Zero
	for _, item := range f.Fees {
		if excludeOptional && item.IsOptional {
			continue
		}
		total = total.Add(item.AnnualContribution())
	}
	return total
}
