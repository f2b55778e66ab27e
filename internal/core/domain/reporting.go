package domain

import "github.com/shopspring/decimal"

// CollectionSummary aggregates the billing records of one cohort
// (academic year, institution, or class).
type CollectionSummary struct {
	TotalStudents    int             `json:"totalStudents"`
	TotalFees        decimal.Decimal `json:"totalFees"`
	TotalCollected   decimal.Decimal `json:"totalCollected"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	TotalPayments    int             `json:"totalPayments"`
	CollectionRate   decimal.Decimal `json:"collectionRate"` // percentage, 0 for an empty cohort
	OverdueCount     int             `json:"overdueCount"`
}

// DailyStats summarizes the cashier desk for the current day.
type DailyStats struct {
	TotalCollected    decimal.Decimal `json:"totalCollected"`
	TotalTransactions int             `json:"totalTransactions"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	ActiveStudents    int             `json:"activeStudents"`
}
