package dto

import (
	"github.com/shopspring/decimal"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/utils"
)

// CollectionSummaryResponse is the API representation of a collection report.
type CollectionSummaryResponse struct {
	TotalStudents             int             `json:"totalStudents"`
	TotalFees                 decimal.Decimal `json:"totalFees"`
	TotalFeesFormatted        string          `json:"totalFeesFormatted"`
	TotalCollected            decimal.Decimal `json:"totalCollected"`
	TotalCollectedFormatted   string          `json:"totalCollectedFormatted"`
	TotalOutstanding          decimal.Decimal `json:"totalOutstanding"`
	TotalOutstandingFormatted string          `json:"totalOutstandingFormatted"`
	TotalPayments             int             `json:"totalPayments"`
	CollectionRate            decimal.Decimal `json:"collectionRate"`
	OverdueCount              int             `json:"overdueCount"`
}

// ToCollectionSummaryResponse maps a domain collection summary.
func ToCollectionSummaryResponse(s *domain.CollectionSummary) CollectionSummaryResponse {
	return CollectionSummaryResponse{
		TotalStudents:             s.TotalStudents,
		TotalFees:                 s.TotalFees,
		TotalFeesFormatted:        utils.FormatIDR(s.TotalFees),
		TotalCollected:            s.TotalCollected,
		TotalCollectedFormatted:   utils.FormatIDR(s.TotalCollected),
		TotalOutstanding:          s.TotalOutstanding,
		TotalOutstandingFormatted: utils.FormatIDR(s.TotalOutstanding),
		TotalPayments:             s.TotalPayments,
		CollectionRate:            s.CollectionRate,
		OverdueCount:              s.OverdueCount,
	}
}

// DailyStatsResponse is the API representation of today's collection stats.
type DailyStatsResponse struct {
	TotalCollected             decimal.Decimal `json:"totalCollected"`
	TotalCollectedFormatted    string          `json:"totalCollectedFormatted"`
	TotalTransactions          int             `json:"totalTransactions"`
	OutstandingAmount          decimal.Decimal `json:"outstandingAmount"`
	OutstandingAmountFormatted string          `json:"outstandingAmountFormatted"`
	ActiveStudents             int             `json:"activeStudents"`
}

// ToDailyStatsResponse maps domain daily stats.
func ToDailyStatsResponse(s *domain.DailyStats) DailyStatsResponse {
	return DailyStatsResponse{
		TotalCollected:             s.TotalCollected,
		TotalCollectedFormatted:    utils.FormatIDR(s.TotalCollected),
		TotalTransactions:          s.TotalTransactions,
		OutstandingAmount:          s.OutstandingAmount,
		OutstandingAmountFormatted: utils.FormatIDR(s.OutstandingAmount),
		ActiveStudents:             s.ActiveStudents,
	}
}
