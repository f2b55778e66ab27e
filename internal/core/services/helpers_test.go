package services_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/core/ports/repositories"
	"github.com/sekolahpay/spp_billing_app/internal/dto"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Fixture IDs shared by the service suites.
const (
	testInstitutionID = "inst-1"
	testYearID        = "year-2024"
	testClassroomID   = "class-x-ipa-1"
	testStudentID     = "stu-1"
	testOperatorID    = "op-1"
)

var (
	testYearStart = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	testYearEnd   = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
)

func seedInstitution(ctx context.Context, repo repositories.InstitutionRepositoryFacade) {
	_ = repo.SaveInstitution(ctx, domain.Institution{
		InstitutionID: testInstitutionID,
		Name:          "SMA Negeri 1 Jakarta",
		Code:          "SMAN1JKT",
		Status:        domain.StatusActive,
		Settings: domain.InstitutionSettings{
			Currency:          "IDR",
			Timezone:          "Asia/Jakarta",
			AcademicYearStart: 7,
			PaymentDueDays:    10,
			LateFeePercentage: 5,
		},
	})
}

func seedAcademicYear(ctx context.Context, repo repositories.AcademicYearRepositoryFacade) {
	_ = repo.SaveAcademicYear(ctx, domain.AcademicYear{
		AcademicYearID: testYearID,
		Name:           "2024/2025",
		StartDate:      testYearStart,
		EndDate:        testYearEnd,
		Status:         domain.YearActive,
		IsDefault:      true,
	})
}

func seedStudent(ctx context.Context, repo repositories.StudentRepositoryFacade) {
	_ = repo.SaveStudent(ctx, domain.Student{
		StudentID:      testStudentID,
		NIS:            "2021001",
		Name:           "Ahmad Fauzi",
		ClassroomID:    testClassroomID,
		InstitutionID:  testInstitutionID,
		AcademicYearID: testYearID,
		Status:         domain.StatusActive,
	})
}

// demoFeePayload is the standard four-item structure: a monthly tuition fee
// plus three one-time fees, totalling 7,800,000 per year.
func demoFeePayload() []dto.FeeItemPayload {
	return []dto.FeeItemPayload{
		{Name: "SPP Bulanan", Category: "tuition", Amount: decimal.NewFromInt(400000), IsRecurring: true, Frequency: "monthly"},
		{Name: "Uang Gedung", Category: "development", Amount: decimal.NewFromInt(2000000)},
		{Name: "Uang Buku", Category: "library", Amount: decimal.NewFromInt(500000)},
		{Name: "Uang Seragam", Category: "other", Amount: decimal.NewFromInt(300000)},
	}
}
