// Package seed loads the demo dataset so the API is explorable right after
// boot. State is in-memory only, so seeding runs on every start when enabled.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	ports "github.com/sekolahpay/spp_billing_app/internal/core/ports/services"
	"github.com/sekolahpay/spp_billing_app/internal/dto"
)

// systemUserID stamps audit fields on seeded records.
const systemUserID = "system"

// Run loads the demo dataset: three operators, two academic years, two
// institutions, three classes, one fee structure, three students with
// billing records, and a couple of payments.
func Run(ctx context.Context, services *ports.ServiceContainer, logger *slog.Logger) error {
	admin, err := services.User.CreateUser(ctx, dto.CreateUserRequest{
		Username: "admin",
		Password: "admin123",
		Name:     "Administrator",
		Role:     "admin",
		Email:    "admin@sekolahpay.id",
	}, systemUserID)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	for _, cashier := range []dto.CreateUserRequest{
		{Username: "kasir1", Password: "kasir123", Name: "Kasir Satu", Role: "kasir1"},
		{Username: "kasir2", Password: "kasir123", Name: "Kasir Dua", Role: "kasir2"},
	} {
		if _, err := services.User.CreateUser(ctx, cashier, admin.UserID); err != nil {
			return fmt.Errorf("seed cashier %s: %w", cashier.Username, err)
		}
	}

	date := func(value string) time.Time {
		t, _ := time.Parse(time.DateOnly, value)
		return t
	}

	if _, err := services.AcademicYear.CreateAcademicYear(ctx, dto.CreateAcademicYearRequest{
		Name:      "2023/2024",
		StartDate: date("2023-07-01"),
		EndDate:   date("2024-06-30"),
	}, admin.UserID); err != nil {
		return fmt.Errorf("seed academic year 2023/2024: %w", err)
	}

	currentYear, err := services.AcademicYear.CreateAcademicYear(ctx, dto.CreateAcademicYearRequest{
		Name:      "2024/2025",
		StartDate: date("2024-07-01"),
		EndDate:   date("2025-06-30"),
	}, admin.UserID)
	if err != nil {
		return fmt.Errorf("seed academic year 2024/2025: %w", err)
	}
	if _, err := services.AcademicYear.ActivateAcademicYear(ctx, currentYear.AcademicYearID, admin.UserID); err != nil {
		return fmt.Errorf("seed activate academic year: %w", err)
	}

	sman1, err := services.Institution.CreateInstitution(ctx, dto.CreateInstitutionRequest{
		Name:            "SMA Negeri 1 Jakarta",
		Code:            "SMAN1JKT",
		Address:         "Jl. Budi Kemuliaan I No.2, Gambir, Jakarta Pusat",
		Phone:           "021-3441805",
		Email:           "info@sman1jakarta.sch.id",
		PrincipalName:   "Dr. Ahmad Suryadi, M.Pd",
		EstablishedYear: 1950,
		Settings: &dto.InstitutionSettingsPayload{
			Currency:            "IDR",
			Timezone:            "Asia/Jakarta",
			AcademicYearStart:   7,
			PaymentDueDays:      10,
			LateFeePercentage:   5,
			EnableAutoReminders: true,
		},
	}, admin.UserID)
	if err != nil {
		return fmt.Errorf("seed institution SMAN1JKT: %w", err)
	}

	if _, err := services.Institution.CreateInstitution(ctx, dto.CreateInstitutionRequest{
		Name:            "SMA Negeri 2 Jakarta",
		Code:            "SMAN2JKT",
		Address:         "Jl. Gajah Mada No.175, Jakarta Pusat",
		Phone:           "021-6260038",
		Email:           "info@sman2jakarta.sch.id",
		PrincipalName:   "Dra. Siti Nurhasanah, M.Pd",
		EstablishedYear: 1952,
		Settings: &dto.InstitutionSettingsPayload{
			Currency:            "IDR",
			Timezone:            "Asia/Jakarta",
			AcademicYearStart:   7,
			PaymentDueDays:      15,
			LateFeePercentage:   3,
			EnableAutoReminders: true,
		},
	}, admin.UserID); err != nil {
		return fmt.Errorf("seed institution SMAN2JKT: %w", err)
	}

	classIDs := make(map[string]string, 3)
	for _, class := range []dto.CreateClassroomRequest{
		{Name: "X IPA 1", Code: "X-IPA-1", Level: "X", Section: "IPA 1", Capacity: 36},
		{Name: "X IPA 2", Code: "X-IPA-2", Level: "X", Section: "IPA 2", Capacity: 36},
		{Name: "XI IPS 1", Code: "XI-IPS-1", Level: "XI", Section: "IPS 1", Capacity: 36},
	} {
		class.InstitutionID = sman1.InstitutionID
		class.AcademicYearID = currentYear.AcademicYearID
		created, err := services.Classroom.CreateClassroom(ctx, class, admin.UserID)
		if err != nil {
			return fmt.Errorf("seed classroom %s: %w", class.Name, err)
		}
		classIDs[class.Name] = created.ClassroomID
	}

	structure, err := services.FeeStructure.CreateFeeStructure(ctx, dto.CreateFeeStructureRequest{
		Name:           "Struktur Biaya Kelas X IPA",
		InstitutionID:  sman1.InstitutionID,
		AcademicYearID: currentYear.AcademicYearID,
		ApplicableFor:  "class",
		TargetID:       classIDs["X IPA 1"],
		Fees: []dto.FeeItemPayload{
			{Name: "SPP Bulanan", Category: "tuition", Amount: decimal.NewFromInt(400000), IsRecurring: true, Frequency: "monthly"},
			{Name: "Uang Gedung", Category: "development", Amount: decimal.NewFromInt(2000000)},
			{Name: "Uang Buku", Category: "library", Amount: decimal.NewFromInt(500000)},
			{Name: "Uang Seragam", Category: "other", Amount: decimal.NewFromInt(300000)},
		},
	}, admin.UserID)
	if err != nil {
		return fmt.Errorf("seed fee structure: %w", err)
	}

	students := []struct {
		req  dto.CreateStudentRequest
		paid int64
	}{
		{
			req: dto.CreateStudentRequest{
				NIS: "2021001", Name: "Ahmad Fauzi",
				Phone: "081234567890", Email: "ahmad.fauzi@email.com",
				Address: "Jl. Sudirman No. 123, Jakarta",
			},
			paid: 800000,
		},
		{
			req: dto.CreateStudentRequest{
				NIS: "2021002", Name: "Siti Nurhaliza",
				Phone: "081234567891", Email: "siti.nurhaliza@email.com",
				Address: "Jl. Thamrin No. 456, Jakarta",
			},
			paid: 1200000,
		},
		{
			req: dto.CreateStudentRequest{
				NIS: "2021003", Name: "Budi Santoso",
				Phone: "081234567892", Email: "budi.santoso@email.com",
				Address: "Jl. Gatot Subroto No. 789, Jakarta",
			},
			paid: 2400000,
		},
	}
	classByNIS := map[string]string{
		"2021001": classIDs["X IPA 1"],
		"2021002": classIDs["X IPA 2"],
		"2021003": classIDs["XI IPS 1"],
	}

	for _, entry := range students {
		entry.req.ClassroomID = classByNIS[entry.req.NIS]
		entry.req.InstitutionID = sman1.InstitutionID
		entry.req.AcademicYearID = currentYear.AcademicYearID

		student, err := services.Student.CreateStudent(ctx, entry.req, admin.UserID)
		if err != nil {
			return fmt.Errorf("seed student %s: %w", entry.req.NIS, err)
		}

		billing, err := services.Billing.CreateBilling(ctx, dto.CreateBillingRequest{
			StudentID:      student.StudentID,
			AcademicYearID: currentYear.AcademicYearID,
			FeeStructureID: structure.FeeStructureID,
		}, admin.UserID)
		if err != nil {
			return fmt.Errorf("seed billing for %s: %w", entry.req.NIS, err)
		}

		if entry.paid > 0 {
			if _, _, err := services.Billing.ApplyPayment(ctx, billing.StudentBillingID, dto.ApplyPaymentRequest{
				Amount: decimal.NewFromInt(entry.paid),
				Method: "cash",
				Notes:  "SPP",
			}, admin.UserID); err != nil {
				return fmt.Errorf("seed payment for %s: %w", entry.req.NIS, err)
			}
		}
	}

	logger.Info("demo data seeded",
		slog.Int("students", len(students)),
		slog.String("fee_structure_total", structure.TotalAmount.String()),
	)
	return nil
}
