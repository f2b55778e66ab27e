package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/sekolahpay/spp_billing_app/internal/apperrors"
	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	portssvc "github.com/sekolahpay/spp_billing_app/internal/core/ports/services"
	"github.com/sekolahpay/spp_billing_app/internal/core/services"
	"github.com/sekolahpay/spp_billing_app/internal/dto"
	"github.com/sekolahpay/spp_billing_app/internal/repositories/memory"
)

type BillingServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	now         time.Time
	billingRepo *memory.BillingRepository
	billingSvc  portssvc.BillingSvcFacade
	structureID string
}

func (s *BillingServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	// Ten days before the academic year starts.
	s.now = time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return s.now }

	s.billingRepo = memory.NewBillingRepository(memory.WithBillingRepositoryClock(clock))
	institutionRepo := memory.NewInstitutionRepository()
	yearRepo := memory.NewAcademicYearRepository()
	studentRepo := memory.NewStudentRepository()
	structureRepo := memory.NewFeeStructureRepository()

	seedInstitution(s.ctx, institutionRepo)
	seedAcademicYear(s.ctx, yearRepo)
	seedStudent(s.ctx, studentRepo)

	feeSvc := services.NewFeeStructureService(structureRepo, institutionRepo, yearRepo, testLogger(),
		services.WithFeeStructureClock(clock))
	structure, err := feeSvc.CreateFeeStructure(s.ctx, dto.CreateFeeStructureRequest{
		Name:           "Struktur Biaya Kelas X IPA",
		InstitutionID:  testInstitutionID,
		AcademicYearID: testYearID,
		ApplicableFor:  "institution",
		Fees:           demoFeePayload(),
	}, testOperatorID)
	s.Require().NoError(err)
	s.structureID = structure.FeeStructureID

	s.billingSvc = services.NewBillingService(s.billingRepo, studentRepo, structureRepo, institutionRepo, testLogger(),
		services.WithBillingClock(clock))
}

func (s *BillingServiceTestSuite) createBilling() *domain.StudentBilling {
	billing, err := s.billingSvc.CreateBilling(s.ctx, dto.CreateBillingRequest{
		StudentID:      testStudentID,
		AcademicYearID: testYearID,
		FeeStructureID: s.structureID,
	}, testOperatorID)
	s.Require().NoError(err)
	return billing
}

func (s *BillingServiceTestSuite) TestCreateBilling_MaterializesStructureTotals() {
	billing := s.createBilling()

	s.True(billing.TotalFees.Equal(decimal.NewFromInt(7800000)))
	s.True(billing.OutstandingAmount.Equal(decimal.NewFromInt(7800000)))
	s.True(billing.PaidAmount.IsZero())
	s.Equal(testInstitutionID, billing.InstitutionID)
	s.Equal(testClassroomID, billing.ClassroomID)
	s.True(billing.NextDueDate.Equal(testYearStart), "first installment due on year start")
	s.Equal(domain.BillingCurrent, billing.Status)
	s.Empty(billing.PaymentHistory)
}

func (s *BillingServiceTestSuite) TestCreateBilling_DuplicateRejected() {
	s.createBilling()

	_, err := s.billingSvc.CreateBilling(s.ctx, dto.CreateBillingRequest{
		StudentID:      testStudentID,
		AcademicYearID: testYearID,
		FeeStructureID: s.structureID,
	}, testOperatorID)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *BillingServiceTestSuite) TestCreateBilling_YearMismatchRejected() {
	_, err := s.billingSvc.CreateBilling(s.ctx, dto.CreateBillingRequest{
		StudentID:      testStudentID,
		AcademicYearID: "year-2023",
		FeeStructureID: s.structureID,
	}, testOperatorID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *BillingServiceTestSuite) TestApplyPayment_ReducesOutstanding() {
	billing := s.createBilling()

	updated, payment, err := s.billingSvc.ApplyPayment(s.ctx, billing.StudentBillingID, dto.ApplyPaymentRequest{
		Amount: decimal.NewFromInt(800000),
		Method: "cash",
	}, testOperatorID)
	s.Require().NoError(err)

	s.True(updated.PaidAmount.Equal(decimal.NewFromInt(800000)))
	s.True(updated.OutstandingAmount.Equal(decimal.NewFromInt(7000000)))
	s.True(updated.NextDueDate.Equal(testYearStart), "first installment not yet covered")
	s.Len(updated.PaymentHistory, 1)

	s.Equal("RCP-2024-000001", payment.ReceiptNumber)
	s.Equal(domain.PaymentCompleted, payment.Status)
	s.Equal(testOperatorID, payment.ProcessedBy)
	s.True(payment.Amount.Equal(decimal.NewFromInt(800000)))
}

func (s *BillingServiceTestSuite) TestApplyPayment_AdvancesDueDateWhenInstallmentCovered() {
	billing := s.createBilling()

	// The first installment carries the one-time fees plus one month of
	// tuition: 2,800,000 + 400,000.
	updated, _, err := s.billingSvc.ApplyPayment(s.ctx, billing.StudentBillingID, dto.ApplyPaymentRequest{
		Amount: decimal.NewFromInt(3200000),
		Method: "transfer",
	}, testOperatorID)
	s.Require().NoError(err)

	s.True(updated.NextDueDate.Equal(testYearStart.AddDate(0, 1, 0)),
		"due date advances to the second installment, got %s", updated.NextDueDate)
}

func (s *BillingServiceTestSuite) TestApplyPayment_NonPositiveAmountRejected() {
	billing := s.createBilling()

	_, _, err := s.billingSvc.ApplyPayment(s.ctx, billing.StudentBillingID, dto.ApplyPaymentRequest{
		Amount: decimal.Zero,
		Method: "cash",
	}, testOperatorID)
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (s *BillingServiceTestSuite) TestApplyPayment_OverpaymentLeavesRecordUntouched() {
	billing := s.createBilling()

	_, _, err := s.billingSvc.ApplyPayment(s.ctx, billing.StudentBillingID, dto.ApplyPaymentRequest{
		Amount: decimal.NewFromInt(8000000),
		Method: "cash",
	}, testOperatorID)
	s.ErrorIs(err, apperrors.ErrOverpayment)

	stored, err := s.billingSvc.GetBillingByID(s.ctx, billing.StudentBillingID)
	s.Require().NoError(err)
	s.True(stored.PaidAmount.IsZero())
	s.True(stored.OutstandingAmount.Equal(decimal.NewFromInt(7800000)))
	s.Empty(stored.PaymentHistory)
}

func (s *BillingServiceTestSuite) TestApplyPayment_FullSettlement() {
	billing := s.createBilling()

	updated, _, err := s.billingSvc.ApplyPayment(s.ctx, billing.StudentBillingID, dto.ApplyPaymentRequest{
		Amount: decimal.NewFromInt(7800000),
		Method: "transfer",
	}, testOperatorID)
	s.Require().NoError(err)

	s.True(updated.OutstandingAmount.IsZero())
	s.Equal(domain.BillingPaid, updated.Status)
}

func (s *BillingServiceTestSuite) TestApplyDiscount() {
	billing := s.createBilling()

	updated, err := s.billingSvc.ApplyDiscount(s.ctx, billing.StudentBillingID, dto.ApplyDiscountRequest{
		Amount: decimal.NewFromInt(300000),
		Reason: "beasiswa prestasi",
	}, testOperatorID)
	s.Require().NoError(err)

	s.True(updated.DiscountAmount.Equal(decimal.NewFromInt(300000)))
	s.True(updated.OutstandingAmount.Equal(decimal.NewFromInt(7500000)))
	s.Contains(updated.SpecialNotes, "discount: beasiswa prestasi")
}

func (s *BillingServiceTestSuite) TestApplyDiscount_ExceedingOutstandingRejected() {
	billing := s.createBilling()

	_, err := s.billingSvc.ApplyDiscount(s.ctx, billing.StudentBillingID, dto.ApplyDiscountRequest{
		Amount: decimal.NewFromInt(9000000),
		Reason: "keringanan penuh",
	}, testOperatorID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *BillingServiceTestSuite) TestAssessLateFee() {
	billing := s.createBilling()

	// Past the due date.
	s.now = time.Date(2024, 7, 20, 9, 0, 0, 0, time.UTC)

	updated, err := s.billingSvc.AssessLateFee(s.ctx, billing.StudentBillingID, testOperatorID)
	s.Require().NoError(err)

	// 5% of the 7,800,000 outstanding.
	s.True(updated.LateFeeAmount.Equal(decimal.NewFromInt(390000)))
	s.True(updated.OutstandingAmount.Equal(decimal.NewFromInt(8190000)))
	s.Require().NotNil(updated.LateFeeAssessedAt)
	s.True(updated.LateFeeAssessedAt.Equal(testYearStart))
}

func (s *BillingServiceTestSuite) TestAssessLateFee_OncePerDueDate() {
	billing := s.createBilling()
	s.now = time.Date(2024, 7, 20, 9, 0, 0, 0, time.UTC)

	_, err := s.billingSvc.AssessLateFee(s.ctx, billing.StudentBillingID, testOperatorID)
	s.Require().NoError(err)

	_, err = s.billingSvc.AssessLateFee(s.ctx, billing.StudentBillingID, testOperatorID)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *BillingServiceTestSuite) TestAssessLateFee_NotOverdueRejected() {
	billing := s.createBilling()

	_, err := s.billingSvc.AssessLateFee(s.ctx, billing.StudentBillingID, testOperatorID)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *BillingServiceTestSuite) TestRefreshStatuses() {
	billing := s.createBilling()
	s.Equal(domain.BillingCurrent, billing.Status)

	// Past the due date but within the 10 day grace window.
	s.now = time.Date(2024, 7, 5, 9, 0, 0, 0, time.UTC)

	changed, err := s.billingSvc.RefreshStatuses(s.ctx, testOperatorID)
	s.Require().NoError(err)
	s.Equal(1, changed)

	stored, err := s.billingSvc.GetBillingByID(s.ctx, billing.StudentBillingID)
	s.Require().NoError(err)
	s.Equal(domain.BillingOverdue, stored.Status)

	changed, err = s.billingSvc.RefreshStatuses(s.ctx, testOperatorID)
	s.Require().NoError(err)
	s.Equal(0, changed, "second run finds nothing to change")
}

func (s *BillingServiceTestSuite) TestGetBillingByStudent() {
	billing := s.createBilling()

	found, err := s.billingSvc.GetBillingByStudent(s.ctx, testStudentID, testYearID)
	s.Require().NoError(err)
	s.Equal(billing.StudentBillingID, found.StudentBillingID)

	_, err = s.billingSvc.GetBillingByStudent(s.ctx, "unknown", testYearID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestBillingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BillingServiceTestSuite))
}
