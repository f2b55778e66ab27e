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

type FeeStructureServiceTestSuite struct {
	suite.Suite
	ctx             context.Context
	now             time.Time
	structureRepo   *memory.FeeStructureRepository
	institutionRepo *memory.InstitutionRepository
	yearRepo        *memory.AcademicYearRepository
	service         portssvc.FeeStructureSvcFacade
}

func (s *FeeStructureServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC)

	s.structureRepo = memory.NewFeeStructureRepository()
	s.institutionRepo = memory.NewInstitutionRepository()
	s.yearRepo = memory.NewAcademicYearRepository()

	seedInstitution(s.ctx, s.institutionRepo)
	seedAcademicYear(s.ctx, s.yearRepo)

	s.service = services.NewFeeStructureService(s.structureRepo, s.institutionRepo, s.yearRepo, testLogger(),
		services.WithFeeStructureClock(func() time.Time { return s.now }))
}

func (s *FeeStructureServiceTestSuite) createRequest() dto.CreateFeeStructureRequest {
	return dto.CreateFeeStructureRequest{
		Name:           "Struktur Biaya Kelas X IPA",
		InstitutionID:  testInstitutionID,
		AcademicYearID: testYearID,
		ApplicableFor:  "institution",
		Fees:           demoFeePayload(),
	}
}

func (s *FeeStructureServiceTestSuite) TestCreateFeeStructure_TotalAndSchedule() {
	structure, err := s.service.CreateFeeStructure(s.ctx, s.createRequest(), testOperatorID)
	s.Require().NoError(err)

	s.True(structure.TotalAmount.Equal(decimal.NewFromInt(7800000)),
		"12 months of tuition plus the one-time fees, got %s", structure.TotalAmount)
	s.Require().Len(structure.PaymentSchedule, 12)

	first := structure.PaymentSchedule[0]
	s.Equal(1, first.InstallmentNumber)
	s.True(first.DueDate.Equal(testYearStart))
	s.True(first.Amount.Equal(decimal.NewFromInt(3200000)),
		"first installment carries the one-time fees plus one month of tuition")
	s.Len(first.FeeItemIDs, 4)

	for i, inst := range structure.PaymentSchedule[1:] {
		s.Equal(i+2, inst.InstallmentNumber)
		s.True(inst.DueDate.Equal(testYearStart.AddDate(0, i+1, 0)))
		s.True(inst.Amount.Equal(decimal.NewFromInt(400000)))
		s.Len(inst.FeeItemIDs, 1)
	}

	s.Equal(domain.InstallmentUpcoming, first.Status, "ten days out is still upcoming")
}

func (s *FeeStructureServiceTestSuite) TestCreateFeeStructure_ScheduleStatusWindow() {
	structure, err := s.service.CreateFeeStructure(s.ctx, s.createRequest(), testOperatorID)
	s.Require().NoError(err)

	// Inside the 10 day due window of the first installment.
	s.now = time.Date(2024, 6, 25, 9, 0, 0, 0, time.UTC)
	fetched, err := s.service.GetFeeStructureByID(s.ctx, structure.FeeStructureID)
	s.Require().NoError(err)
	s.Equal(domain.InstallmentDue, fetched.PaymentSchedule[0].Status)
	s.Equal(domain.InstallmentUpcoming, fetched.PaymentSchedule[1].Status)

	// Past the first due date.
	s.now = time.Date(2024, 7, 2, 9, 0, 0, 0, time.UTC)
	fetched, err = s.service.GetFeeStructureByID(s.ctx, structure.FeeStructureID)
	s.Require().NoError(err)
	s.Equal(domain.InstallmentOverdue, fetched.PaymentSchedule[0].Status)
}

func (s *FeeStructureServiceTestSuite) TestCreateFeeStructure_NonPositiveAmountRejected() {
	req := s.createRequest()
	req.Fees[1].Amount = decimal.Zero

	_, err := s.service.CreateFeeStructure(s.ctx, req, testOperatorID)
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (s *FeeStructureServiceTestSuite) TestCreateFeeStructure_RecurringNeedsFrequency() {
	req := s.createRequest()
	req.Fees[0].Frequency = ""

	_, err := s.service.CreateFeeStructure(s.ctx, req, testOperatorID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *FeeStructureServiceTestSuite) TestCreateFeeStructure_TargetRequiredForClassScope() {
	req := s.createRequest()
	req.ApplicableFor = "class"
	req.TargetID = ""

	_, err := s.service.CreateFeeStructure(s.ctx, req, testOperatorID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *FeeStructureServiceTestSuite) TestCreateFeeStructure_UnknownInstitution() {
	req := s.createRequest()
	req.InstitutionID = "unknown"

	_, err := s.service.CreateFeeStructure(s.ctx, req, testOperatorID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *FeeStructureServiceTestSuite) TestCreateFeeStructure_ExcludeOptionalPolicy() {
	svc := services.NewFeeStructureService(s.structureRepo, s.institutionRepo, s.yearRepo, testLogger(),
		services.WithFeeStructureClock(func() time.Time { return s.now }),
		services.WithExcludeOptionalFees(true))

	req := s.createRequest()
	req.Fees = append(req.Fees, dto.FeeItemPayload{
		Name: "Iuran OSIS", Category: "other", Amount: decimal.NewFromInt(100000), IsOptional: true,
	})

	structure, err := svc.CreateFeeStructure(s.ctx, req, testOperatorID)
	s.Require().NoError(err)

	s.True(structure.TotalAmount.Equal(decimal.NewFromInt(7800000)),
		"optional item excluded from the total")
	s.True(structure.PaymentSchedule[0].Amount.Equal(decimal.NewFromInt(3200000)),
		"optional item excluded from the schedule")
}

func (s *FeeStructureServiceTestSuite) TestUpdateFeeStructure_ReplacingFeesRegeneratesSchedule() {
	structure, err := s.service.CreateFeeStructure(s.ctx, s.createRequest(), testOperatorID)
	s.Require().NoError(err)

	updated, err := s.service.UpdateFeeStructure(s.ctx, structure.FeeStructureID, dto.UpdateFeeStructureRequest{
		Fees: []dto.FeeItemPayload{
			{Name: "SPP Bulanan", Category: "tuition", Amount: decimal.NewFromInt(500000), IsRecurring: true, Frequency: "monthly"},
		},
	}, testOperatorID)
	s.Require().NoError(err)

	s.True(updated.TotalAmount.Equal(decimal.NewFromInt(6000000)))
	s.Require().Len(updated.PaymentSchedule, 12)
	s.True(updated.PaymentSchedule[0].Amount.Equal(decimal.NewFromInt(500000)))
	s.True(updated.PaymentSchedule[11].Amount.Equal(decimal.NewFromInt(500000)))
}

func (s *FeeStructureServiceTestSuite) TestListFeeStructures_FilterByInstitution() {
	_, err := s.service.CreateFeeStructure(s.ctx, s.createRequest(), testOperatorID)
	s.Require().NoError(err)

	structures, err := s.service.ListFeeStructures(s.ctx, testInstitutionID)
	s.Require().NoError(err)
	s.Len(structures, 1)

	structures, err = s.service.ListFeeStructures(s.ctx, "other-institution")
	s.Require().NoError(err)
	s.Empty(structures)
}

func (s *FeeStructureServiceTestSuite) TestDeleteFeeStructure() {
	structure, err := s.service.CreateFeeStructure(s.ctx, s.createRequest(), testOperatorID)
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteFeeStructure(s.ctx, structure.FeeStructureID, testOperatorID))

	_, err = s.service.GetFeeStructureByID(s.ctx, structure.FeeStructureID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	s.ErrorIs(s.service.DeleteFeeStructure(s.ctx, structure.FeeStructureID, testOperatorID), apperrors.ErrNotFound)
}

func TestFeeStructureServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FeeStructureServiceTestSuite))
}
