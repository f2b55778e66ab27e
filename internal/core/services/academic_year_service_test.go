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

type AcademicYearServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	now         time.Time
	billingRepo *memory.BillingRepository
	service     portssvc.AcademicYearSvcFacade
}

func (s *AcademicYearServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC)

	yearRepo := memory.NewAcademicYearRepository()
	s.billingRepo = memory.NewBillingRepository()
	s.service = services.NewAcademicYearService(yearRepo, s.billingRepo, testLogger(),
		services.WithAcademicYearClock(func() time.Time { return s.now }))
}

func (s *AcademicYearServiceTestSuite) createYear(name string, start, end time.Time) *domain.AcademicYear {
	year, err := s.service.CreateAcademicYear(s.ctx, dto.CreateAcademicYearRequest{
		Name:      name,
		StartDate: start,
		EndDate:   end,
	}, testOperatorID)
	s.Require().NoError(err)
	return year
}

func (s *AcademicYearServiceTestSuite) TestCreateAcademicYear_StatusFromStartDate() {
	past := s.createYear("2023/2024",
		time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
	s.Equal(domain.YearInactive, past.Status, "already started years are not auto-activated")

	future := s.createYear("2024/2025", testYearStart, testYearEnd)
	s.Equal(domain.YearUpcoming, future.Status)
}

func (s *AcademicYearServiceTestSuite) TestCreateAcademicYear_InvalidRange() {
	_, err := s.service.CreateAcademicYear(s.ctx, dto.CreateAcademicYearRequest{
		Name:      "2024/2025",
		StartDate: testYearEnd,
		EndDate:   testYearStart,
	}, testOperatorID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AcademicYearServiceTestSuite) TestActivate_SingleActiveInvariant() {
	first := s.createYear("2023/2024",
		time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
	second := s.createYear("2024/2025", testYearStart, testYearEnd)

	_, err := s.service.ActivateAcademicYear(s.ctx, first.AcademicYearID, testOperatorID)
	s.Require().NoError(err)

	activated, err := s.service.ActivateAcademicYear(s.ctx, second.AcademicYearID, testOperatorID)
	s.Require().NoError(err)
	s.Equal(domain.YearActive, activated.Status)

	former, err := s.service.GetAcademicYearByID(s.ctx, first.AcademicYearID)
	s.Require().NoError(err)
	s.Equal(domain.YearInactive, former.Status, "activating one year deactivates the rest")

	current, err := s.service.CurrentAcademicYear(s.ctx)
	s.Require().NoError(err)
	s.Equal(second.AcademicYearID, current.AcademicYearID)
}

func (s *AcademicYearServiceTestSuite) TestActivate_UnknownYear() {
	_, err := s.service.ActivateAcademicYear(s.ctx, "unknown", testOperatorID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AcademicYearServiceTestSuite) TestCurrentAcademicYear_NoneActive() {
	s.createYear("2024/2025", testYearStart, testYearEnd)

	_, err := s.service.CurrentAcademicYear(s.ctx)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AcademicYearServiceTestSuite) TestDeleteAcademicYear_GuardedByBillingRecords() {
	year := s.createYear("2024/2025", testYearStart, testYearEnd)

	err := s.billingRepo.SaveBilling(s.ctx, domain.StudentBilling{
		StudentBillingID:  "bill-1",
		StudentID:         testStudentID,
		InstitutionID:     testInstitutionID,
		AcademicYearID:    year.AcademicYearID,
		TotalFees:         decimal.NewFromInt(7800000),
		OutstandingAmount: decimal.NewFromInt(7800000),
	})
	s.Require().NoError(err)

	s.ErrorIs(s.service.DeleteAcademicYear(s.ctx, year.AcademicYearID, testOperatorID), apperrors.ErrConflict)

	// Still there.
	_, err = s.service.GetAcademicYearByID(s.ctx, year.AcademicYearID)
	s.Require().NoError(err)
}

func (s *AcademicYearServiceTestSuite) TestDeleteAcademicYear_Unreferenced() {
	year := s.createYear("2024/2025", testYearStart, testYearEnd)

	s.Require().NoError(s.service.DeleteAcademicYear(s.ctx, year.AcademicYearID, testOperatorID))

	_, err := s.service.GetAcademicYearByID(s.ctx, year.AcademicYearID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AcademicYearServiceTestSuite) TestUpdateAcademicYear() {
	year := s.createYear("2024/2025", testYearStart, testYearEnd)

	newName := "TA 2024/2025"
	updated, err := s.service.UpdateAcademicYear(s.ctx, year.AcademicYearID, dto.UpdateAcademicYearRequest{
		Name: &newName,
	}, testOperatorID)
	s.Require().NoError(err)
	s.Equal(newName, updated.Name)

	badEnd := testYearStart.AddDate(0, -1, 0)
	_, err = s.service.UpdateAcademicYear(s.ctx, year.AcademicYearID, dto.UpdateAcademicYearRequest{
		EndDate: &badEnd,
	}, testOperatorID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func TestAcademicYearServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AcademicYearServiceTestSuite))
}
