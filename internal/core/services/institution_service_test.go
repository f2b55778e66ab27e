package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sekolahpay/spp_billing_app/internal/apperrors"
	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	portssvc "github.com/sekolahpay/spp_billing_app/internal/core/ports/services"
	"github.com/sekolahpay/spp_billing_app/internal/core/services"
	"github.com/sekolahpay/spp_billing_app/internal/dto"
	"github.com/sekolahpay/spp_billing_app/internal/repositories/memory"
)

type InstitutionServiceTestSuite struct {
	suite.Suite
	ctx           context.Context
	classroomRepo *memory.ClassroomRepository
	service       portssvc.InstitutionSvcFacade
}

func (s *InstitutionServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.classroomRepo = memory.NewClassroomRepository()
	s.service = services.NewInstitutionService(memory.NewInstitutionRepository(), s.classroomRepo, testLogger())
}

func (s *InstitutionServiceTestSuite) TestCreateInstitution_DefaultSettings() {
	institution, err := s.service.CreateInstitution(s.ctx, dto.CreateInstitutionRequest{
		Name: "SMA Negeri 1 Jakarta",
		Code: "SMAN1JKT",
	}, testOperatorID)
	s.Require().NoError(err)

	s.Equal("IDR", institution.Settings.Currency)
	s.Equal("Asia/Jakarta", institution.Settings.Timezone)
	s.Equal(7, institution.Settings.AcademicYearStart)
	s.Equal(10, institution.Settings.PaymentDueDays)
	s.Equal(5, institution.Settings.LateFeePercentage)
	s.Equal(domain.StatusActive, institution.Status)
}

func (s *InstitutionServiceTestSuite) TestCreateInstitution_SettingsOverrideDefaults() {
	institution, err := s.service.CreateInstitution(s.ctx, dto.CreateInstitutionRequest{
		Name: "SMA Negeri 2 Jakarta",
		Code: "SMAN2JKT",
		Settings: &dto.InstitutionSettingsPayload{
			PaymentDueDays:    15,
			LateFeePercentage: 3,
		},
	}, testOperatorID)
	s.Require().NoError(err)

	s.Equal(15, institution.Settings.PaymentDueDays)
	s.Equal(3, institution.Settings.LateFeePercentage)
	s.Equal("IDR", institution.Settings.Currency, "unset fields keep their defaults")
}

func (s *InstitutionServiceTestSuite) TestDeleteInstitution_GuardedByClassrooms() {
	institution, err := s.service.CreateInstitution(s.ctx, dto.CreateInstitutionRequest{
		Name: "SMA Negeri 1 Jakarta",
		Code: "SMAN1JKT",
	}, testOperatorID)
	s.Require().NoError(err)

	s.Require().NoError(s.classroomRepo.SaveClassroom(s.ctx, domain.Classroom{
		ClassroomID:    "class-1",
		Name:           "X IPA 1",
		Code:           "X-IPA-1",
		InstitutionID:  institution.InstitutionID,
		AcademicYearID: testYearID,
		Status:         domain.StatusActive,
	}))

	s.ErrorIs(s.service.DeleteInstitution(s.ctx, institution.InstitutionID, testOperatorID), apperrors.ErrConflict)
}

func (s *InstitutionServiceTestSuite) TestDeleteInstitution_Empty() {
	institution, err := s.service.CreateInstitution(s.ctx, dto.CreateInstitutionRequest{
		Name: "SMA Negeri 1 Jakarta",
		Code: "SMAN1JKT",
	}, testOperatorID)
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteInstitution(s.ctx, institution.InstitutionID, testOperatorID))

	_, err = s.service.GetInstitutionByID(s.ctx, institution.InstitutionID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestInstitutionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InstitutionServiceTestSuite))
}
