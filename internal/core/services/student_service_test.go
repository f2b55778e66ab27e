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

type StudentServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	studentRepo *memory.StudentRepository
	billingRepo *memory.BillingRepository
	service     portssvc.StudentSvcFacade
}

func (s *StudentServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.studentRepo = memory.NewStudentRepository()
	s.billingRepo = memory.NewBillingRepository()
	classroomRepo := memory.NewClassroomRepository()

	s.Require().NoError(classroomRepo.SaveClassroom(s.ctx, domain.Classroom{
		ClassroomID:    testClassroomID,
		Name:           "X IPA 1",
		Code:           "X-IPA-1",
		InstitutionID:  testInstitutionID,
		AcademicYearID: testYearID,
		Capacity:       36,
		Status:         domain.StatusActive,
	}))

	s.service = services.NewStudentService(s.studentRepo, classroomRepo, s.billingRepo, testLogger())
}

func (s *StudentServiceTestSuite) enroll(nis, name string) *domain.Student {
	student, err := s.service.CreateStudent(s.ctx, dto.CreateStudentRequest{
		NIS:            nis,
		Name:           name,
		ClassroomID:    testClassroomID,
		InstitutionID:  testInstitutionID,
		AcademicYearID: testYearID,
	}, testOperatorID)
	s.Require().NoError(err)
	return student
}

func (s *StudentServiceTestSuite) TestCreateStudent() {
	student := s.enroll("2021001", "Ahmad Fauzi")

	s.Equal(domain.StatusActive, student.Status)
	s.Equal(testInstitutionID, student.InstitutionID)

	found, err := s.service.GetStudentByID(s.ctx, student.StudentID)
	s.Require().NoError(err)
	s.Equal("2021001", found.NIS)
}

func (s *StudentServiceTestSuite) TestCreateStudent_DuplicateNIS() {
	s.enroll("2021001", "Ahmad Fauzi")

	_, err := s.service.CreateStudent(s.ctx, dto.CreateStudentRequest{
		NIS:            "2021001",
		Name:           "Siti Nurhaliza",
		ClassroomID:    testClassroomID,
		InstitutionID:  testInstitutionID,
		AcademicYearID: testYearID,
	}, testOperatorID)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *StudentServiceTestSuite) TestCreateStudent_ClassroomInstitutionMismatch() {
	_, err := s.service.CreateStudent(s.ctx, dto.CreateStudentRequest{
		NIS:            "2021002",
		Name:           "Siti Nurhaliza",
		ClassroomID:    testClassroomID,
		InstitutionID:  "other-institution",
		AcademicYearID: testYearID,
	}, testOperatorID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *StudentServiceTestSuite) TestListStudents_Filters() {
	s.enroll("2021001", "Ahmad Fauzi")
	s.enroll("2021002", "Siti Nurhaliza")

	students, err := s.service.ListStudents(s.ctx, dto.ListStudentsParams{ClassroomID: testClassroomID})
	s.Require().NoError(err)
	s.Len(students, 2)

	students, err = s.service.ListStudents(s.ctx, dto.ListStudentsParams{Search: "siti"})
	s.Require().NoError(err)
	s.Require().Len(students, 1)
	s.Equal("Siti Nurhaliza", students[0].Name)

	students, err = s.service.ListStudents(s.ctx, dto.ListStudentsParams{Search: "2021001"})
	s.Require().NoError(err)
	s.Require().Len(students, 1, "search also matches the NIS")
	s.Equal("Ahmad Fauzi", students[0].Name)

	students, err = s.service.ListStudents(s.ctx, dto.ListStudentsParams{InstitutionID: "other"})
	s.Require().NoError(err)
	s.Empty(students)
}

func (s *StudentServiceTestSuite) TestDeleteStudent_WithoutBillingRemoves() {
	student := s.enroll("2021001", "Ahmad Fauzi")

	s.Require().NoError(s.service.DeleteStudent(s.ctx, student.StudentID, testOperatorID))

	_, err := s.service.GetStudentByID(s.ctx, student.StudentID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StudentServiceTestSuite) TestDeleteStudent_WithBillingDeactivates() {
	student := s.enroll("2021001", "Ahmad Fauzi")

	s.Require().NoError(s.billingRepo.SaveBilling(s.ctx, domain.StudentBilling{
		StudentBillingID:  "bill-1",
		StudentID:         student.StudentID,
		InstitutionID:     testInstitutionID,
		AcademicYearID:    testYearID,
		TotalFees:         decimal.NewFromInt(7800000),
		OutstandingAmount: decimal.NewFromInt(7800000),
		NextDueDate:       time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	}))

	s.Require().NoError(s.service.DeleteStudent(s.ctx, student.StudentID, testOperatorID))

	kept, err := s.service.GetStudentByID(s.ctx, student.StudentID)
	s.Require().NoError(err, "financial history keeps the student on record")
	s.Equal(domain.StatusInactive, kept.Status)
}

func (s *StudentServiceTestSuite) TestUpdateStudent_UnknownClassroom() {
	student := s.enroll("2021001", "Ahmad Fauzi")

	unknown := "missing-class"
	_, err := s.service.UpdateStudent(s.ctx, student.StudentID, dto.UpdateStudentRequest{
		ClassroomID: &unknown,
	}, testOperatorID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestStudentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StudentServiceTestSuite))
}
