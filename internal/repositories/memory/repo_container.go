package memory

import "github.com/sekolahpay/spp_billing_app/internal/core/ports/repositories"

// NewRepositoryProvider wires every in-memory repository.
func NewRepositoryProvider() *repositories.RepositoryProvider {
	return &repositories.RepositoryProvider{
		AcademicYearRepo: NewAcademicYearRepository(),
		InstitutionRepo:  NewInstitutionRepository(),
		ClassroomRepo:    NewClassroomRepository(),
		StudentRepo:      NewStudentRepository(),
		FeeStructureRepo: NewFeeStructureRepository(),
		BillingRepo:      NewBillingRepository(),
		UserRepo:         NewUserRepository(),
	}
}
