package services

import (
	"log/slog"

	"github.com/sekolahpay/spp_billing_app/internal/core/ports/repositories"
	ports "github.com/sekolahpay/spp_billing_app/internal/core/ports/services"
	"github.com/sekolahpay/spp_billing_app/internal/platform/config"
)

// NewServiceContainer wires every service with its repositories.
func NewServiceContainer(repos *repositories.RepositoryProvider, cfg *config.Config, logger *slog.Logger) *ports.ServiceContainer {
	return &ports.ServiceContainer{
		AcademicYear: NewAcademicYearService(repos.AcademicYearRepo, repos.BillingRepo, logger),
		Institution:  NewInstitutionService(repos.InstitutionRepo, repos.ClassroomRepo, logger),
		Classroom:    NewClassroomService(repos.ClassroomRepo, repos.InstitutionRepo, repos.AcademicYearRepo, repos.StudentRepo, logger),
		Student:      NewStudentService(repos.StudentRepo, repos.ClassroomRepo, repos.BillingRepo, logger),
		FeeStructure: NewFeeStructureService(repos.FeeStructureRepo, repos.InstitutionRepo, repos.AcademicYearRepo, logger,
			WithExcludeOptionalFees(cfg.ExcludeOptionalFees)),
		Billing:   NewBillingService(repos.BillingRepo, repos.StudentRepo, repos.FeeStructureRepo, repos.InstitutionRepo, logger),
		Reporting: NewReportingService(repos.BillingRepo, repos.StudentRepo, repos.InstitutionRepo, logger),
		User:      NewUserService(repos.UserRepo, logger),
	}
}
