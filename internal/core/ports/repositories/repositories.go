package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AcademicYearRepo AcademicYearRepositoryFacade
	InstitutionRepo  InstitutionRepositoryFacade
	ClassroomRepo    ClassroomRepositoryFacade
	StudentRepo      StudentRepositoryFacade
	FeeStructureRepo FeeStructureRepositoryFacade
	BillingRepo      BillingRepositoryFacade
	UserRepo         UserRepositoryFacade
}
