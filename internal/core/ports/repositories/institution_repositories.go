package repositories

import (
	"context"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
)

// InstitutionRepositoryFacade defines persistence operations for institutions.
type InstitutionRepositoryFacade interface {
	SaveInstitution(ctx context.Context, institution domain.Institution) error
	FindInstitutionByID(ctx context.Context, institutionID string) (*domain.Institution, error)
	ListInstitutions(ctx context.Context) ([]domain.Institution, error)
	UpdateInstitution(ctx context.Context, institution domain.Institution) error
	DeleteInstitution(ctx context.Context, institutionID string) error
}
