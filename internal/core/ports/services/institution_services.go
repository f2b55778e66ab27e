package services

import (
	"context"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/dto"
)

// InstitutionSvcFacade defines operations for managing institutions.
type InstitutionSvcFacade interface {
	CreateInstitution(ctx context.Context, req dto.CreateInstitutionRequest, creatorUserID string) (*domain.Institution, error)
	GetInstitutionByID(ctx context.Context, institutionID string) (*domain.Institution, error)
	ListInstitutions(ctx context.Context) ([]domain.Institution, error)
	UpdateInstitution(ctx context.Context, institutionID string, req dto.UpdateInstitutionRequest, userID string) (*domain.Institution, error)
	DeleteInstitution(ctx context.Context, institutionID string, userID string) error
}
