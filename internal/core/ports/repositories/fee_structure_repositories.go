package repositories

import (
	"context"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
)

// FeeStructureRepositoryFacade defines persistence operations for fee structures.
type FeeStructureRepositoryFacade interface {
	SaveFeeStructure(ctx context.Context, structure domain.FeeStructure) error
	FindFeeStructureByID(ctx context.Context, structureID string) (*domain.FeeStructure, error)
	ListFeeStructures(ctx context.Context) ([]domain.FeeStructure, error)
	ListFeeStructuresByInstitution(ctx context.Context, institutionID string) ([]domain.FeeStructure, error)
	UpdateFeeStructure(ctx context.Context, structure domain.FeeStructure) error
	DeleteFeeStructure(ctx context.Context, structureID string) error
}
