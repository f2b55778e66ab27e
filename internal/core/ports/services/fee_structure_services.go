package services

import (
	"context"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/dto"
)

// FeeStructureSvcFacade defines operations for managing fee structures.
// TotalAmount and the payment schedule are derived on create/update and the
// schedule's installment statuses are refreshed on every read.
type FeeStructureSvcFacade interface {
	CreateFeeStructure(ctx context.Context, req dto.CreateFeeStructureRequest, creatorUserID string) (*domain.FeeStructure, error)
	GetFeeStructureByID(ctx context.Context, structureID string) (*domain.FeeStructure, error)
	ListFeeStructures(ctx context.Context, institutionID string) ([]domain.FeeStructure, error)
	UpdateFeeStructure(ctx context.Context, structureID string, req dto.UpdateFeeStructureRequest, userID string) (*domain.FeeStructure, error)
	DeleteFeeStructure(ctx context.Context, structureID string, userID string) error
}
