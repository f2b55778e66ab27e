package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/sekolahpay/spp_billing_app/internal/apperrors"
	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/core/ports/repositories"
)

// FeeStructureRepository is an in-memory fee structure store.
type FeeStructureRepository struct {
	mu         sync.RWMutex
	structures map[string]domain.FeeStructure
	order      []string
}

var _ repositories.FeeStructureRepositoryFacade = (*FeeStructureRepository)(nil)

// NewFeeStructureRepository creates an empty fee structure store.
func NewFeeStructureRepository() *FeeStructureRepository {
	return &FeeStructureRepository{structures: make(map[string]domain.FeeStructure)}
}

// cloneFeeStructure deep-copies the slices so callers never alias the store.
func cloneFeeStructure(fs domain.FeeStructure) domain.FeeStructure {
	fs.Fees = append([]domain.FeeItem(nil), fs.Fees...)
	schedule := make([]domain.PaymentScheduleInstallment, len(fs.PaymentSchedule))
	for i, inst := range fs.PaymentSchedule {
		inst.FeeItemIDs = append([]string(nil), inst.FeeItemIDs...)
		schedule[i] = inst
	}
	fs.PaymentSchedule = schedule
	return fs
}

func (r *FeeStructureRepository) SaveFeeStructure(_ context.Context, structure domain.FeeStructure) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.structures[structure.FeeStructureID]; exists {
		return fmt.Errorf("%w: fee structure %s", apperrors.ErrDuplicate, structure.FeeStructureID)
	}
	r.structures[structure.FeeStructureID] = cloneFeeStructure(structure)
	r.order = append(r.order, structure.FeeStructureID)
	return nil
}

func (r *FeeStructureRepository) FindFeeStructureByID(_ context.Context, structureID string) (*domain.FeeStructure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	structure, ok := r.structures[structureID]
	if !ok {
		return nil, fmt.Errorf("%w: fee structure %s", apperrors.ErrNotFound, structureID)
	}
	clone := cloneFeeStructure(structure)
	return &clone, nil
}

func (r *FeeStructureRepository) ListFeeStructures(_ context.Context) ([]domain.FeeStructure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	structures := make([]domain.FeeStructure, 0, len(r.order))
	for _, id := range r.order {
		structures = append(structures, cloneFeeStructure(r.structures[id]))
	}
	return structures, nil
}

func (r *FeeStructureRepository) ListFeeStructuresByInstitution(_ context.Context, institutionID string) ([]domain.FeeStructure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	structures := make([]domain.FeeStructure, 0)
	for _, id := range r.order {
		if r.structures[id].InstitutionID == institutionID {
			structures = append(structures, cloneFeeStructure(r.structures[id]))
		}
	}
	return structures, nil
}

func (r *FeeStructureRepository) UpdateFeeStructure(_ context.Context, structure domain.FeeStructure) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.structures[structure.FeeStructureID]; !ok {
		return fmt.Errorf("%w: fee structure %s", apperrors.ErrNotFound, structure.FeeStructureID)
	}
	r.structures[structure.FeeStructureID] = cloneFeeStructure(structure)
	return nil
}

func (r *FeeStructureRepository) DeleteFeeStructure(_ context.Context, structureID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.structures[structureID]; !ok {
		return fmt.Errorf("%w: fee structure %s", apperrors.ErrNotFound, structureID)
	}
	delete(r.structures, structureID)
	for i, id := range r.order {
		if id == structureID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
