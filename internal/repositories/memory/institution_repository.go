package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/sekolahpay/spp_billing_app/internal/apperrors"
	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/core/ports/repositories"
)

// InstitutionRepository is an in-memory institution store.
type InstitutionRepository struct {
	mu           sync.RWMutex
	institutions map[string]domain.Institution
	order        []string
}

var _ repositories.InstitutionRepositoryFacade = (*InstitutionRepository)(nil)

// NewInstitutionRepository creates an empty institution store.
func NewInstitutionRepository() *InstitutionRepository {
	return &InstitutionRepository{institutions: make(map[string]domain.Institution)}
}

func (r *InstitutionRepository) SaveInstitution(_ context.Context, institution domain.Institution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.institutions[institution.InstitutionID]; exists {
		return fmt.Errorf("%w: institution %s", apperrors.ErrDuplicate, institution.InstitutionID)
	}
	for _, existing := range r.institutions {
		if existing.Code == institution.Code {
			return fmt.Errorf("%w: institution code %s", apperrors.ErrDuplicate, institution.Code)
		}
	}
	r.institutions[institution.InstitutionID] = institution
	r.order = append(r.order, institution.InstitutionID)
	return nil
}

func (r *InstitutionRepository) FindInstitutionByID(_ context.Context, institutionID string) (*domain.Institution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	institution, ok := r.institutions[institutionID]
	if !ok {
		return nil, fmt.Errorf("%w: institution %s", apperrors.ErrNotFound, institutionID)
	}
	return &institution, nil
}

func (r *InstitutionRepository) ListInstitutions(_ context.Context) ([]domain.Institution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	institutions := make([]domain.Institution, 0, len(r.order))
	for _, id := range r.order {
		institutions = append(institutions, r.institutions[id])
	}
	return institutions, nil
}

func (r *InstitutionRepository) UpdateInstitution(_ context.Context, institution domain.Institution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.institutions[institution.InstitutionID]; !ok {
		return fmt.Errorf("%w: institution %s", apperrors.ErrNotFound, institution.InstitutionID)
	}
	r.institutions[institution.InstitutionID] = institution
	return nil
}

func (r *InstitutionRepository) DeleteInstitution(_ context.Context, institutionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.institutions[institutionID]; !ok {
		return fmt.Errorf("%w: institution %s", apperrors.ErrNotFound, institutionID)
	}
	delete(r.institutions, institutionID)
	for i, id := range r.order {
		if id == institutionID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
