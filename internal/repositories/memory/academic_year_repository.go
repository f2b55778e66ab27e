// Package memory provides in-memory repository adapters. All state lives in
// process memory guarded by per-store RWMutexes; iteration order follows
// insertion order.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sekolahpay/spp_billing_app/internal/apperrors"
	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/core/ports/repositories"
)

// AcademicYearRepository is an in-memory academic year store.
type AcademicYearRepository struct {
	mu    sync.RWMutex
	years map[string]domain.AcademicYear
	order []string
}

var _ repositories.AcademicYearRepositoryFacade = (*AcademicYearRepository)(nil)

// NewAcademicYearRepository creates an empty academic year store.
func NewAcademicYearRepository() *AcademicYearRepository {
	return &AcademicYearRepository{years: make(map[string]domain.AcademicYear)}
}

func (r *AcademicYearRepository) SaveAcademicYear(_ context.Context, year domain.AcademicYear) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.years[year.AcademicYearID]; exists {
		return fmt.Errorf("%w: academic year %s", apperrors.ErrDuplicate, year.AcademicYearID)
	}
	r.years[year.AcademicYearID] = year
	r.order = append(r.order, year.AcademicYearID)
	return nil
}

func (r *AcademicYearRepository) FindAcademicYearByID(_ context.Context, yearID string) (*domain.AcademicYear, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	year, ok := r.years[yearID]
	if !ok {
		return nil, fmt.Errorf("%w: academic year %s", apperrors.ErrNotFound, yearID)
	}
	return &year, nil
}

func (r *AcademicYearRepository) ListAcademicYears(_ context.Context) ([]domain.AcademicYear, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	years := make([]domain.AcademicYear, 0, len(r.order))
	for _, id := range r.order {
		years = append(years, r.years[id])
	}
	return years, nil
}

func (r *AcademicYearRepository) UpdateAcademicYear(_ context.Context, year domain.AcademicYear) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.years[year.AcademicYearID]; !ok {
		return fmt.Errorf("%w: academic year %s", apperrors.ErrNotFound, year.AcademicYearID)
	}
	r.years[year.AcademicYearID] = year
	return nil
}

func (r *AcademicYearRepository) DeleteAcademicYear(_ context.Context, yearID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.years[yearID]; !ok {
		return fmt.Errorf("%w: academic year %s", apperrors.ErrNotFound, yearID)
	}
	delete(r.years, yearID)
	for i, id := range r.order {
		if id == yearID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *AcademicYearRepository) ActivateAcademicYear(_ context.Context, yearID string, updatedBy string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.years[yearID]; !ok {
		return fmt.Errorf("%w: academic year %s", apperrors.ErrNotFound, yearID)
	}

	// Single atomic sweep keeps the one-active-year invariant.
	for id, year := range r.years {
		if id == yearID {
			year.Status = domain.YearActive
			year.IsDefault = true
		} else {
			if year.Status == domain.YearActive {
				year.Status = domain.YearInactive
			}
			year.IsDefault = false
		}
		year.LastUpdatedAt = updatedAt
		year.LastUpdatedBy = updatedBy
		r.years[id] = year
	}
	return nil
}
