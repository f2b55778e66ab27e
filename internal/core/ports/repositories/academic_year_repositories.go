package repositories

import (
	"context"
	"time"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
)

// AcademicYearRepositoryFacade defines persistence operations for academic years.
type AcademicYearRepositoryFacade interface {
	SaveAcademicYear(ctx context.Context, year domain.AcademicYear) error
	FindAcademicYearByID(ctx context.Context, yearID string) (*domain.AcademicYear, error)
	ListAcademicYears(ctx context.Context) ([]domain.AcademicYear, error)
	UpdateAcademicYear(ctx context.Context, year domain.AcademicYear) error
	DeleteAcademicYear(ctx context.Context, yearID string) error

	// ActivateAcademicYear marks the given year active and default, and every
	// other year inactive, as a single atomic state change.
	ActivateAcademicYear(ctx context.Context, yearID string, updatedBy string, updatedAt time.Time) error
}
