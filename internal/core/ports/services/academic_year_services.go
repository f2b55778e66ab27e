package services

import (
	"context"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/dto"
)

// AcademicYearSvcFacade defines operations for managing academic years.
type AcademicYearSvcFacade interface {
	CreateAcademicYear(ctx context.Context, req dto.CreateAcademicYearRequest, creatorUserID string) (*domain.AcademicYear, error)
	GetAcademicYearByID(ctx context.Context, yearID string) (*domain.AcademicYear, error)
	ListAcademicYears(ctx context.Context) ([]domain.AcademicYear, error)
	UpdateAcademicYear(ctx context.Context, yearID string, req dto.UpdateAcademicYearRequest, userID string) (*domain.AcademicYear, error)

	// DeleteAcademicYear removes a year; it fails with ErrConflict while any
	// billing record still references the year.
	DeleteAcademicYear(ctx context.Context, yearID string, userID string) error

	// ActivateAcademicYear makes the year the single active one,
	// deactivating all others.
	ActivateAcademicYear(ctx context.Context, yearID string, userID string) (*domain.AcademicYear, error)

	// CurrentAcademicYear returns the active year, or ErrNotFound when none is active.
	CurrentAcademicYear(ctx context.Context) (*domain.AcademicYear, error)
}
