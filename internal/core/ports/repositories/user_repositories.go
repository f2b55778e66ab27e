package repositories

import (
	"context"
	"time"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
)

// UserRepositoryFacade defines persistence operations for operator users.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	MarkLastLogin(ctx context.Context, userID string, at time.Time) error
}
