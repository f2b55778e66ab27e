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

// UserRepository is an in-memory operator user store.
type UserRepository struct {
	mu         sync.RWMutex
	users      map[string]domain.User
	byUsername map[string]string
	order      []string
}

var _ repositories.UserRepositoryFacade = (*UserRepository)(nil)

// NewUserRepository creates an empty user store.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:      make(map[string]domain.User),
		byUsername: make(map[string]string),
	}
}

func cloneUser(u domain.User) domain.User {
	if u.LastLoginAt != nil {
		at := *u.LastLoginAt
		u.LastLoginAt = &at
	}
	return u
}

func (r *UserRepository) SaveUser(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.UserID]; exists {
		return fmt.Errorf("%w: user %s", apperrors.ErrDuplicate, user.UserID)
	}
	if _, exists := r.byUsername[user.Username]; exists {
		return fmt.Errorf("%w: username %s", apperrors.ErrDuplicate, user.Username)
	}
	r.users[user.UserID] = cloneUser(user)
	r.byUsername[user.Username] = user.UserID
	r.order = append(r.order, user.UserID)
	return nil
}

func (r *UserRepository) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	clone := cloneUser(user)
	return &clone, nil
}

func (r *UserRepository) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, fmt.Errorf("%w: username %s", apperrors.ErrNotFound, username)
	}
	clone := cloneUser(r.users[id])
	return &clone, nil
}

func (r *UserRepository) ListUsers(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, cloneUser(r.users[id]))
	}
	return users, nil
}

func (r *UserRepository) MarkLastLogin(_ context.Context, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	user.LastLoginAt = &at
	r.users[userID] = user
	return nil
}
