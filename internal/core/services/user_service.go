package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sekolahpay/spp_billing_app/internal/apperrors"
	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
	"github.com/sekolahpay/spp_billing_app/internal/core/ports/repositories"
	ports "github.com/sekolahpay/spp_billing_app/internal/core/ports/services"
	"github.com/sekolahpay/spp_billing_app/internal/dto"
	"github.com/sekolahpay/spp_billing_app/internal/utils"
)

type userService struct {
	*BaseService
	userRepo repositories.UserRepositoryFacade
	now      func() time.Time
}

var _ ports.UserSvcFacade = (*userService)(nil)

// NewUserService creates a new user service.
func NewUserService(userRepo repositories.UserRepositoryFacade, logger *slog.Logger) ports.UserSvcFacade {
	return &userService{
		BaseService: NewBaseService(logger),
		userRepo:    userRepo,
		now:         time.Now,
	}
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	if existing, err := s.userRepo.FindUserByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: username %s taken", apperrors.ErrDuplicate, req.Username)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, "failed to hash password", "error", err)
		return nil, apperrors.ErrInternal
	}

	now := s.now()
	user := domain.User{
		UserID:        uuid.NewString(),
		Username:      req.Username,
		Name:          req.Name,
		Role:          domain.UserRole(req.Role),
		InstitutionID: req.InstitutionID,
		Email:         req.Email,
		PasswordHash:  hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, "failed to save user", "error", err, "username", req.Username)
		return nil, err
	}

	s.LogInfo(ctx, "user created", "user_id", user.UserID, "username", user.Username, "role", user.Role)
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListUsers(ctx)
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same response as a bad password, usernames are not probeable.
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogWarn(ctx, "failed login attempt", "username", username)
		return nil, apperrors.ErrUnauthorized
	}

	now := s.now()
	if err := s.userRepo.MarkLastLogin(ctx, user.UserID, now); err != nil {
		s.LogError(ctx, "failed to mark last login", "error", err, "user_id", user.UserID)
	}
	user.LastLoginAt = &now

	s.LogInfo(ctx, "user authenticated", "user_id", user.UserID, "username", user.Username)
	return user, nil
}
