package dto

import (
	"time"

	"github.com/sekolahpay/spp_billing_app/internal/core/domain"
)

// CreateUserRequest is the request body for registering an operator account.
type CreateUserRequest struct {
	Username      string `json:"username" binding:"required,min=3,max=30,alphanum"`
	Password      string `json:"password" binding:"required,min=8,max=72"`
	Name          string `json:"name" binding:"required,min=2,max=100"`
	Role          string `json:"role" binding:"required,oneof=admin kasir1 kasir2"`
	InstitutionID string `json:"institutionId"`
	Email         string `json:"email" binding:"omitempty,email"`
}

// UserResponse is the API representation of an operator account.
// The password hash never leaves the domain layer.
type UserResponse struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	InstitutionID string     `json:"institutionId,omitempty"`
	Email         string     `json:"email,omitempty"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ToUserResponse maps a domain user to its API representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:            u.UserID,
		Username:      u.Username,
		Name:          u.Name,
		Role:          string(u.Role),
		InstitutionID: u.InstitutionID,
		Email:         u.Email,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
	}
}

// ToUserResponses maps a slice of domain users.
func ToUserResponses(users []domain.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}
