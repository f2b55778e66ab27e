package dto

// LoginRequest is the request body for operator login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token and the authenticated operator.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
