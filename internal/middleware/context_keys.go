package middleware

import "context"

type userIDCtxKeyType struct{}
type userRoleCtxKeyType struct{}

var (
	userIDCtxKey   = userIDCtxKeyType{}
	userRoleCtxKey = userRoleCtxKeyType{}
)

// Gin context keys mirroring the request-context values, for handlers.
const (
	UserIDKey   = "userID"
	UserRoleKey = "userRole"
)

// GetUserIDFromContext retrieves the authenticated user's id from the context.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDCtxKey).(string)
	return userID, ok && userID != ""
}

// GetUserRoleFromContext retrieves the authenticated user's role from the context.
func GetUserRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(userRoleCtxKey).(string)
	return role, ok && role != ""
}
