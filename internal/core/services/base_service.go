package services

import (
	"context"
	"log/slog"

	"github.com/sekolahpay/spp_billing_app/internal/middleware"
)

// BaseService provides common functionality for all services.
type BaseService struct {
	logger *slog.Logger
}

// NewBaseService creates a new BaseService with the given logger.
func NewBaseService(logger *slog.Logger) *BaseService {
	return &BaseService{logger: logger}
}

// GetLogger returns the request-scoped logger from the context when one was
// attached by the logging middleware, falling back to the service logger.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	if ctxLogger, ok := middleware.LoggerFromCtx(ctx); ok {
		return ctxLogger
	}
	return s.logger
}

// LogError logs an error message with the context-aware logger.
func (s *BaseService) LogError(ctx context.Context, msg string, args ...any) {
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with the context-aware logger.
func (s *BaseService) LogInfo(ctx context.Context, msg string, args ...any) {
	s.GetLogger(ctx).Info(msg, args...)
}

// LogDebug logs a debug message with the context-aware logger.
func (s *BaseService) LogDebug(ctx context.Context, msg string, args ...any) {
	s.GetLogger(ctx).Debug(msg, args...)
}

// LogWarn logs a warning message with the context-aware logger.
func (s *BaseService) LogWarn(ctx context.Context, msg string, args ...any) {
	s.GetLogger(ctx).Warn(msg, args...)
}
