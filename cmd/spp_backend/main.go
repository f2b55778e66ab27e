package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sekolahpay/spp_billing_app/internal/core/services"
	"github.com/sekolahpay/spp_billing_app/internal/handlers"
	"github.com/sekolahpay/spp_billing_app/internal/middleware"
	"github.com/sekolahpay/spp_billing_app/internal/platform/config"
	"github.com/sekolahpay/spp_billing_app/internal/platform/seed"
	"github.com/sekolahpay/spp_billing_app/internal/repositories/memory"
)

// @title SPP Billing Backend API
// @version 1.0
// @description School fee billing backend: academic years, institutions, classes, students, fee structures, billing ledger, payments, and reports.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(logger)
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := memory.NewRepositoryProvider()
	serviceContainer := services.NewServiceContainer(repos, cfg, logger)

	if cfg.SeedDemoData {
		if err := seed.Run(context.Background(), serviceContainer, logger); err != nil {
			logger.Error("Failed to seed demo data", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if limiterMw, err := middleware.NewRateLimiter(cfg.RateLimit, logger); err == nil {
		r.Use(limiterMw)
	} else {
		logger.Error("Failed to build rate limiter, continuing without", slog.String("error", err.Error()))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, logger)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
