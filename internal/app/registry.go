package app

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"go-hiring/internal/employee"
	"go-hiring/internal/messaging/kafka"
	"go-hiring/internal/middleware"
	"go-hiring/internal/notification"
	"go-hiring/internal/onboarding"
	"go-hiring/internal/profile"
	"go-hiring/internal/rbac"
	"go-hiring/internal/shared/audit"
	"go-hiring/internal/shared/config"
	"go-hiring/internal/storage"
	"go-hiring/internal/visa"
	"go-hiring/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	auditLogger := audit.NewZapLogger(logger)

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer(rbac.DefaultPolicies...)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Collaborators ---
	files, err := storage.NewLocalStorage(cfg.Storage.Dir, cfg.Storage.BaseURL, cfg.Storage.MaxBytes, logger)
	if err != nil {
		return err
	}
	notifier := NewNotifier(cfg.SMTP, logger)
	policy := workflow.Policy{AllowResubmitAfterApproval: cfg.Workflow.AllowResubmitAfterApproval}

	// --- Services ---
	onboardingService := onboarding.NewService(db, employeeRepo, outboxRepo, auditLogger, policy, logger)
	visaService := visa.NewService(db, employeeRepo, outboxRepo, files, notifier, auditLogger, logger)
	profileService := profile.NewService(db, employeeRepo, auditLogger, logger)

	// --- Handlers ---
	onboardingHandler := onboarding.NewHandler(onboardingService, logger)
	visaHandler := visa.NewHandler(visaService, logger)
	profileHandler := profile.NewHandler(profileService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Middleware ---
	auth := middleware.AuthMiddleware(cfg.JWTSecret)
	writeGuards := []gin.HandlerFunc{
		middleware.RateLimitByUser(rate.Every(time.Second), 5),
		middleware.Idempotency(rdb, logger),
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	if strings.HasPrefix(cfg.Storage.BaseURL, "/") {
		uploads := router.Group(cfg.Storage.BaseURL, auth)
		uploads.Static("/", cfg.Storage.Dir)
	}

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitByIP(rate.Limit(20), 40))
	{
		profile.RegisterRoutes(api, profileHandler, rbacService, auth, logger)
		onboarding.RegisterRoutes(api, onboardingHandler, rbacService, auth, logger, writeGuards...)
		visa.RegisterRoutes(api, visaHandler, rbacService, auth, logger, writeGuards...)
		rbac.RegisterRoutes(api, rbacHandler, auth, logger)
	}

	return nil
}

// NewNotifier picks SMTP delivery when credentials are configured.
func NewNotifier(cfg config.SMTPConfig, logger *zap.Logger) notification.Notifier {
	if !cfg.Enabled() {
		return notification.NewLogNotifier(logger)
	}
	return notification.NewSMTPNotifier(notification.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
	}, logger)
}
