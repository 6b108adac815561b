package employee

import (
	"context"
	"database/sql"
	"strings"

	employeeerrors "go-hiring/internal/employee/errors"
	"go-hiring/internal/shared/apperror"
	"go-hiring/internal/shared/contextutil"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Provision(ctx context.Context, req ProvisionRequest) (AccountResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		validate: apperror.NewValidator(),
		logger:   l,
	}
}

// Provision creates the aggregate for a newly registered account. The
// caller treats a duplicate as already done.
func (s *service) Provision(ctx context.Context, req ProvisionRequest) (AccountResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	s.logger.Debug("provision employee requested",
		zap.String("request_id", rid),
		zap.String("user_id", req.UserID),
		zap.String("username", req.Username),
	)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("provision employee validation failed", zap.Error(err))
		return AccountResponse{}, apperror.MapValidationError(err)
	}

	id, err := uuid.Parse(req.UserID)
	if err != nil {
		return AccountResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("provision employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AccountResponse{}, err
	}
	defer tx.Rollback()

	empl := New(id, req.Username, req.Email, Role(req.Role))
	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Error("provision employee persist failed", zap.String("user_id", req.UserID), zap.Error(err))
		return AccountResponse{}, MapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("provision employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return AccountResponse{}, err
	}

	s.logger.Info("provision employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)
	return MapToAccountResponse(*empl), nil
}

func MapToAccountResponse(empl Employee) AccountResponse {
	return AccountResponse{
		ID:               empl.ID.String(),
		Username:         empl.Username,
		Email:            empl.Email,
		Role:             string(empl.Role),
		OnboardingStatus: string(empl.Onboarding.Status),
		VisaStep:         string(empl.Visa.CurrentStep),
	}
}
