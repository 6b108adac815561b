package onboarding

import (
	"context"
	"database/sql"
	"time"

	"go-hiring/internal/employee"
	employeeerrors "go-hiring/internal/employee/errors"
	"go-hiring/internal/events"
	"go-hiring/internal/messaging/kafka"
	onboardingerrors "go-hiring/internal/onboarding/errors"
	"go-hiring/internal/shared/audit"
	"go-hiring/internal/shared/contextutil"
	"go-hiring/internal/workflow"
	workflowerrors "go-hiring/internal/workflow/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=onboarding_service.go -destination=mock/onboarding_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actorID string, req SubmitOnboardingRequest) (ApplicationResponse, error)
	GetMine(ctx context.Context, actorID string) (ApplicationResponse, error)
	List(ctx context.Context, status string) ([]ApplicationSummary, error)
	GetApplication(ctx context.Context, employeeID string) (ApplicationResponse, error)
	Decide(ctx context.Context, actorID, employeeID string, req DecideOnboardingRequest) (ApplicationResponse, error)
}

type service struct {
	db         *sql.DB
	repo       employee.Repository
	outboxRepo kafka.OutboxRepository
	audit      audit.Logger
	policy     workflow.Policy
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo employee.Repository,
	outboxRepo kafka.OutboxRepository,
	auditLogger audit.Logger,
	policy workflow.Policy,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("onboarding.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("onboarding.service")
	}
	if auditLogger == nil {
		auditLogger = audit.Nop()
	}
	return &service{
		db:         db,
		repo:       repo,
		outboxRepo: outboxRepo,
		audit:      auditLogger,
		policy:     policy,
		logger:     l,
	}
}

func (s *service) Submit(ctx context.Context, actorID string, req SubmitOnboardingRequest) (ApplicationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit onboarding requested",
		zap.String("request_id", rid),
		zap.String("employee_id", actorID),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return ApplicationResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit onboarding begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, actorID)
	if err != nil {
		return ApplicationResponse{}, employee.MapRepositoryError(err)
	}

	if err := workflow.Submit(empl, req.Form(), s.policy, time.Now().UTC()); err != nil {
		s.logger.Warn("submit onboarding rejected",
			zap.String("employee_id", actorID),
			zap.String("status", string(empl.Onboarding.Status)),
			zap.Error(err),
		)
		return ApplicationResponse{}, err
	}

	if err := qtx.Save(ctx, empl); err != nil {
		s.logger.Error("submit onboarding persist failed", zap.String("employee_id", actorID), zap.Error(err))
		return ApplicationResponse{}, employee.MapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit onboarding commit failed", zap.String("request_id", rid), zap.Error(err))
		return ApplicationResponse{}, err
	}

	s.logger.Info("submit onboarding success",
		zap.String("request_id", rid),
		zap.String("employee_id", actorID),
		zap.Bool("opt_required", empl.Visa.OptRequired),
	)
	return MapToApplicationResponse(empl), nil
}

func (s *service) GetMine(ctx context.Context, actorID string) (ApplicationResponse, error) {
	empl, err := s.load(ctx, actorID)
	if err != nil {
		return ApplicationResponse{}, err
	}
	return MapToApplicationResponse(empl), nil
}

// List filters by onboarding status; an empty status lists every employee.
func (s *service) List(ctx context.Context, status string) ([]ApplicationSummary, error) {
	st := employee.OnboardingStatus(status)
	switch st {
	case "", employee.OnboardingPending, employee.OnboardingApproved, employee.OnboardingRejected:
	default:
		s.logger.Warn("list onboarding invalid status filter", zap.String("status", status))
		return nil, onboardingerrors.ErrInvalidStatusFilter
	}

	empls, err := s.repo.FindByOnboardingStatus(ctx, st)
	if err != nil {
		s.logger.Error("list onboarding failed", zap.String("status", status), zap.Error(err))
		return nil, err
	}

	out := make([]ApplicationSummary, 0, len(empls))
	for i := range empls {
		out = append(out, MapToApplicationSummary(&empls[i]))
	}
	return out, nil
}

func (s *service) GetApplication(ctx context.Context, employeeID string) (ApplicationResponse, error) {
	empl, err := s.load(ctx, employeeID)
	if err != nil {
		return ApplicationResponse{}, err
	}
	if err := employee.RequireEmployee(empl); err != nil {
		return ApplicationResponse{}, err
	}
	if empl.Onboarding.FormData == nil {
		return ApplicationResponse{}, workflowerrors.ErrApplicationNotSubmitted
	}
	return MapToApplicationResponse(empl), nil
}

func (s *service) load(ctx context.Context, employeeID string) (*employee.Employee, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, employee.MapRepositoryError(err)
	}
	return empl, nil
}

func (s *service) Decide(ctx context.Context, actorID, employeeID string, req DecideOnboardingRequest) (ApplicationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide onboarding requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("employee_id", employeeID),
		zap.String("status", req.Status),
	)

	reviewer, err := uuid.Parse(actorID)
	if err != nil {
		return ApplicationResponse{}, onboardingerrors.ErrInvalidReviewer
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return ApplicationResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide onboarding begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, employeeID)
	if err != nil {
		return ApplicationResponse{}, employee.MapRepositoryError(err)
	}
	if err := employee.RequireEmployee(empl); err != nil {
		return ApplicationResponse{}, err
	}

	now := time.Now().UTC()
	if err := workflow.Decide(empl, workflow.Decision(req.Status), req.Feedback, reviewer, now); err != nil {
		s.logger.Warn("decide onboarding rejected",
			zap.String("employee_id", employeeID),
			zap.String("from_status", string(empl.Onboarding.Status)),
			zap.String("to_status", req.Status),
			zap.Error(err),
		)
		return ApplicationResponse{}, err
	}

	if err := qtx.Save(ctx, empl); err != nil {
		s.logger.Error("decide onboarding persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return ApplicationResponse{}, employee.MapRepositoryError(err)
	}

	feedback := ""
	if empl.Onboarding.Feedback != nil {
		feedback = *empl.Onboarding.Feedback
	}
	outboxEvent, err := kafka.NewOutboxEvent(rid, "employee", employeeID,
		events.OnboardingDecidedEventType, events.OnboardingDecidedTopic,
		events.OnboardingDecidedEvent{
			EventType:  events.OnboardingDecidedEventType,
			RequestID:  rid,
			EmployeeID: employeeID,
			Email:      empl.Email,
			Name:       empl.LegalName(),
			Status:     req.Status,
			Feedback:   feedback,
			OccurredAt: now,
		})
	if err != nil {
		return ApplicationResponse{}, err
	}
	if err := s.outboxRepo.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("decide onboarding outbox persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return ApplicationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide onboarding commit failed", zap.String("request_id", rid), zap.Error(err))
		return ApplicationResponse{}, err
	}

	s.audit.Log(ctx, audit.Entry{
		Action:  "onboarding." + req.Status,
		ActorID: actorID,
		Target:  employeeID,
		Message: "onboarding application " + req.Status,
		Meta:    map[string]any{"feedback": feedback},
	})
	s.logger.Info("decide onboarding success",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("status", req.Status),
	)
	return MapToApplicationResponse(empl), nil
}
