package profile

import (
	"context"
	"database/sql"
	"strings"

	"go-hiring/internal/employee"
	employeeerrors "go-hiring/internal/employee/errors"
	profileerrors "go-hiring/internal/profile/errors"
	"go-hiring/internal/shared/audit"
	"go-hiring/internal/shared/contextutil"
	"go-hiring/internal/workflow"
	workflowerrors "go-hiring/internal/workflow/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=profile_service.go -destination=mock/profile_service_mock.go -package=mock
type Service interface {
	GetMe(ctx context.Context, actorID string) (MeResponse, error)
	UpdateProfile(ctx context.Context, actorID string, req UpdateProfileRequest) (MeResponse, error)
	ListEmployees(ctx context.Context, search string) ([]EmployeeSummary, error)
	GetEmployee(ctx context.Context, employeeID string) (EmployeeDetailResponse, error)
}

type service struct {
	db     *sql.DB
	repo   employee.Repository
	audit  audit.Logger
	group  singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo employee.Repository, auditLogger audit.Logger, logger ...*zap.Logger) Service {
	l := zap.L().Named("profile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("profile.service")
	}
	if auditLogger == nil {
		auditLogger = audit.Nop()
	}
	return &service{
		db:     db,
		repo:   repo,
		audit:  auditLogger,
		logger: l,
	}
}

func (s *service) load(ctx context.Context, id string) (*employee.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, employee.MapRepositoryError(err)
	}
	return empl, nil
}

func (s *service) GetMe(ctx context.Context, actorID string) (MeResponse, error) {
	empl, err := s.load(ctx, actorID)
	if err != nil {
		return MeResponse{}, err
	}
	return MapToMeResponse(empl), nil
}

func (s *service) UpdateProfile(ctx context.Context, actorID string, req UpdateProfileRequest) (MeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update profile requested",
		zap.String("request_id", rid),
		zap.String("employee_id", actorID),
	)

	if req.empty() {
		return MeResponse{}, profileerrors.ErrEmptyUpdate
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return MeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update profile begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return MeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, actorID)
	if err != nil {
		return MeResponse{}, employee.MapRepositoryError(err)
	}
	if empl.Profile == nil {
		s.logger.Warn("update profile rejected, no approved profile", zap.String("employee_id", actorID))
		return MeResponse{}, workflowerrors.ErrProfileNotAvailable
	}

	updated := empl.Profile.Clone()
	if req.PersonalInfo != nil {
		info := workflow.NormalizePersonalInfo(req.PersonalInfo, empl.Email)
		if info.FirstName == "" || info.LastName == "" {
			return MeResponse{}, workflowerrors.ErrNameRequired
		}
		// the picture is managed through uploads only
		info.ProfilePicture = ""
		if updated.PersonalInfo != nil {
			info.ProfilePicture = updated.PersonalInfo.ProfilePicture
		}
		updated.PersonalInfo = info
	} else if updated.PersonalInfo != nil {
		updated.PersonalInfo.Email = empl.Email
	}
	if req.Address != nil {
		a := *req.Address
		updated.Address = &a
	}
	if req.ContactInfo != nil {
		ci := *req.ContactInfo
		updated.ContactInfo = &ci
	}
	if req.Reference != nil {
		r := *req.Reference
		updated.Reference = &r
	}
	if req.EmergencyContacts != nil {
		updated.EmergencyContacts = append([]employee.Contact(nil), req.EmergencyContacts...)
	}
	employmentChanged := req.Employment != nil
	if employmentChanged {
		updated.Employment = workflow.NormalizeEmployment(req.Employment)
	}

	empl.Profile = updated
	if employmentChanged {
		workflow.SyncVisaWorkflow(empl)
	}

	if err := qtx.Save(ctx, empl); err != nil {
		s.logger.Error("update profile persist failed", zap.String("employee_id", actorID), zap.Error(err))
		return MeResponse{}, employee.MapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update profile commit failed", zap.String("request_id", rid), zap.Error(err))
		return MeResponse{}, err
	}

	if employmentChanged {
		s.audit.Log(ctx, audit.Entry{
			Action:  "profile.employment_updated",
			ActorID: actorID,
			Target:  actorID,
			Message: "employment section changed",
			Meta: map[string]any{
				"work_authorization": string(updated.Employment.WorkAuthorization),
				"opt_required":       empl.Visa.OptRequired,
			},
		})
	}
	s.logger.Info("update profile success",
		zap.String("request_id", rid),
		zap.String("employee_id", actorID),
		zap.Bool("employment_changed", employmentChanged),
	)
	return MapToMeResponse(empl), nil
}

// ListEmployees coalesces identical concurrent searches; results are not cached.
func (s *service) ListEmployees(ctx context.Context, search string) ([]EmployeeSummary, error) {
	term := strings.TrimSpace(search)
	v, err, shared := s.group.Do("search:"+strings.ToLower(term), func() (any, error) {
		empls, err := s.repo.Search(ctx, term)
		if err != nil {
			return nil, err
		}
		out := make([]EmployeeSummary, 0, len(empls))
		for i := range empls {
			out = append(out, MapToEmployeeSummary(&empls[i]))
		}
		return out, nil
	})
	if err != nil {
		s.logger.Error("list employees failed", zap.String("search", term), zap.Error(err))
		return nil, err
	}
	if shared {
		s.logger.Debug("list employees coalesced", zap.String("search", term))
	}

	rows := v.([]EmployeeSummary)
	out := make([]EmployeeSummary, len(rows))
	copy(out, rows)
	return out, nil
}

func (s *service) GetEmployee(ctx context.Context, employeeID string) (EmployeeDetailResponse, error) {
	empl, err := s.load(ctx, employeeID)
	if err != nil {
		return EmployeeDetailResponse{}, err
	}
	if err := employee.RequireEmployee(empl); err != nil {
		return EmployeeDetailResponse{}, err
	}
	return MapToEmployeeDetail(empl), nil
}
