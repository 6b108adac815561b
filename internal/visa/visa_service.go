package visa

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-hiring/internal/employee"
	employeeerrors "go-hiring/internal/employee/errors"
	"go-hiring/internal/events"
	"go-hiring/internal/messaging/kafka"
	"go-hiring/internal/notification"
	"go-hiring/internal/shared/audit"
	"go-hiring/internal/shared/contextutil"
	"go-hiring/internal/storage"
	visaerrors "go-hiring/internal/visa/errors"
	"go-hiring/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=visa_service.go -destination=mock/visa_service_mock.go -package=mock
type Service interface {
	UploadDocument(ctx context.Context, actorID, docType string, upload storage.Upload) (DocumentResponse, error)
	GetMyStatus(ctx context.Context, actorID string) (StatusResponse, error)
	ListMyDocuments(ctx context.Context, actorID string) ([]employee.Document, error)
	ReviewDocument(ctx context.Context, actorID, employeeID, docType string, req ReviewDocumentRequest) (DocumentResponse, error)
	ListInProgress(ctx context.Context) ([]InProgressSummary, error)
	ListAll(ctx context.Context) ([]VisaSummary, error)
	Notify(ctx context.Context, actorID, employeeID string, req NotifyRequest) (NotificationResponse, error)
}

type service struct {
	db         *sql.DB
	repo       employee.Repository
	outboxRepo kafka.OutboxRepository
	files      storage.FileStorage
	notifier   notification.Notifier
	audit      audit.Logger
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo employee.Repository,
	outboxRepo kafka.OutboxRepository,
	files storage.FileStorage,
	notifier notification.Notifier,
	auditLogger audit.Logger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("visa.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("visa.service")
	}
	if auditLogger == nil {
		auditLogger = audit.Nop()
	}
	return &service{
		db:         db,
		repo:       repo,
		outboxRepo: outboxRepo,
		files:      files,
		notifier:   notifier,
		audit:      auditLogger,
		logger:     l,
	}
}

func (s *service) UploadDocument(ctx context.Context, actorID, docType string, upload storage.Upload) (DocumentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	t := employee.DocumentType(docType)
	s.logger.Debug("upload document requested",
		zap.String("request_id", rid),
		zap.String("employee_id", actorID),
		zap.String("document_type", docType),
		zap.Int64("size", upload.Size),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return DocumentResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("upload document begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return DocumentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, actorID)
	if err != nil {
		return DocumentResponse{}, employee.MapRepositoryError(err)
	}

	// gate before the bytes hit storage
	if err := workflow.CanUpload(empl, t); err != nil {
		s.logger.Warn("upload document rejected",
			zap.String("employee_id", actorID),
			zap.String("document_type", docType),
			zap.Error(err),
		)
		return DocumentResponse{}, err
	}

	var previousURL string
	if prev, ok := empl.Document(t); ok {
		previousURL = prev.URL
	}

	stored, err := s.files.Save(ctx, actorID, upload)
	if err != nil {
		s.logger.Warn("upload document storage failed", zap.String("employee_id", actorID), zap.Error(err))
		return DocumentResponse{}, err
	}

	committed := false
	defer func() {
		if !committed {
			s.discard(ctx, stored.URL)
		}
	}()

	now := time.Now().UTC()
	doc, err := workflow.RecordUpload(empl, t, workflow.UploadedFile{
		URL:          stored.URL,
		FileName:     stored.FileName,
		OriginalName: stored.OriginalName,
		MimeType:     stored.MimeType,
		Size:         stored.Size,
	}, now)
	if err != nil {
		return DocumentResponse{}, err
	}

	if t == employee.DocProfilePicture && empl.Profile != nil && empl.Profile.PersonalInfo != nil {
		empl.Profile.PersonalInfo.ProfilePicture = doc.URL
	}

	if err := qtx.Save(ctx, empl); err != nil {
		s.logger.Error("upload document persist failed", zap.String("employee_id", actorID), zap.Error(err))
		return DocumentResponse{}, employee.MapRepositoryError(err)
	}

	if workflow.IsVisaType(t) {
		outboxEvent, err := kafka.NewOutboxEvent(rid, "employee", actorID,
			events.VisaDocumentUploadedEventType, events.VisaDocumentUploadedTopic,
			events.VisaDocumentUploadedEvent{
				EventType:    events.VisaDocumentUploadedEventType,
				RequestID:    rid,
				EmployeeID:   actorID,
				Email:        empl.Email,
				Name:         empl.LegalName(),
				DocumentType: docType,
				Label:        doc.Label,
				OccurredAt:   now,
			})
		if err != nil {
			return DocumentResponse{}, err
		}
		if err := s.outboxRepo.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			s.logger.Error("upload document outbox persist failed", zap.String("employee_id", actorID), zap.Error(err))
			return DocumentResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("upload document commit failed", zap.String("request_id", rid), zap.Error(err))
		return DocumentResponse{}, err
	}
	committed = true

	if previousURL != "" && previousURL != doc.URL {
		s.discard(ctx, previousURL)
	}

	s.logger.Info("upload document success",
		zap.String("request_id", rid),
		zap.String("employee_id", actorID),
		zap.String("document_type", docType),
		zap.String("status", string(doc.Status)),
	)
	return DocumentResponse{
		EmployeeID:  actorID,
		Document:    doc,
		CurrentStep: string(empl.Visa.CurrentStep),
	}, nil
}

func (s *service) discard(ctx context.Context, url string) {
	if err := s.files.Delete(ctx, url); err != nil {
		s.logger.Warn("delete stored file failed", zap.String("url", url), zap.Error(err))
	}
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

func (s *service) GetMyStatus(ctx context.Context, actorID string) (StatusResponse, error) {
	empl, err := s.load(ctx, actorID)
	if err != nil {
		return StatusResponse{}, err
	}
	return MapToStatusResponse(workflow.DeriveProgress(empl)), nil
}

func (s *service) ListMyDocuments(ctx context.Context, actorID string) ([]employee.Document, error) {
	empl, err := s.load(ctx, actorID)
	if err != nil {
		return nil, err
	}
	docs := make([]employee.Document, len(empl.Documents))
	copy(docs, empl.Documents)
	return docs, nil
}

func (s *service) ReviewDocument(ctx context.Context, actorID, employeeID, docType string, req ReviewDocumentRequest) (DocumentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("review document requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("employee_id", employeeID),
		zap.String("document_type", docType),
		zap.String("status", req.Status),
	)

	reviewer, err := uuid.Parse(actorID)
	if err != nil {
		return DocumentResponse{}, visaerrors.ErrInvalidReviewer
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return DocumentResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review document begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return DocumentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, employeeID)
	if err != nil {
		return DocumentResponse{}, employee.MapRepositoryError(err)
	}
	if err := employee.RequireEmployee(empl); err != nil {
		return DocumentResponse{}, err
	}

	now := time.Now().UTC()
	doc, err := workflow.ReviewDocument(empl, employee.DocumentType(docType), workflow.Decision(req.Status), req.Feedback, reviewer, now)
	if err != nil {
		s.logger.Warn("review document rejected",
			zap.String("employee_id", employeeID),
			zap.String("document_type", docType),
			zap.Error(err),
		)
		return DocumentResponse{}, err
	}

	if err := qtx.Save(ctx, empl); err != nil {
		s.logger.Error("review document persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return DocumentResponse{}, employee.MapRepositoryError(err)
	}

	outboxEvent, err := kafka.NewOutboxEvent(rid, "employee", employeeID,
		events.VisaDocumentReviewedEventType, events.VisaDocumentReviewedTopic,
		events.VisaDocumentReviewedEvent{
			EventType:    events.VisaDocumentReviewedEventType,
			RequestID:    rid,
			EmployeeID:   employeeID,
			Email:        empl.Email,
			Name:         empl.LegalName(),
			DocumentType: docType,
			Label:        doc.Label,
			Status:       string(doc.Status),
			Feedback:     doc.Feedback,
			CurrentStep:  string(empl.Visa.CurrentStep),
			OccurredAt:   now,
		})
	if err != nil {
		return DocumentResponse{}, err
	}
	if err := s.outboxRepo.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("review document outbox persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return DocumentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review document commit failed", zap.String("request_id", rid), zap.Error(err))
		return DocumentResponse{}, err
	}

	s.audit.Log(ctx, audit.Entry{
		Action:  "visa.document." + req.Status,
		ActorID: actorID,
		Target:  employeeID,
		Message: doc.Label + " " + req.Status,
		Meta: map[string]any{
			"document_type": docType,
			"feedback":      doc.Feedback,
			"current_step":  string(empl.Visa.CurrentStep),
		},
	})
	s.logger.Info("review document success",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("document_type", docType),
		zap.String("status", req.Status),
		zap.String("current_step", string(empl.Visa.CurrentStep)),
	)
	return DocumentResponse{
		EmployeeID:  employeeID,
		Document:    doc,
		CurrentStep: string(empl.Visa.CurrentStep),
	}, nil
}

func (s *service) ListInProgress(ctx context.Context) ([]InProgressSummary, error) {
	empls, err := s.repo.FindVisaTracked(ctx)
	if err != nil {
		s.logger.Error("list visa in progress failed", zap.Error(err))
		return nil, err
	}

	now := time.Now().UTC()
	out := make([]InProgressSummary, 0, len(empls))
	for i := range empls {
		e := &empls[i]
		if !e.Visa.OptRequired {
			continue
		}
		p := workflow.DeriveProgress(e)
		if p.Completed {
			continue
		}
		out = append(out, MapToInProgressSummary(e, p, now))
	}
	return out, nil
}

func (s *service) ListAll(ctx context.Context) ([]VisaSummary, error) {
	empls, err := s.repo.FindVisaTracked(ctx)
	if err != nil {
		s.logger.Error("list visa employees failed", zap.Error(err))
		return nil, err
	}

	out := make([]VisaSummary, 0, len(empls))
	for i := range empls {
		e := &empls[i]
		out = append(out, MapToVisaSummary(e, workflow.DeriveProgress(e)))
	}
	return out, nil
}

// Notify e-mails the employee first and records the notification only once
// delivery succeeded, so the transaction never spans the SMTP round trip.
func (s *service) Notify(ctx context.Context, actorID, employeeID string, req NotifyRequest) (NotificationResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return NotificationResponse{}, visaerrors.ErrMessageRequired
	}
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = DefaultNotifySubject
	}

	empl, err := s.load(ctx, employeeID)
	if err != nil {
		return NotificationResponse{}, err
	}
	if err := employee.RequireEmployee(empl); err != nil {
		return NotificationResponse{}, err
	}

	name := empl.LegalName()
	if err := s.notifier.Send(ctx, notification.Message{
		To:       empl.Email,
		ToName:   name,
		Subject:  subject,
		HTMLBody: notification.RenderLetter(name, message),
	}); err != nil {
		s.logger.Error("notify employee delivery failed",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return NotificationResponse{}, err
	}
	sentAt := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("notify employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return NotificationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	fresh, err := qtx.FindByID(ctx, employeeID)
	if err != nil {
		return NotificationResponse{}, employee.MapRepositoryError(err)
	}
	fresh.Visa.NotificationLog = append(fresh.Visa.NotificationLog, employee.Notification{
		Subject: subject,
		Message: message,
		SentAt:  sentAt,
	})
	fresh.Visa.LastNotificationAt = &sentAt

	if err := qtx.Save(ctx, fresh); err != nil {
		s.logger.Error("notify employee persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return NotificationResponse{}, employee.MapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("notify employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return NotificationResponse{}, err
	}

	s.audit.Log(ctx, audit.Entry{
		Action:  "visa.notify",
		ActorID: actorID,
		Target:  employeeID,
		Message: subject,
	})
	s.logger.Info("notify employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
	)
	return NotificationResponse{
		EmployeeID: employeeID,
		Email:      empl.Email,
		Subject:    subject,
		Message:    message,
		SentAt:     sentAt,
	}, nil
}
