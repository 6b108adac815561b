package visa

import (
	"math"
	"time"

	"go-hiring/internal/employee"
	"go-hiring/internal/shared/apperror"
	"go-hiring/internal/workflow"

	"github.com/go-playground/validator/v10"
)

const DefaultNotifySubject = "Visa Status Update"

// DocumentTypeRule backs the document_type binding tag.
var DocumentTypeRule = apperror.ValidationRule{
	Tag: "document_type",
	Fn: func(fl validator.FieldLevel) bool {
		return workflow.IsSupported(employee.DocumentType(fl.Field().String()))
	},
}

type DocumentTypeURI struct {
	Type string `uri:"type" binding:"required,document_type"`
}

type ReviewDocumentRequest struct {
	Status   string `json:"status" binding:"required,oneof=approved rejected"`
	Feedback string `json:"feedback"`
}

type NotifyRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

type StepResponse struct {
	Type     string             `json:"type"`
	Label    string             `json:"label"`
	Status   string             `json:"status"`
	Document *employee.Document `json:"document,omitempty"`
}

// StatusResponse is the employee-facing projection of the pipeline.
type StatusResponse struct {
	RequiresOPT     bool               `json:"requires_opt"`
	CurrentStep     string             `json:"current_step"`
	Completed       bool               `json:"completed"`
	Action          string             `json:"action"`
	Message         string             `json:"message"`
	PendingDocument *employee.Document `json:"pending_document,omitempty"`
	Steps           []StepResponse     `json:"steps"`
}

type DocumentResponse struct {
	EmployeeID  string            `json:"employee_id"`
	Document    employee.Document `json:"document"`
	CurrentStep string            `json:"current_step"`
}

// InProgressSummary is the HR projection for OPT employees still in the pipeline.
type InProgressSummary struct {
	EmployeeID        string             `json:"employee_id"`
	Name              string             `json:"name"`
	WorkAuthorization string             `json:"work_authorization"`
	StartDate         *time.Time         `json:"start_date,omitempty"`
	EndDate           *time.Time         `json:"end_date,omitempty"`
	DaysRemaining     *int               `json:"days_remaining,omitempty"`
	NextStep          string             `json:"next_step"`
	Action            string             `json:"action"`
	PendingDocument   *employee.Document `json:"pending_document,omitempty"`
}

type VisaSummary struct {
	EmployeeID        string              `json:"employee_id"`
	Name              string              `json:"name"`
	WorkAuthorization string              `json:"work_authorization"`
	Documents         []employee.Document `json:"documents"`
	CurrentStep       string              `json:"current_step"`
}

type NotificationResponse struct {
	EmployeeID string    `json:"employee_id"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	SentAt     time.Time `json:"sent_at"`
}

func MapToStatusResponse(p workflow.Progress) StatusResponse {
	steps := make([]StepResponse, 0, len(p.Steps))
	for _, s := range p.Steps {
		steps = append(steps, StepResponse{
			Type:     string(s.Type),
			Label:    s.Label,
			Status:   string(s.Status),
			Document: s.Document,
		})
	}
	return StatusResponse{
		RequiresOPT:     p.RequiresOPT,
		CurrentStep:     string(p.CurrentStep),
		Completed:       p.Completed,
		Action:          string(p.Action),
		Message:         p.Message,
		PendingDocument: p.PendingDocument,
		Steps:           steps,
	}
}

func workAuthorizationOf(e *employee.Employee) (string, *employee.Employment) {
	emp := e.EffectiveEmployment()
	if emp == nil {
		return "", nil
	}
	if emp.WorkAuthorization == employee.WorkAuthOther && emp.WorkAuthorizationOther != "" {
		return emp.WorkAuthorizationOther, emp
	}
	return string(emp.WorkAuthorization), emp
}

func daysUntil(end *time.Time, now time.Time) *int {
	if end == nil {
		return nil
	}
	d := int(math.Ceil(end.Sub(now).Hours() / 24))
	return &d
}

func MapToInProgressSummary(e *employee.Employee, p workflow.Progress, now time.Time) InProgressSummary {
	workAuth, emp := workAuthorizationOf(e)
	out := InProgressSummary{
		EmployeeID:        e.ID.String(),
		Name:              e.LegalName(),
		WorkAuthorization: workAuth,
		NextStep:          p.NextStep,
		Action:            string(p.Action),
		PendingDocument:   p.PendingDocument,
	}
	if emp != nil {
		out.StartDate = emp.StartDate
		out.EndDate = emp.EndDate
		out.DaysRemaining = daysUntil(emp.EndDate, now)
	}
	return out
}

func MapToVisaSummary(e *employee.Employee, p workflow.Progress) VisaSummary {
	workAuth, _ := workAuthorizationOf(e)
	docs := make([]employee.Document, 0, len(workflow.VisaSequence))
	for _, d := range e.Documents {
		if d.Category == employee.CategoryVisa && d.Status == employee.DocumentApproved {
			docs = append(docs, d)
		}
	}
	return VisaSummary{
		EmployeeID:        e.ID.String(),
		Name:              e.LegalName(),
		WorkAuthorization: workAuth,
		Documents:         docs,
		CurrentStep:       string(p.CurrentStep),
	}
}
