package workflow

import (
	"strings"
	"time"

	"go-hiring/internal/employee"
	workflowerrors "go-hiring/internal/workflow/errors"

	"github.com/google/uuid"
)

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

func (d Decision) Valid() bool {
	return d == DecisionApproved || d == DecisionRejected
}

// ReviewDocument applies an HR decision to a pending visa document and
// moves the step pointer: forward on approval, back onto t on rejection.
// Without an OPT requirement the document is still reviewed but the step
// stays not_applicable.
func ReviewDocument(
	e *employee.Employee,
	t employee.DocumentType,
	decision Decision,
	feedback string,
	reviewer uuid.UUID,
	now time.Time,
) (employee.Document, error) {
	if !decision.Valid() {
		return employee.Document{}, workflowerrors.ErrInvalidReviewStatus
	}
	if !IsVisaType(t) {
		return employee.Document{}, workflowerrors.ErrNotVisaDocument
	}

	doc, ok := e.Document(t)
	if !ok {
		return employee.Document{}, workflowerrors.ErrDocumentNotFound
	}
	if doc.Status != employee.DocumentPending {
		return employee.Document{}, workflowerrors.ErrDocumentNotPending
	}

	doc.Status = employee.DocumentStatus(decision)
	doc.ReviewedAt = &now
	doc.Reviewer = &reviewer

	if decision == DecisionApproved {
		doc.Feedback = ""
	} else {
		doc.Feedback = strings.TrimSpace(feedback)
	}

	switch {
	case !e.Visa.OptRequired:
		e.Visa.CurrentStep = employee.StepNotApplicable
	case decision == DecisionApproved:
		e.Visa.CurrentStep = StepAfter(t)
	default:
		e.Visa.CurrentStep = employee.VisaStep(t)
	}
	return *doc, nil
}
