package workflow_test

import (
	"testing"

	"go-hiring/internal/employee"
	"go-hiring/internal/workflow"
	workflowerrors "go-hiring/internal/workflow/errors"

	"github.com/stretchr/testify/assert"
)

func TestReviewDocument(t *testing.T) {
	t.Run("approve advances to next step", func(t *testing.T) {
		e := withDoc(newOPTEmployee(), employee.DocOPTReceipt, employee.DocumentPending)
		e.Documents[0].Feedback = "old"

		doc, err := workflow.ReviewDocument(e, employee.DocOPTReceipt, workflow.DecisionApproved, "ignored", hrID, fixedNow)

		assert.NoError(t, err)
		assert.Equal(t, employee.DocumentApproved, doc.Status)
		assert.Empty(t, doc.Feedback)
		assert.Equal(t, hrID, *doc.Reviewer)
		assert.Equal(t, fixedNow, *doc.ReviewedAt)
		assert.Equal(t, employee.StepOPTEAD, e.Visa.CurrentStep)
	})

	t.Run("approving last document completes the pipeline", func(t *testing.T) {
		e := newOPTEmployee()
		withDoc(e, employee.DocOPTReceipt, employee.DocumentApproved)
		withDoc(e, employee.DocOPTEAD, employee.DocumentApproved)
		withDoc(e, employee.DocI983, employee.DocumentApproved)
		withDoc(e, employee.DocI20, employee.DocumentPending)

		_, err := workflow.ReviewDocument(e, employee.DocI20, workflow.DecisionApproved, "", hrID, fixedNow)

		assert.NoError(t, err)
		assert.Equal(t, employee.StepCompleted, e.Visa.CurrentStep)
	})

	t.Run("reject keeps step on the document and stores feedback", func(t *testing.T) {
		e := newOPTEmployee()
		withDoc(e, employee.DocOPTReceipt, employee.DocumentApproved)
		withDoc(e, employee.DocOPTEAD, employee.DocumentPending)

		doc, err := workflow.ReviewDocument(e, employee.DocOPTEAD, workflow.DecisionRejected, "  expired card  ", hrID, fixedNow)

		assert.NoError(t, err)
		assert.Equal(t, employee.DocumentRejected, doc.Status)
		assert.Equal(t, "expired card", doc.Feedback)
		assert.Equal(t, employee.StepOPTEAD, e.Visa.CurrentStep)
	})

	t.Run("review without OPT requirement leaves step not applicable", func(t *testing.T) {
		for _, decision := range []workflow.Decision{workflow.DecisionApproved, workflow.DecisionRejected} {
			e := withDoc(newOPTEmployee(), employee.DocOPTReceipt, employee.DocumentPending)
			workflow.ApplyWorkAuthorization(&e.Visa, employee.WorkAuthCitizen)

			doc, err := workflow.ReviewDocument(e, employee.DocOPTReceipt, decision, "", hrID, fixedNow)

			assert.NoError(t, err)
			assert.Equal(t, employee.DocumentStatus(decision), doc.Status)
			assert.False(t, e.Visa.OptRequired)
			assert.Equal(t, employee.StepNotApplicable, e.Visa.CurrentStep)
		}
	})

	t.Run("validation errors", func(t *testing.T) {
		e := withDoc(newOPTEmployee(), employee.DocOPTReceipt, employee.DocumentApproved)

		_, err := workflow.ReviewDocument(e, employee.DocOPTReceipt, "pending", "", hrID, fixedNow)
		assert.ErrorIs(t, err, workflowerrors.ErrInvalidReviewStatus)

		_, err = workflow.ReviewDocument(e, employee.DocDriversLicense, workflow.DecisionApproved, "", hrID, fixedNow)
		assert.ErrorIs(t, err, workflowerrors.ErrNotVisaDocument)

		_, err = workflow.ReviewDocument(e, employee.DocOPTEAD, workflow.DecisionApproved, "", hrID, fixedNow)
		assert.ErrorIs(t, err, workflowerrors.ErrDocumentNotFound)

		_, err = workflow.ReviewDocument(e, employee.DocOPTReceipt, workflow.DecisionRejected, "", hrID, fixedNow)
		assert.ErrorIs(t, err, workflowerrors.ErrDocumentNotPending)
		assert.Equal(t, employee.DocumentApproved, e.Documents[0].Status)
	})
}
