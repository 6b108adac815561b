package workflow_test

import (
	"testing"

	"go-hiring/internal/employee"
	"go-hiring/internal/workflow"
	workflowerrors "go-hiring/internal/workflow/errors"

	"github.com/stretchr/testify/assert"
)

func TestScenario_FullOPTPipeline(t *testing.T) {
	e := newEmployee()

	assert.NoError(t, workflow.Submit(e, validForm("f1_opt"), workflow.DefaultPolicy, fixedNow))
	assert.Equal(t, employee.StepOPTReceipt, e.Visa.CurrentStep)

	_, err := workflow.RecordUpload(e, employee.DocOPTEAD, file("ead.pdf"), fixedNow)
	assert.ErrorIs(t, err, workflowerrors.ErrPrerequisiteNotMet)

	for _, dt := range workflow.VisaSequence {
		_, err := workflow.RecordUpload(e, dt, file(string(dt)+".pdf"), fixedNow)
		assert.NoError(t, err, dt)

		p := workflow.DeriveProgress(e)
		assert.Equal(t, workflow.ActionReview, p.Action, dt)
		assert.Equal(t, employee.VisaStep(dt), p.CurrentStep, dt)

		_, err = workflow.ReviewDocument(e, dt, workflow.DecisionApproved, "", hrID, fixedNow)
		assert.NoError(t, err, dt)
	}

	p := workflow.DeriveProgress(e)
	assert.True(t, p.Completed)
	assert.Equal(t, employee.StepCompleted, p.CurrentStep)
	assert.Equal(t, employee.StepCompleted, e.Visa.CurrentStep)
	assert.Equal(t, "All documents have been approved.", p.Message)
}

func TestScenario_RejectionAndResubmission(t *testing.T) {
	e := newOPTEmployee()

	_, err := workflow.RecordUpload(e, employee.DocOPTReceipt, file("r1.pdf"), fixedNow)
	assert.NoError(t, err)
	_, err = workflow.ReviewDocument(e, employee.DocOPTReceipt, workflow.DecisionRejected, "blurry", hrID, fixedNow)
	assert.NoError(t, err)

	p := workflow.DeriveProgress(e)
	assert.Equal(t, workflow.ActionResubmit, p.Action)
	assert.Equal(t, "blurry", p.Message)

	_, err = workflow.RecordUpload(e, employee.DocOPTEAD, file("ead.pdf"), fixedNow)
	assert.ErrorIs(t, err, workflowerrors.ErrPrerequisiteNotMet)

	doc, err := workflow.RecordUpload(e, employee.DocOPTReceipt, file("r2.pdf"), fixedNow)
	assert.NoError(t, err)
	assert.Equal(t, employee.DocumentPending, doc.Status)
	assert.Empty(t, doc.Feedback)
	assert.Len(t, e.Documents, 1)

	p = workflow.DeriveProgress(e)
	assert.Equal(t, workflow.ActionReview, p.Action)
}

func TestScenario_WorkAuthorizationChangeResetsPipeline(t *testing.T) {
	e := newEmployee()
	assert.NoError(t, workflow.Submit(e, validForm("f1_opt"), workflow.DefaultPolicy, fixedNow))
	assert.NoError(t, workflow.Decide(e, workflow.DecisionApproved, "", hrID, fixedNow))

	e.Profile.Employment.WorkAuthorization = employee.WorkAuthGreenCard
	workflow.SyncVisaWorkflow(e)

	assert.False(t, e.Visa.OptRequired)
	assert.Equal(t, employee.StepNotApplicable, e.Visa.CurrentStep)
	assert.ErrorIs(t, workflow.CanUpload(e, employee.DocOPTReceipt), workflowerrors.ErrVisaNotRequired)
}
