package workflow_test

import (
	"testing"

	"go-hiring/internal/employee"
	"go-hiring/internal/workflow"

	"github.com/stretchr/testify/assert"
)

func TestDeriveProgress(t *testing.T) {
	tests := []struct {
		name        string
		build       func() *employee.Employee
		wantStep    employee.VisaStep
		wantAction  workflow.Action
		wantMessage string
		wantHRNext  string
		wantPending employee.DocumentType
		completed   bool
	}{
		{
			name:        "nothing uploaded",
			build:       newOPTEmployee,
			wantStep:    employee.StepOPTReceipt,
			wantAction:  workflow.ActionUpload,
			wantMessage: "Please upload OPT Receipt.",
			wantHRNext:  "Employee must upload OPT Receipt",
		},
		{
			name: "receipt pending",
			build: func() *employee.Employee {
				return withDoc(newOPTEmployee(), employee.DocOPTReceipt, employee.DocumentPending)
			},
			wantStep:    employee.StepOPTReceipt,
			wantAction:  workflow.ActionReview,
			wantMessage: "Waiting for HR to review your OPT Receipt.",
			wantHRNext:  "Waiting for HR to review OPT Receipt",
			wantPending: employee.DocOPTReceipt,
		},
		{
			name: "ead rejected without feedback",
			build: func() *employee.Employee {
				e := withDoc(newOPTEmployee(), employee.DocOPTReceipt, employee.DocumentApproved)
				return withDoc(e, employee.DocOPTEAD, employee.DocumentRejected)
			},
			wantStep:    employee.StepOPTEAD,
			wantAction:  workflow.ActionResubmit,
			wantMessage: "OPT EAD was rejected. Please upload an updated version.",
			wantHRNext:  "OPT EAD was rejected. Employee must resubmit.",
		},
		{
			name: "ead rejected with feedback",
			build: func() *employee.Employee {
				e := withDoc(newOPTEmployee(), employee.DocOPTReceipt, employee.DocumentApproved)
				withDoc(e, employee.DocOPTEAD, employee.DocumentRejected)
				e.Documents[1].Feedback = "Card is expired"
				return e
			},
			wantStep:    employee.StepOPTEAD,
			wantAction:  workflow.ActionResubmit,
			wantMessage: "Card is expired",
			wantHRNext:  "Card is expired",
		},
		{
			name: "i983 missing after two approvals",
			build: func() *employee.Employee {
				e := withDoc(newOPTEmployee(), employee.DocOPTReceipt, employee.DocumentApproved)
				return withDoc(e, employee.DocOPTEAD, employee.DocumentApproved)
			},
			wantStep:    employee.StepI983,
			wantAction:  workflow.ActionUpload,
			wantMessage: "Please upload Form I-983.",
			wantHRNext:  "Employee must upload Form I-983",
		},
		{
			name: "all approved",
			build: func() *employee.Employee {
				e := newOPTEmployee()
				for _, dt := range workflow.VisaSequence {
					withDoc(e, dt, employee.DocumentApproved)
				}
				return e
			},
			wantStep:    employee.StepCompleted,
			wantAction:  workflow.ActionNone,
			wantMessage: "All documents have been approved.",
			wantHRNext:  "All documents have been approved.",
			completed:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := workflow.DeriveProgress(tt.build())

			assert.True(t, p.RequiresOPT)
			assert.Equal(t, tt.wantStep, p.CurrentStep)
			assert.Equal(t, tt.wantAction, p.Action)
			assert.Equal(t, tt.wantMessage, p.Message)
			assert.Equal(t, tt.wantHRNext, p.NextStep)
			assert.Equal(t, tt.completed, p.Completed)
			assert.Len(t, p.Steps, len(workflow.VisaSequence))
			if tt.wantPending != "" {
				assert.NotNil(t, p.PendingDocument)
				assert.Equal(t, tt.wantPending, p.PendingDocument.Type)
			} else {
				assert.Nil(t, p.PendingDocument)
			}
		})
	}
}

func TestDeriveProgress_NotRequiredIgnoresDocuments(t *testing.T) {
	e := newEmployee()
	withDoc(e, employee.DocOPTReceipt, employee.DocumentPending)
	withDoc(e, employee.DocOPTEAD, employee.DocumentRejected)

	p := workflow.DeriveProgress(e)

	assert.False(t, p.RequiresOPT)
	assert.Equal(t, employee.StepNotApplicable, p.CurrentStep)
	assert.Equal(t, workflow.ActionNone, p.Action)
	assert.Nil(t, p.PendingDocument)
	assert.Empty(t, p.Steps)
}

func TestDeriveProgress_IgnoresStoredStep(t *testing.T) {
	e := withDoc(newOPTEmployee(), employee.DocOPTReceipt, employee.DocumentApproved)
	e.Visa.CurrentStep = employee.StepI20

	p := workflow.DeriveProgress(e)

	assert.Equal(t, employee.StepOPTEAD, p.CurrentStep)
}

func TestDeriveProgress_StepsReportNotUploaded(t *testing.T) {
	e := withDoc(newOPTEmployee(), employee.DocOPTReceipt, employee.DocumentPending)

	p := workflow.DeriveProgress(e)

	assert.Equal(t, employee.DocumentPending, p.Steps[0].Status)
	for _, s := range p.Steps[1:] {
		assert.Equal(t, employee.DocumentNotUploaded, s.Status)
		assert.Nil(t, s.Document)
	}
}

func TestDeriveProgress_PendingDocumentIsACopy(t *testing.T) {
	e := withDoc(newOPTEmployee(), employee.DocOPTReceipt, employee.DocumentPending)

	p := workflow.DeriveProgress(e)
	p.PendingDocument.Status = employee.DocumentApproved

	assert.Equal(t, employee.DocumentPending, e.Documents[0].Status)
}
