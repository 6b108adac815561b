package workflow_test

import (
	"errors"
	"testing"

	"go-hiring/internal/employee"
	"go-hiring/internal/shared/apperror"
	"go-hiring/internal/workflow"
	workflowerrors "go-hiring/internal/workflow/errors"

	"github.com/stretchr/testify/assert"
)

func TestCanUpload(t *testing.T) {
	tests := []struct {
		name        string
		employee    *employee.Employee
		docType     employee.DocumentType
		wantErr     error
		missingStep string
	}{
		{
			name:     "unsupported type",
			employee: newOPTEmployee(),
			docType:  "passport",
			wantErr:  workflowerrors.ErrUnsupportedDocumentType,
		},
		{
			name:     "non visa type never gated",
			employee: newEmployee(),
			docType:  employee.DocDriversLicense,
		},
		{
			name:     "visa type for non opt employee",
			employee: newEmployee(),
			docType:  employee.DocOPTReceipt,
			wantErr:  workflowerrors.ErrVisaNotRequired,
		},
		{
			name:     "first step always open",
			employee: newOPTEmployee(),
			docType:  employee.DocOPTReceipt,
		},
		{
			name:        "ead blocked without receipt",
			employee:    newOPTEmployee(),
			docType:     employee.DocOPTEAD,
			wantErr:     workflowerrors.ErrPrerequisiteNotMet,
			missingStep: "opt_receipt",
		},
		{
			name:        "ead blocked while receipt pending",
			employee:    withDoc(newOPTEmployee(), employee.DocOPTReceipt, employee.DocumentPending),
			docType:     employee.DocOPTEAD,
			wantErr:     workflowerrors.ErrPrerequisiteNotMet,
			missingStep: "opt_receipt",
		},
		{
			name:     "ead open after receipt approved",
			employee: withDoc(newOPTEmployee(), employee.DocOPTReceipt, employee.DocumentApproved),
			docType:  employee.DocOPTEAD,
		},
		{
			name: "i20 reports first unapproved predecessor",
			employee: withDoc(
				withDoc(newOPTEmployee(), employee.DocOPTReceipt, employee.DocumentApproved),
				employee.DocOPTEAD, employee.DocumentRejected,
			),
			docType:     employee.DocI20,
			wantErr:     workflowerrors.ErrPrerequisiteNotMet,
			missingStep: "opt_ead",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := workflow.CanUpload(tt.employee, tt.docType)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.missingStep != "" {
				var appErr *apperror.AppError
				assert.True(t, errors.As(err, &appErr))
				assert.Equal(t, apperror.CodePrerequisiteNotMet, appErr.Code)
				details := appErr.Details.(workflowerrors.MissingStep)
				assert.Equal(t, tt.missingStep, details.MissingStep)
			}
		})
	}
}

func TestCanUpload_PrerequisiteMessageNamesLabel(t *testing.T) {
	err := workflow.CanUpload(newOPTEmployee(), employee.DocI983)

	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Please wait for OPT Receipt to be approved first.", appErr.Message)
}

func TestRecordUpload(t *testing.T) {
	t.Run("visa upload starts pending and moves current step", func(t *testing.T) {
		e := withDoc(newOPTEmployee(), employee.DocOPTReceipt, employee.DocumentApproved)

		doc, err := workflow.RecordUpload(e, employee.DocOPTEAD, file("ead.pdf"), fixedNow)

		assert.NoError(t, err)
		assert.Equal(t, employee.DocumentPending, doc.Status)
		assert.Equal(t, employee.CategoryVisa, doc.Category)
		assert.Equal(t, "OPT EAD", doc.Label)
		assert.Equal(t, fixedNow, doc.UploadedAt)
		assert.Equal(t, employee.StepOPTEAD, e.Visa.CurrentStep)
	})

	t.Run("non visa upload is stored as uploaded", func(t *testing.T) {
		e := newEmployee()

		doc, err := workflow.RecordUpload(e, employee.DocProfilePicture, file("me.png"), fixedNow)

		assert.NoError(t, err)
		assert.Equal(t, employee.DocumentUploaded, doc.Status)
		assert.Equal(t, employee.CategoryProfile, doc.Category)
		assert.Equal(t, employee.StepNotApplicable, e.Visa.CurrentStep)
	})

	t.Run("re-upload replaces in place and clears review metadata", func(t *testing.T) {
		e := newOPTEmployee()
		withDoc(e, employee.DocDriversLicense, employee.DocumentUploaded)
		_, err := workflow.RecordUpload(e, employee.DocOPTReceipt, file("r1.pdf"), fixedNow)
		assert.NoError(t, err)
		_, err = workflow.ReviewDocument(e, employee.DocOPTReceipt, workflow.DecisionRejected, "blurry", hrID, fixedNow)
		assert.NoError(t, err)

		doc, err := workflow.RecordUpload(e, employee.DocOPTReceipt, file("r2.pdf"), fixedNow)

		assert.NoError(t, err)
		assert.Len(t, e.Documents, 2)
		assert.Equal(t, employee.DocDriversLicense, e.Documents[0].Type)
		assert.Equal(t, "/uploads/r2.pdf", doc.URL)
		assert.Equal(t, employee.DocumentPending, doc.Status)
		assert.Empty(t, doc.Feedback)
		assert.Nil(t, doc.ReviewedAt)
		assert.Nil(t, doc.Reviewer)
	})

	t.Run("gating failure leaves aggregate untouched", func(t *testing.T) {
		e := newOPTEmployee()

		_, err := workflow.RecordUpload(e, employee.DocI983, file("i983.pdf"), fixedNow)

		assert.ErrorIs(t, err, workflowerrors.ErrPrerequisiteNotMet)
		assert.Empty(t, e.Documents)
		assert.Equal(t, employee.StepOPTReceipt, e.Visa.CurrentStep)
	})
}
