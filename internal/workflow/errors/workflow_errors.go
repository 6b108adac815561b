package workflowerrors

import (
	"fmt"
	"net/http"

	"go-hiring/internal/shared/apperror"
)

var (
	ErrUnsupportedDocumentType = apperror.New(
		apperror.CodeInvalidInput,
		"Unsupported document type.",
		http.StatusBadRequest,
	)
	ErrVisaNotRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Visa documents are only required for OPT employees.",
		http.StatusBadRequest,
	)
	// ErrPrerequisiteNotMet is the sentinel behind every prerequisite failure;
	// match it with errors.Is and read the missing step from Details.
	ErrPrerequisiteNotMet = apperror.New(
		apperror.CodePrerequisiteNotMet,
		"A previous visa document must be approved first.",
		http.StatusBadRequest,
	)
	ErrNotVisaDocument = apperror.New(
		apperror.CodeInvalidInput,
		"Only visa documents can be reviewed.",
		http.StatusBadRequest,
	)
	ErrInvalidReviewStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be approved or rejected.",
		http.StatusBadRequest,
	)
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document not found.",
		http.StatusNotFound,
	)
	ErrDocumentNotPending = apperror.New(
		apperror.CodeInvalidState,
		"Document is not awaiting review.",
		http.StatusConflict,
	)
	ErrOnboardingAlreadyApproved = apperror.New(
		apperror.CodeInvalidState,
		"Onboarding already approved.",
		http.StatusBadRequest,
	)
	ErrNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"First name and last name are required.",
		http.StatusBadRequest,
	)
	ErrApplicationNotSubmitted = apperror.New(
		apperror.CodeNotFound,
		"Application has not been submitted.",
		http.StatusNotFound,
	)
	ErrInvalidOnboardingTransition = apperror.New(
		apperror.CodeInvalidState,
		"Onboarding application is not awaiting a decision.",
		http.StatusConflict,
	)
	ErrProfileNotAvailable = apperror.New(
		apperror.CodeInvalidState,
		"Profile is not available yet.",
		http.StatusBadRequest,
	)
)

type MissingStep struct {
	MissingStep string `json:"missing_step"`
	Label       string `json:"label"`
}

// NewPrerequisiteError names the first unapproved predecessor.
func NewPrerequisiteError(step, label string) *apperror.AppError {
	return &apperror.AppError{
		Code:       apperror.CodePrerequisiteNotMet,
		Message:    fmt.Sprintf("Please wait for %s to be approved first.", label),
		HTTPStatus: http.StatusBadRequest,
		Details:    MissingStep{MissingStep: step, Label: label},
		Err:        ErrPrerequisiteNotMet,
	}
}
