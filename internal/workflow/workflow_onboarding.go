package workflow

import (
	"strings"
	"time"

	"go-hiring/internal/employee"
	workflowerrors "go-hiring/internal/workflow/errors"

	"github.com/google/uuid"
)

const defaultRejectionFeedback = "Please review the comments and resubmit."

// Policy holds the tunable rules of the onboarding state machine.
type Policy struct {
	// AllowResubmitAfterApproval lets an approved employee send a new
	// application, which moves them back to pending.
	AllowResubmitAfterApproval bool
}

var DefaultPolicy = Policy{}

var onboardingTransitions = map[employee.OnboardingStatus][]employee.OnboardingStatus{
	employee.OnboardingNeverSubmitted: {employee.OnboardingPending},
	employee.OnboardingPending:        {employee.OnboardingPending, employee.OnboardingApproved, employee.OnboardingRejected},
	employee.OnboardingRejected:       {employee.OnboardingPending},
	employee.OnboardingApproved:       {},
}

// CanTransition reports whether the onboarding status may move from -> to
// under the given policy.
func CanTransition(from, to employee.OnboardingStatus, policy Policy) bool {
	if from == "" {
		from = employee.OnboardingNeverSubmitted
	}
	if from == employee.OnboardingApproved && to == employee.OnboardingPending {
		return policy.AllowResubmitAfterApproval
	}
	for _, allowed := range onboardingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Submit records an employee's application. All checks run before the
// aggregate is touched.
func Submit(e *employee.Employee, form *employee.FormData, policy Policy, now time.Time) error {
	if !CanTransition(e.Onboarding.Status, employee.OnboardingPending, policy) {
		return workflowerrors.ErrOnboardingAlreadyApproved
	}

	normalized := NormalizeForm(form, e.Email)
	if normalized.PersonalInfo.FirstName == "" || normalized.PersonalInfo.LastName == "" {
		return workflowerrors.ErrNameRequired
	}

	e.Onboarding.FormData = normalized
	e.Onboarding.Status = employee.OnboardingPending
	e.Onboarding.SubmittedAt = &now
	e.Onboarding.Feedback = nil

	var workAuth employee.WorkAuthorization
	if normalized.Employment != nil {
		workAuth = normalized.Employment.WorkAuthorization
	}
	ApplyWorkAuthorization(&e.Visa, workAuth)
	return nil
}

// Decide applies HR's verdict to a pending application. Approval promotes
// the submitted form into the profile.
func Decide(
	e *employee.Employee,
	decision Decision,
	feedback string,
	reviewer uuid.UUID,
	now time.Time,
) error {
	if !decision.Valid() {
		return workflowerrors.ErrInvalidReviewStatus
	}
	if e.Onboarding.FormData == nil {
		return workflowerrors.ErrApplicationNotSubmitted
	}
	target := employee.OnboardingStatus(decision)
	if e.Onboarding.Status != employee.OnboardingPending || !CanTransition(e.Onboarding.Status, target, DefaultPolicy) {
		return workflowerrors.ErrInvalidOnboardingTransition
	}

	e.Onboarding.Status = target
	e.Onboarding.ReviewedAt = &now
	e.Onboarding.Reviewer = &reviewer

	if decision == DecisionRejected {
		fb := strings.TrimSpace(feedback)
		if fb == "" {
			fb = defaultRejectionFeedback
		}
		e.Onboarding.Feedback = &fb
		return nil
	}

	e.Onboarding.Feedback = nil
	profile := e.Onboarding.FormData.Clone()
	if profile.PersonalInfo == nil {
		profile.PersonalInfo = &employee.PersonalInfo{}
	}
	profile.PersonalInfo.Email = e.Email
	if pic, ok := e.Document(employee.DocProfilePicture); ok && pic.URL != "" {
		profile.PersonalInfo.ProfilePicture = pic.URL
	}
	e.Profile = profile

	SyncVisaWorkflow(e)
	return nil
}
