package profile

import (
	"time"

	"go-hiring/internal/employee"
	"go-hiring/internal/visa"
	"go-hiring/internal/workflow"
)

// UpdateProfileRequest replaces only the sections that are present.
type UpdateProfileRequest struct {
	PersonalInfo      *employee.PersonalInfo `json:"personal_info"`
	Address           *employee.Address      `json:"address"`
	ContactInfo       *employee.ContactInfo  `json:"contact_info"`
	Employment        *employee.Employment   `json:"employment"`
	Reference         *employee.Contact      `json:"reference"`
	EmergencyContacts []employee.Contact     `json:"emergency_contacts"`
}

func (r UpdateProfileRequest) empty() bool {
	return r.PersonalInfo == nil && r.Address == nil && r.ContactInfo == nil &&
		r.Employment == nil && r.Reference == nil && r.EmergencyContacts == nil
}

type MeResponse struct {
	ID                    string              `json:"id"`
	Username              string              `json:"username"`
	Email                 string              `json:"email"`
	Role                  string              `json:"role"`
	Profile               *employee.FormData  `json:"profile"`
	OnboardingStatus      string              `json:"onboarding_status"`
	OnboardingApplication *employee.FormData  `json:"onboarding_application"`
	OnboardingFeedback    *string             `json:"onboarding_feedback"`
	Documents             []employee.Document `json:"documents"`
	VisaStatus            visa.StatusResponse `json:"visa_status"`
}

// EmployeeSummary is one row of the HR directory.
type EmployeeSummary struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	SSN               string `json:"ssn"`
	WorkAuthorization string `json:"work_authorization"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	OnboardingStatus  string `json:"onboarding_status"`
	VisaStep          string `json:"visa_step"`
}

type OnboardingDetail struct {
	Status      string             `json:"status"`
	SubmittedAt *time.Time         `json:"submitted_at,omitempty"`
	ReviewedAt  *time.Time         `json:"reviewed_at,omitempty"`
	Feedback    *string            `json:"feedback,omitempty"`
	FormData    *employee.FormData `json:"form_data,omitempty"`
}

type VisaDetail struct {
	OptRequired        bool                    `json:"opt_required"`
	Progress           visa.StatusResponse     `json:"progress"`
	NotificationLog    []employee.Notification `json:"notification_log"`
	LastNotificationAt *time.Time              `json:"last_notification_at,omitempty"`
}

type EmployeeDetailResponse struct {
	ID         string              `json:"id"`
	Username   string              `json:"username"`
	Email      string              `json:"email"`
	Role       string              `json:"role"`
	Name       string              `json:"name"`
	Profile    *employee.FormData  `json:"profile"`
	Onboarding OnboardingDetail    `json:"onboarding"`
	Documents  []employee.Document `json:"documents"`
	Visa       VisaDetail          `json:"visa"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func documentsOf(e *employee.Employee) []employee.Document {
	docs := make([]employee.Document, len(e.Documents))
	copy(docs, e.Documents)
	return docs
}

func MapToMeResponse(e *employee.Employee) MeResponse {
	return MeResponse{
		ID:                    e.ID.String(),
		Username:              e.Username,
		Email:                 e.Email,
		Role:                  string(e.Role),
		Profile:               e.Profile,
		OnboardingStatus:      string(e.Onboarding.Status),
		OnboardingApplication: e.Onboarding.FormData,
		OnboardingFeedback:    e.Onboarding.Feedback,
		Documents:             documentsOf(e),
		VisaStatus:            visa.MapToStatusResponse(workflow.DeriveProgress(e)),
	}
}

func MapToEmployeeSummary(e *employee.Employee) EmployeeSummary {
	out := EmployeeSummary{
		ID:               e.ID.String(),
		Name:             e.LegalName(),
		Email:            e.Email,
		OnboardingStatus: string(e.Onboarding.Status),
		VisaStep:         string(workflow.DeriveProgress(e).CurrentStep),
	}
	if info := e.EffectivePersonalInfo(); info != nil {
		out.SSN = info.SSN
	}
	if emp := e.EffectiveEmployment(); emp != nil {
		out.WorkAuthorization = string(emp.WorkAuthorization)
		if emp.WorkAuthorization == employee.WorkAuthOther && emp.WorkAuthorizationOther != "" {
			out.WorkAuthorization = emp.WorkAuthorizationOther
		}
	}
	if contact := effectiveContact(e); contact != nil {
		out.Phone = contact.CellPhone
	}
	return out
}

func effectiveContact(e *employee.Employee) *employee.ContactInfo {
	if e.Profile != nil && e.Profile.ContactInfo != nil {
		return e.Profile.ContactInfo
	}
	if e.Onboarding.FormData != nil {
		return e.Onboarding.FormData.ContactInfo
	}
	return nil
}

func MapToEmployeeDetail(e *employee.Employee) EmployeeDetailResponse {
	log := make([]employee.Notification, len(e.Visa.NotificationLog))
	copy(log, e.Visa.NotificationLog)

	return EmployeeDetailResponse{
		ID:       e.ID.String(),
		Username: e.Username,
		Email:    e.Email,
		Role:     string(e.Role),
		Name:     e.LegalName(),
		Profile:  e.Profile,
		Onboarding: OnboardingDetail{
			Status:      string(e.Onboarding.Status),
			SubmittedAt: e.Onboarding.SubmittedAt,
			ReviewedAt:  e.Onboarding.ReviewedAt,
			Feedback:    e.Onboarding.Feedback,
			FormData:    e.Onboarding.FormData,
		},
		Documents: documentsOf(e),
		Visa: VisaDetail{
			OptRequired:        e.Visa.OptRequired,
			Progress:           visa.MapToStatusResponse(workflow.DeriveProgress(e)),
			NotificationLog:    log,
			LastNotificationAt: e.Visa.LastNotificationAt,
		},
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
