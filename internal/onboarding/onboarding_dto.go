package onboarding

import (
	"time"

	"go-hiring/internal/employee"
)

type SubmitOnboardingRequest struct {
	PersonalInfo      *employee.PersonalInfo `json:"personal_info" binding:"required"`
	Address           *employee.Address      `json:"address"`
	ContactInfo       *employee.ContactInfo  `json:"contact_info"`
	Employment        *employee.Employment   `json:"employment"`
	Reference         *employee.Contact      `json:"reference"`
	EmergencyContacts []employee.Contact     `json:"emergency_contacts"`
}

func (r SubmitOnboardingRequest) Form() *employee.FormData {
	return &employee.FormData{
		PersonalInfo:      r.PersonalInfo,
		Address:           r.Address,
		ContactInfo:       r.ContactInfo,
		Employment:        r.Employment,
		Reference:         r.Reference,
		EmergencyContacts: r.EmergencyContacts,
	}
}

type DecideOnboardingRequest struct {
	Status   string `json:"status" binding:"required,oneof=approved rejected"`
	Feedback string `json:"feedback"`
}

type ApplicationResponse struct {
	EmployeeID  string              `json:"employee_id"`
	Username    string              `json:"username"`
	Email       string              `json:"email"`
	Name        string              `json:"name"`
	Status      string              `json:"status"`
	SubmittedAt *time.Time          `json:"submitted_at,omitempty"`
	ReviewedAt  *time.Time          `json:"reviewed_at,omitempty"`
	Feedback    *string             `json:"feedback,omitempty"`
	FormData    *employee.FormData  `json:"form_data,omitempty"`
	Documents   []employee.Document `json:"documents"`
}

type ApplicationSummary struct {
	EmployeeID  string     `json:"employee_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Status      string     `json:"status"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	Feedback    *string    `json:"feedback,omitempty"`
}

func MapToApplicationResponse(e *employee.Employee) ApplicationResponse {
	docs := make([]employee.Document, 0, len(e.Documents))
	for _, d := range e.Documents {
		if d.Category != employee.CategoryVisa {
			docs = append(docs, d)
		}
	}

	status := e.Onboarding.Status
	if status == "" {
		status = employee.OnboardingNeverSubmitted
	}

	return ApplicationResponse{
		EmployeeID:  e.ID.String(),
		Username:    e.Username,
		Email:       e.Email,
		Name:        e.LegalName(),
		Status:      string(status),
		SubmittedAt: e.Onboarding.SubmittedAt,
		ReviewedAt:  e.Onboarding.ReviewedAt,
		Feedback:    e.Onboarding.Feedback,
		FormData:    e.Onboarding.FormData,
		Documents:   docs,
	}
}

func MapToApplicationSummary(e *employee.Employee) ApplicationSummary {
	return ApplicationSummary{
		EmployeeID:  e.ID.String(),
		Name:        e.LegalName(),
		Email:       e.Email,
		Status:      string(e.Onboarding.Status),
		SubmittedAt: e.Onboarding.SubmittedAt,
		Feedback:    e.Onboarding.Feedback,
	}
}
