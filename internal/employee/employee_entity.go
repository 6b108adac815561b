package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleHR       Role = "hr"
)

type OnboardingStatus string

const (
	OnboardingNeverSubmitted OnboardingStatus = "never_submitted"
	OnboardingPending        OnboardingStatus = "pending"
	OnboardingApproved       OnboardingStatus = "approved"
	OnboardingRejected       OnboardingStatus = "rejected"
)

type DocumentType string

const (
	DocProfilePicture    DocumentType = "profile_picture"
	DocDriversLicense    DocumentType = "drivers_license"
	DocWorkAuthorization DocumentType = "work_authorization"
	DocOPTReceipt        DocumentType = "opt_receipt"
	DocOPTEAD            DocumentType = "opt_ead"
	DocI983              DocumentType = "i_983"
	DocI20               DocumentType = "i_20"
	DocOther             DocumentType = "other"
)

type DocumentCategory string

const (
	CategoryProfile    DocumentCategory = "profile"
	CategoryOnboarding DocumentCategory = "onboarding"
	CategoryVisa       DocumentCategory = "visa"
	CategoryOther      DocumentCategory = "other"
)

type DocumentStatus string

const (
	// DocumentNotUploaded is only ever derived, never stored.
	DocumentNotUploaded DocumentStatus = "not_uploaded"
	DocumentUploaded    DocumentStatus = "uploaded"
	DocumentPending     DocumentStatus = "pending"
	DocumentApproved    DocumentStatus = "approved"
	DocumentRejected    DocumentStatus = "rejected"
)

type VisaStep string

const (
	StepNotApplicable VisaStep = "not_applicable"
	StepOPTReceipt    VisaStep = VisaStep(DocOPTReceipt)
	StepOPTEAD        VisaStep = VisaStep(DocOPTEAD)
	StepI983          VisaStep = VisaStep(DocI983)
	StepI20           VisaStep = VisaStep(DocI20)
	StepCompleted     VisaStep = "completed"
)

type Document struct {
	Type         DocumentType     `json:"type"`
	Label        string           `json:"label"`
	Category     DocumentCategory `json:"category"`
	URL          string           `json:"url"`
	FileName     string           `json:"file_name"`
	OriginalName string           `json:"original_name"`
	MimeType     string           `json:"mime_type"`
	Size         int64            `json:"size"`
	Status       DocumentStatus   `json:"status"`
	Feedback     string           `json:"feedback,omitempty"`
	UploadedAt   time.Time        `json:"uploaded_at"`
	ReviewedAt   *time.Time       `json:"reviewed_at,omitempty"`
	Reviewer     *uuid.UUID       `json:"reviewer,omitempty"`
}

type Onboarding struct {
	Status      OnboardingStatus `gorm:"type:varchar(20);not null;default:'never_submitted';index"`
	SubmittedAt *time.Time
	ReviewedAt  *time.Time
	Reviewer    *uuid.UUID `gorm:"type:uuid"`
	Feedback    *string
	FormData    *FormData `gorm:"type:jsonb;serializer:json"`
}

type Notification struct {
	Subject string    `json:"subject"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

type VisaWorkflow struct {
	OptRequired        bool                              `gorm:"not null;default:false"`
	CurrentStep        VisaStep                          `gorm:"type:varchar(20);not null;default:'not_applicable'"`
	NotificationLog    datatypes.JSONSlice[Notification] `gorm:"type:jsonb"`
	LastNotificationAt *time.Time
}

type Employee struct {
	ID         uuid.UUID                     `gorm:"type:uuid;primaryKey"`
	Username   string                        `gorm:"uniqueIndex:uq_employee_username"`
	Email      string                        `gorm:"uniqueIndex:uq_employee_email"`
	Role       Role                          `gorm:"type:varchar(20);not null;default:'employee';index"`
	Profile    *FormData                     `gorm:"type:jsonb;serializer:json"`
	Onboarding Onboarding                    `gorm:"embedded;embeddedPrefix:onboarding_"`
	Documents  datatypes.JSONSlice[Document] `gorm:"type:jsonb"`
	Visa       VisaWorkflow                  `gorm:"embedded;embeddedPrefix:visa_"`
	Version    int64                         `gorm:"not null;default:1"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	docIndex map[DocumentType]int `gorm:"-"`
}

func (Employee) TableName() string { return "employees" }

// New builds a freshly registered account: nothing submitted, no visa pipeline.
func New(id uuid.UUID, username, email string, role Role) *Employee {
	if role == "" {
		role = RoleEmployee
	}
	return &Employee{
		ID:       id,
		Username: username,
		Email:    email,
		Role:     role,
		Onboarding: Onboarding{
			Status: OnboardingNeverSubmitted,
		},
		Documents: datatypes.JSONSlice[Document]{},
		Visa: VisaWorkflow{
			OptRequired:     false,
			CurrentStep:     StepNotApplicable,
			NotificationLog: datatypes.JSONSlice[Notification]{},
		},
		Version: 1,
	}
}

func (e *Employee) index() map[DocumentType]int {
	if e.docIndex == nil || len(e.docIndex) != len(e.Documents) {
		e.docIndex = make(map[DocumentType]int, len(e.Documents))
		for i, d := range e.Documents {
			e.docIndex[d.Type] = i
		}
	}
	return e.docIndex
}

// Document returns the live document of a type. The pointer aliases the
// aggregate, so callers may mutate review fields in place.
func (e *Employee) Document(t DocumentType) (*Document, bool) {
	i, ok := e.index()[t]
	if !ok {
		return nil, false
	}
	return &e.Documents[i], true
}

// PutDocument replaces the document of the same type in place, or appends it.
func (e *Employee) PutDocument(d Document) *Document {
	idx := e.index()
	if i, ok := idx[d.Type]; ok {
		e.Documents[i] = d
		return &e.Documents[i]
	}
	e.Documents = append(e.Documents, d)
	idx[d.Type] = len(e.Documents) - 1
	return &e.Documents[len(e.Documents)-1]
}

// EffectiveEmployment resolves employment data for gating decisions. The
// confirmed profile wins; before approval the submitted form is used.
func (e *Employee) EffectiveEmployment() *Employment {
	if e.Profile != nil && e.Profile.Employment != nil {
		return e.Profile.Employment
	}
	if e.Onboarding.FormData != nil {
		return e.Onboarding.FormData.Employment
	}
	return nil
}

// EffectivePersonalInfo follows the same precedence as EffectiveEmployment.
func (e *Employee) EffectivePersonalInfo() *PersonalInfo {
	if e.Profile != nil && e.Profile.PersonalInfo != nil {
		return e.Profile.PersonalInfo
	}
	if e.Onboarding.FormData != nil {
		return e.Onboarding.FormData.PersonalInfo
	}
	return nil
}

// LegalName is first, middle and last name joined, or the username when
// nothing has been provided yet.
func (e *Employee) LegalName() string {
	info := e.EffectivePersonalInfo()
	if info == nil {
		return e.Username
	}
	name := joinNonEmpty(info.FirstName, info.MiddleName, info.LastName)
	if name == "" {
		return e.Username
	}
	return name
}
