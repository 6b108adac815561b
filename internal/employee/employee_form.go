package employee

import (
	"strings"
	"time"
)

type WorkAuthorization string

const (
	WorkAuthGreenCard WorkAuthorization = "green_card"
	WorkAuthCitizen   WorkAuthorization = "citizen"
	WorkAuthH1B       WorkAuthorization = "h1b"
	WorkAuthL2        WorkAuthorization = "l2"
	WorkAuthF1OPT     WorkAuthorization = "f1_opt"
	WorkAuthH4        WorkAuthorization = "h4"
	WorkAuthOther     WorkAuthorization = "other"
)

type Gender string

const (
	GenderMale              Gender = "male"
	GenderFemale            Gender = "female"
	GenderPreferNotToAnswer Gender = "prefer_not_to_answer"
)

type CitizenshipStatus string

const (
	CitizenshipCitizen     CitizenshipStatus = "citizen"
	CitizenshipGreenCard   CitizenshipStatus = "green_card"
	CitizenshipNonResident CitizenshipStatus = "non_resident"
)

// FormData is shared by the onboarding application and the confirmed profile.
type FormData struct {
	PersonalInfo      *PersonalInfo `json:"personal_info,omitempty"`
	Address           *Address      `json:"address,omitempty"`
	ContactInfo       *ContactInfo  `json:"contact_info,omitempty"`
	Employment        *Employment   `json:"employment,omitempty"`
	Reference         *Contact      `json:"reference,omitempty"`
	EmergencyContacts []Contact     `json:"emergency_contacts,omitempty"`
}

type PersonalInfo struct {
	FirstName         string            `json:"first_name"`
	LastName          string            `json:"last_name"`
	MiddleName        string            `json:"middle_name,omitempty"`
	PreferredName     string            `json:"preferred_name,omitempty"`
	ProfilePicture    string            `json:"profile_picture,omitempty"`
	Email             string            `json:"email,omitempty"`
	SSN               string            `json:"ssn,omitempty"`
	DateOfBirth       *time.Time        `json:"date_of_birth,omitempty"`
	Gender            Gender            `json:"gender,omitempty"`
	CitizenshipStatus CitizenshipStatus `json:"citizenship_status,omitempty"`
	ResidentType      string            `json:"resident_type,omitempty"`
}

type Address struct {
	Building string `json:"building,omitempty"`
	Street   string `json:"street,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Zip      string `json:"zip,omitempty"`
}

type ContactInfo struct {
	CellPhone string `json:"cell_phone,omitempty"`
	WorkPhone string `json:"work_phone,omitempty"`
}

type Employment struct {
	WorkAuthorization      WorkAuthorization `json:"work_authorization,omitempty"`
	WorkAuthorizationOther string            `json:"work_authorization_other,omitempty"`
	VisaTitle              string            `json:"visa_title,omitempty"`
	StartDate              *time.Time        `json:"start_date,omitempty"`
	EndDate                *time.Time        `json:"end_date,omitempty"`
	OPTReceiptNumber       string            `json:"opt_receipt_number,omitempty"`
}

type Contact struct {
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	MiddleName   string `json:"middle_name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// Clone deep-copies the form so a promoted profile never aliases the
// onboarding submission.
func (f *FormData) Clone() *FormData {
	if f == nil {
		return nil
	}
	out := &FormData{}
	if f.PersonalInfo != nil {
		p := *f.PersonalInfo
		if f.PersonalInfo.DateOfBirth != nil {
			dob := *f.PersonalInfo.DateOfBirth
			p.DateOfBirth = &dob
		}
		out.PersonalInfo = &p
	}
	if f.Address != nil {
		a := *f.Address
		out.Address = &a
	}
	if f.ContactInfo != nil {
		c := *f.ContactInfo
		out.ContactInfo = &c
	}
	if f.Employment != nil {
		e := *f.Employment
		if f.Employment.StartDate != nil {
			d := *f.Employment.StartDate
			e.StartDate = &d
		}
		if f.Employment.EndDate != nil {
			d := *f.Employment.EndDate
			e.EndDate = &d
		}
		out.Employment = &e
	}
	if f.Reference != nil {
		r := *f.Reference
		out.Reference = &r
	}
	if f.EmergencyContacts != nil {
		out.EmergencyContacts = append([]Contact(nil), f.EmergencyContacts...)
	}
	return out
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
