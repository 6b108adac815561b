package workflow

import (
	"go-hiring/internal/employee"
)

// VisaSequence is the fixed approval order of the OPT pipeline.
var VisaSequence = []employee.DocumentType{
	employee.DocOPTReceipt,
	employee.DocOPTEAD,
	employee.DocI983,
	employee.DocI20,
}

var documentLabels = map[employee.DocumentType]string{
	employee.DocProfilePicture:    "Profile Picture",
	employee.DocDriversLicense:    "Driver's License",
	employee.DocWorkAuthorization: "Work Authorization",
	employee.DocOPTReceipt:        "OPT Receipt",
	employee.DocOPTEAD:            "OPT EAD",
	employee.DocI983:              "Form I-983",
	employee.DocI20:               "I-20",
	employee.DocOther:             "Supporting Document",
}

func IsSupported(t employee.DocumentType) bool {
	_, ok := documentLabels[t]
	return ok
}

func Label(t employee.DocumentType) string {
	if l, ok := documentLabels[t]; ok {
		return l
	}
	return string(t)
}

func IsVisaType(t employee.DocumentType) bool {
	return visaIndex(t) >= 0
}

func visaIndex(t employee.DocumentType) int {
	for i, v := range VisaSequence {
		if v == t {
			return i
		}
	}
	return -1
}

func CategoryOf(t employee.DocumentType) employee.DocumentCategory {
	switch {
	case IsVisaType(t):
		return employee.CategoryVisa
	case t == employee.DocProfilePicture:
		return employee.CategoryProfile
	case t == employee.DocOther:
		return employee.CategoryOther
	default:
		return employee.CategoryOnboarding
	}
}

// InitialStatus: visa documents wait for HR, everything else is just stored.
func InitialStatus(t employee.DocumentType) employee.DocumentStatus {
	if IsVisaType(t) {
		return employee.DocumentPending
	}
	return employee.DocumentUploaded
}

// StepAfter is the step that becomes current once t is approved.
func StepAfter(t employee.DocumentType) employee.VisaStep {
	i := visaIndex(t)
	if i < 0 || i == len(VisaSequence)-1 {
		return employee.StepCompleted
	}
	return employee.VisaStep(VisaSequence[i+1])
}

// DocumentTypes lists every supported type, visa types in pipeline order last.
func DocumentTypes() []employee.DocumentType {
	return []employee.DocumentType{
		employee.DocProfilePicture,
		employee.DocDriversLicense,
		employee.DocWorkAuthorization,
		employee.DocOther,
		employee.DocOPTReceipt,
		employee.DocOPTEAD,
		employee.DocI983,
		employee.DocI20,
	}
}
