package workflow_test

import (
	"testing"

	"go-hiring/internal/employee"
	"go-hiring/internal/workflow"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGender(t *testing.T) {
	cases := map[string]employee.Gender{
		"":                     "",
		"Female":               employee.GenderFemale,
		"FEMALE ":              employee.GenderFemale,
		"male":                 employee.GenderMale,
		"Male":                 employee.GenderMale,
		"prefer_not_to_answer": employee.GenderPreferNotToAnswer,
		"I'd rather not say":   employee.GenderPreferNotToAnswer,
	}
	for in, want := range cases {
		assert.Equal(t, want, workflow.NormalizeGender(in), in)
	}
}

func TestNormalizeWorkAuthorization(t *testing.T) {
	cases := map[string]employee.WorkAuthorization{
		"":            "",
		"f1_opt":      employee.WorkAuthF1OPT,
		"F-1 OPT":     employee.WorkAuthF1OPT,
		"F1(CPT/OPT)": employee.WorkAuthF1OPT,
		"Green Card":  employee.WorkAuthGreenCard,
		"US Citizen":  employee.WorkAuthCitizen,
		"H-1B":        employee.WorkAuthH1B,
		"L2":          employee.WorkAuthL2,
		"H4":          employee.WorkAuthH4,
		"other":       employee.WorkAuthOther,
		"TN visa":     employee.WorkAuthOther,
	}
	for in, want := range cases {
		assert.Equal(t, want, workflow.NormalizeWorkAuthorization(in), in)
	}
}

func TestNormalizeCitizenship(t *testing.T) {
	assert.Equal(t, employee.CitizenshipCitizen, workflow.NormalizeCitizenship("Citizen"))
	assert.Equal(t, employee.CitizenshipGreenCard, workflow.NormalizeCitizenship("green card"))
	assert.Equal(t, employee.CitizenshipNonResident, workflow.NormalizeCitizenship("non_resident"))
	assert.Equal(t, employee.CitizenshipNonResident, workflow.NormalizeCitizenship("visitor"))
	assert.Equal(t, employee.CitizenshipStatus(""), workflow.NormalizeCitizenship(""))
}

func TestNormalizeEmployment_KeepsUnknownText(t *testing.T) {
	out := workflow.NormalizeEmployment(&employee.Employment{WorkAuthorization: "TN visa"})

	assert.Equal(t, employee.WorkAuthOther, out.WorkAuthorization)
	assert.Equal(t, "TN visa", out.WorkAuthorizationOther)

	out = workflow.NormalizeEmployment(&employee.Employment{WorkAuthorization: "other", WorkAuthorizationOther: "E-3"})
	assert.Equal(t, "E-3", out.WorkAuthorizationOther)

	assert.Nil(t, workflow.NormalizeEmployment(nil))
}
