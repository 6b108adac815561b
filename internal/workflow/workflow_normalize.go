package workflow

import (
	"strings"

	"go-hiring/internal/employee"
)

// keywordRule maps free text to a canonical value when the input, lowered
// and stripped to letters and digits, contains keyword. Rules are tried in
// order, first hit wins, so "female" must precede "male".
type keywordRule struct {
	keyword string
	value   string
}

var genderRules = []keywordRule{
	{"female", string(employee.GenderFemale)},
	{"male", string(employee.GenderMale)},
}

var workAuthorizationRules = []keywordRule{
	{"green", string(employee.WorkAuthGreenCard)},
	{"citizen", string(employee.WorkAuthCitizen)},
	{"h1", string(employee.WorkAuthH1B)},
	{"l2", string(employee.WorkAuthL2)},
	{"f1", string(employee.WorkAuthF1OPT)},
	{"h4", string(employee.WorkAuthH4)},
}

var citizenshipRules = []keywordRule{
	{"citizen", string(employee.CitizenshipCitizen)},
	{"green", string(employee.CitizenshipGreenCard)},
}

func matchKeyword(rules []keywordRule, raw string) (string, bool) {
	s := compact(raw)
	for _, r := range rules {
		if strings.Contains(s, r.keyword) {
			return r.value, true
		}
	}
	return "", false
}

func compact(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeGender falls back to prefer_not_to_answer; blank stays blank.
func NormalizeGender(raw string) employee.Gender {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	if strings.ToLower(strings.TrimSpace(raw)) == string(employee.GenderPreferNotToAnswer) {
		return employee.GenderPreferNotToAnswer
	}
	if v, ok := matchKeyword(genderRules, raw); ok {
		return employee.Gender(v)
	}
	return employee.GenderPreferNotToAnswer
}

// NormalizeWorkAuthorization falls back to other; blank stays blank.
func NormalizeWorkAuthorization(raw string) employee.WorkAuthorization {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	switch employee.WorkAuthorization(s) {
	case employee.WorkAuthGreenCard, employee.WorkAuthCitizen, employee.WorkAuthH1B,
		employee.WorkAuthL2, employee.WorkAuthF1OPT, employee.WorkAuthH4, employee.WorkAuthOther:
		return employee.WorkAuthorization(s)
	}
	if v, ok := matchKeyword(workAuthorizationRules, s); ok {
		return employee.WorkAuthorization(v)
	}
	return employee.WorkAuthOther
}

// NormalizeCitizenship falls back to non_resident; blank stays blank.
func NormalizeCitizenship(raw string) employee.CitizenshipStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	if s == string(employee.CitizenshipNonResident) {
		return employee.CitizenshipNonResident
	}
	if v, ok := matchKeyword(citizenshipRules, s); ok {
		return employee.CitizenshipStatus(v)
	}
	return employee.CitizenshipNonResident
}

// NormalizeEmployment keeps unrecognised free text in WorkAuthorizationOther.
func NormalizeEmployment(in *employee.Employment) *employee.Employment {
	if in == nil {
		return nil
	}
	out := *in
	raw := string(in.WorkAuthorization)
	out.WorkAuthorization = NormalizeWorkAuthorization(raw)
	if out.WorkAuthorization == employee.WorkAuthOther && out.WorkAuthorizationOther == "" &&
		strings.ToLower(strings.TrimSpace(raw)) != string(employee.WorkAuthOther) {
		out.WorkAuthorizationOther = strings.TrimSpace(raw)
	}
	return &out
}

func NormalizePersonalInfo(in *employee.PersonalInfo, accountEmail string) *employee.PersonalInfo {
	out := employee.PersonalInfo{}
	if in != nil {
		out = *in
	}
	out.FirstName = strings.TrimSpace(out.FirstName)
	out.LastName = strings.TrimSpace(out.LastName)
	out.MiddleName = strings.TrimSpace(out.MiddleName)
	out.PreferredName = strings.TrimSpace(out.PreferredName)
	out.Email = accountEmail
	out.Gender = NormalizeGender(string(out.Gender))
	out.CitizenshipStatus = NormalizeCitizenship(string(out.CitizenshipStatus))
	return &out
}

// NormalizeForm returns a normalised deep copy; the account email always
// replaces whatever the form carried.
func NormalizeForm(form *employee.FormData, accountEmail string) *employee.FormData {
	out := form.Clone()
	if out == nil {
		out = &employee.FormData{}
	}
	out.PersonalInfo = NormalizePersonalInfo(out.PersonalInfo, accountEmail)
	out.Employment = NormalizeEmployment(out.Employment)
	return out
}
