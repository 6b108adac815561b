package rbac

import (
	"go-hiring/internal/domain"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

type Policy struct {
	Role     string
	Resource string
	Action   string
}

var DefaultPolicies = []Policy{
	{"employee", domain.ResourceProfile, domain.ActionRead},
	{"employee", domain.ResourceProfile, domain.ActionUpdate},
	{"employee", domain.ResourceOnboarding, domain.ActionSubmit},
	{"employee", domain.ResourceOnboarding, domain.ActionRead},
	{"employee", domain.ResourceVisa, domain.ActionUpload},
	{"employee", domain.ResourceVisa, domain.ActionRead},

	{"hr", domain.ResourceProfile, domain.ActionRead},
	{"hr", domain.ResourceProfile, domain.ActionUpdate},
	{"hr", domain.ResourceEmployees, domain.ActionRead},
	{"hr", domain.ResourceOnboarding, domain.ActionReview},
	{"hr", domain.ResourceVisa, domain.ActionReview},
	{"hr", domain.ResourceVisa, domain.ActionNotify},
}

// NewEnforcer builds an in-memory enforcer loaded with policies, or with
// DefaultPolicies when none are given.
func NewEnforcer(policies ...Policy) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if len(policies) == 0 {
		policies = DefaultPolicies
	}
	rules := make([][]string, 0, len(policies))
	for _, p := range policies {
		rules = append(rules, []string{p.Role, p.Resource, p.Action})
	}
	if _, err := e.AddPolicies(rules); err != nil {
		return nil, err
	}

	return e, nil
}
