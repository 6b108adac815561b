package domain

// Resources and actions guarded by RBAC policies.
const (
	ResourceProfile    = "profile"
	ResourceOnboarding = "onboarding"
	ResourceVisa       = "visa"
	ResourceEmployees  = "employees"

	ActionRead   = "read"
	ActionUpdate = "update"
	ActionSubmit = "submit"
	ActionUpload = "upload"
	ActionReview = "review"
	ActionNotify = "notify"
)

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PolicyResponse struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}
