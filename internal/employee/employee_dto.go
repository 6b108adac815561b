package employee

type ProvisionRequest struct {
	UserID   string `json:"user_id" validate:"required,uuid"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"omitempty,oneof=employee hr"`
}

type AccountResponse struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	OnboardingStatus string `json:"onboarding_status"`
	VisaStep         string `json:"visa_step"`
}
