package events

import "time"

const (
	OnboardingDecidedTopic     = "hr.onboarding.decided.v1"
	OnboardingDecidedEventType = "onboarding.decided"
)

type OnboardingDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Feedback   string    `json:"feedback,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
