package events

import "time"

// AccountRegisteredTopic is produced by the identity service once a user has
// signed up; an employee record is provisioned from it.
const AccountRegisteredTopic = "hr.account.registered.v1"

type AccountRegisteredEvent struct {
	EventType  string    `json:"event_type"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}
