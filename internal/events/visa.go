package events

import "time"

const (
	VisaDocumentReviewedTopic     = "hr.visa.document.reviewed.v1"
	VisaDocumentReviewedEventType = "visa.document.reviewed"

	VisaDocumentUploadedTopic     = "hr.visa.document.uploaded.v1"
	VisaDocumentUploadedEventType = "visa.document.uploaded"
)

type VisaDocumentReviewedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	DocumentType string    `json:"document_type"`
	Label        string    `json:"label"`
	Status       string    `json:"status"`
	Feedback     string    `json:"feedback,omitempty"`
	CurrentStep  string    `json:"current_step"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type VisaDocumentUploadedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	DocumentType string    `json:"document_type"`
	Label        string    `json:"label"`
	OccurredAt   time.Time `json:"occurred_at"`
}
