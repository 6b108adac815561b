package workflow

import (
	"time"

	"go-hiring/internal/employee"
	workflowerrors "go-hiring/internal/workflow/errors"
)

// UploadedFile is what the storage collaborator reports back after a save.
type UploadedFile struct {
	URL          string
	FileName     string
	OriginalName string
	MimeType     string
	Size         int64
}

// CanUpload decides whether a document of type t may be uploaded now.
// Non-visa types are never gated.
func CanUpload(e *employee.Employee, t employee.DocumentType) error {
	if !IsSupported(t) {
		return workflowerrors.ErrUnsupportedDocumentType
	}

	idx := visaIndex(t)
	if idx < 0 {
		return nil
	}

	if !e.Visa.OptRequired {
		return workflowerrors.ErrVisaNotRequired
	}

	for _, prev := range VisaSequence[:idx] {
		doc, ok := e.Document(prev)
		if !ok || doc.Status != employee.DocumentApproved {
			return workflowerrors.NewPrerequisiteError(string(prev), Label(prev))
		}
	}
	return nil
}

// RecordUpload creates or replaces the single live document of type t.
// A replacement starts over: review metadata from the prior upload is dropped.
func RecordUpload(e *employee.Employee, t employee.DocumentType, f UploadedFile, now time.Time) (employee.Document, error) {
	if err := CanUpload(e, t); err != nil {
		return employee.Document{}, err
	}

	doc := employee.Document{
		Type:         t,
		Label:        Label(t),
		Category:     CategoryOf(t),
		URL:          f.URL,
		FileName:     f.FileName,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		Size:         f.Size,
		Status:       InitialStatus(t),
		UploadedAt:   now,
	}
	stored := e.PutDocument(doc)

	if IsVisaType(t) {
		e.Visa.CurrentStep = employee.VisaStep(t)
	}
	return *stored, nil
}
