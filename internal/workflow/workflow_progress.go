package workflow

import (
	"fmt"

	"go-hiring/internal/employee"
)

type Action string

const (
	ActionNone     Action = "none"
	ActionUpload   Action = "upload"
	ActionReview   Action = "review"
	ActionResubmit Action = "resubmit"
)

// StepStatus is one row of the pipeline as the employee sees it.
type StepStatus struct {
	Type     employee.DocumentType
	Label    string
	Status   employee.DocumentStatus
	Document *employee.Document
}

// Progress is the single derived view of the OPT pipeline. Message carries
// the employee wording, NextStep the HR wording; both come out of the same
// branch so the two audiences cannot disagree.
type Progress struct {
	RequiresOPT     bool
	CurrentStep     employee.VisaStep
	Completed       bool
	Action          Action
	Message         string
	NextStep        string
	PendingDocument *employee.Document
	Steps           []StepStatus
}

const (
	msgAllApproved = "All documents have been approved."
	msgNotRequired = "Visa documents are not required."
)

// DeriveProgress scans the sequence in order and stops at the first step
// that is not approved. It never reads the stored current step.
func DeriveProgress(e *employee.Employee) Progress {
	if !e.Visa.OptRequired {
		return Progress{
			RequiresOPT: false,
			CurrentStep: employee.StepNotApplicable,
			Action:      ActionNone,
			Message:     msgNotRequired,
			NextStep:    msgNotRequired,
		}
	}

	p := Progress{
		RequiresOPT: true,
		Steps:       make([]StepStatus, 0, len(VisaSequence)),
	}
	decided := false

	for _, t := range VisaSequence {
		label := Label(t)
		doc, ok := e.Document(t)

		step := StepStatus{Type: t, Label: label, Status: employee.DocumentNotUploaded}
		if ok {
			cp := *doc
			step.Status = cp.Status
			step.Document = &cp
		}
		p.Steps = append(p.Steps, step)

		if decided {
			continue
		}

		switch {
		case !ok:
			p.CurrentStep = employee.VisaStep(t)
			p.Action = ActionUpload
			p.Message = fmt.Sprintf("Please upload %s.", label)
			p.NextStep = fmt.Sprintf("Employee must upload %s", label)
			decided = true
		case doc.Status == employee.DocumentPending:
			p.CurrentStep = employee.VisaStep(t)
			p.Action = ActionReview
			p.Message = fmt.Sprintf("Waiting for HR to review your %s.", label)
			p.NextStep = fmt.Sprintf("Waiting for HR to review %s", label)
			p.PendingDocument = step.Document
			decided = true
		case doc.Status == employee.DocumentRejected:
			p.CurrentStep = employee.VisaStep(t)
			p.Action = ActionResubmit
			if doc.Feedback != "" {
				p.Message = doc.Feedback
				p.NextStep = doc.Feedback
			} else {
				p.Message = fmt.Sprintf("%s was rejected. Please upload an updated version.", label)
				p.NextStep = fmt.Sprintf("%s was rejected. Employee must resubmit.", label)
			}
			decided = true
		case doc.Status == employee.DocumentApproved:
			// next step
		default:
			// uploaded without review state; treat as awaiting HR
			p.CurrentStep = employee.VisaStep(t)
			p.Action = ActionReview
			p.Message = fmt.Sprintf("Waiting for HR to review your %s.", label)
			p.NextStep = fmt.Sprintf("Waiting for HR to review %s", label)
			p.PendingDocument = step.Document
			decided = true
		}
	}

	if !decided {
		p.CurrentStep = employee.StepCompleted
		p.Completed = true
		p.Action = ActionNone
		p.Message = msgAllApproved
		p.NextStep = msgAllApproved
	}
	return p
}
