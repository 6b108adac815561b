package workflow

import (
	"go-hiring/internal/employee"
)

// ApplyWorkAuthorization recomputes the pipeline requirement and resets the
// current step. The reset is unconditional: any authoritative change of
// employment data restarts the sequence pointer.
func ApplyWorkAuthorization(w *employee.VisaWorkflow, workAuth employee.WorkAuthorization) {
	w.OptRequired = workAuth == employee.WorkAuthF1OPT
	if w.OptRequired {
		w.CurrentStep = employee.StepOPTReceipt
		return
	}
	w.CurrentStep = employee.StepNotApplicable
}

// SyncVisaWorkflow applies the linkage from the effective employment data.
func SyncVisaWorkflow(e *employee.Employee) {
	var workAuth employee.WorkAuthorization
	if emp := e.EffectiveEmployment(); emp != nil {
		workAuth = emp.WorkAuthorization
	}
	ApplyWorkAuthorization(&e.Visa, workAuth)
}
