package workflow_test

import (
	"time"

	"go-hiring/internal/employee"
	"go-hiring/internal/workflow"

	"github.com/google/uuid"
)

var (
	fixedNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	hrID     = uuid.MustParse("9b2f4c1e-0f7e-4b7a-9a55-2b1b7b3f6a10")
)

func newEmployee() *employee.Employee {
	return employee.New(uuid.New(), "jdoe", "jdoe@example.com", employee.RoleEmployee)
}

func newOPTEmployee() *employee.Employee {
	e := newEmployee()
	workflow.ApplyWorkAuthorization(&e.Visa, employee.WorkAuthF1OPT)
	return e
}

func file(name string) workflow.UploadedFile {
	return workflow.UploadedFile{
		URL:          "/uploads/" + name,
		FileName:     name,
		OriginalName: name,
		MimeType:     "application/pdf",
		Size:         1024,
	}
}

func withDoc(e *employee.Employee, t employee.DocumentType, status employee.DocumentStatus) *employee.Employee {
	e.PutDocument(employee.Document{
		Type:     t,
		Label:    workflow.Label(t),
		Category: workflow.CategoryOf(t),
		Status:   status,
		URL:      "/uploads/" + string(t) + ".pdf",
	})
	return e
}

func validForm(workAuth string) *employee.FormData {
	return &employee.FormData{
		PersonalInfo: &employee.PersonalInfo{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "someone-else@example.com",
			Gender:    "Female",
		},
		Employment: &employee.Employment{
			WorkAuthorization: employee.WorkAuthorization(workAuth),
		},
	}
}
