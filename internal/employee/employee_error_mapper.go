package employee

import (
	"errors"
	"strings"

	employeeerrors "go-hiring/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var ErrStaleVersion = errors.New("employee: stale aggregate version")

// MapRepositoryError converts storage failures into client-facing errors.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	if errors.Is(err, ErrStaleVersion) {
		return employeeerrors.ErrConcurrentModification
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_employee_username":
				return employeeerrors.ErrUsernameAlreadyExists
			case "uq_employee_email":
				return employeeerrors.ErrEmployeeAlreadyExists
			case "employees_pkey":
				return employeeerrors.ErrEmployeeIDAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		switch {
		case strings.Contains(errMsg, "uq_employee_username"):
			return employeeerrors.ErrUsernameAlreadyExists
		case strings.Contains(errMsg, "uq_employee_email"):
			return employeeerrors.ErrEmployeeAlreadyExists
		case strings.Contains(errMsg, "employees_pkey"):
			return employeeerrors.ErrEmployeeIDAlreadyExists
		}
	}

	return err
}

// IsDuplicate reports whether err maps to one of the unique violations.
func IsDuplicate(err error) bool {
	mapped := MapRepositoryError(err)
	return errors.Is(mapped, employeeerrors.ErrEmployeeAlreadyExists) ||
		errors.Is(mapped, employeeerrors.ErrUsernameAlreadyExists) ||
		errors.Is(mapped, employeeerrors.ErrEmployeeIDAlreadyExists)
}

// RequireEmployee reports HR and other non-employee accounts as not found.
func RequireEmployee(empl *Employee) error {
	if empl == nil || empl.Role != RoleEmployee {
		return employeeerrors.ErrEmployeeNotFound
	}
	return nil
}
