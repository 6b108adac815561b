package employee

import (
	"errors"
	"fmt"
	"testing"

	employeeerrors "go-hiring/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapRepositoryError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"not found", gorm.ErrRecordNotFound, employeeerrors.ErrEmployeeNotFound},
		{"stale version", fmt.Errorf("save: %w", ErrStaleVersion), employeeerrors.ErrConcurrentModification},
		{"email unique", &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"}, employeeerrors.ErrEmployeeAlreadyExists},
		{"username unique", &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_username"}, employeeerrors.ErrUsernameAlreadyExists},
		{"pkey unique", &pgconn.PgError{Code: "23505", ConstraintName: "employees_pkey"}, employeeerrors.ErrEmployeeIDAlreadyExists},
		{"message fallback", errors.New(`ERROR: duplicate key value violates unique constraint "uq_employee_email"`), employeeerrors.ErrEmployeeAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapRepositoryError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	raw := errors.New("connection refused")
	assert.Same(t, raw, MapRepositoryError(raw))
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, IsDuplicate(&pgconn.PgError{Code: "23505", ConstraintName: "employees_pkey"}))
	assert.False(t, IsDuplicate(gorm.ErrRecordNotFound))
	assert.False(t, IsDuplicate(errors.New("boom")))
}

func TestRequireEmployee(t *testing.T) {
	assert.NoError(t, RequireEmployee(New(uuid.New(), "jdoe", "jdoe@example.com", RoleEmployee)))
	assert.ErrorIs(t, RequireEmployee(New(uuid.New(), "boss", "boss@example.com", RoleHR)), employeeerrors.ErrEmployeeNotFound)
	assert.ErrorIs(t, RequireEmployee(nil), employeeerrors.ErrEmployeeNotFound)
}
