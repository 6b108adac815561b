package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps code and details", func(t *testing.T) {
		err := New(CodePrerequisiteNotMet, "wait", http.StatusBadRequest).
			WithDetails(map[string]any{"missing_step": "opt_receipt"})

		got := ToHTTP(fmt.Errorf("wrapped: %w", err))

		assert.Equal(t, http.StatusBadRequest, got.Status)
		assert.Equal(t, CodePrerequisiteNotMet, got.Code)
		assert.Equal(t, "wait", got.Message)
		assert.Equal(t, map[string]any{"missing_step": "opt_receipt"}, got.Details)
	})

	t.Run("unknown error becomes internal", func(t *testing.T) {
		got := ToHTTP(errors.New("pq: connection reset"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, CodeInternalError, got.Code)
		assert.Equal(t, "Internal server error", got.Message)
		assert.Nil(t, got.Details)
	})
}

func TestWithDetails_DoesNotMutateReceiver(t *testing.T) {
	base := New(CodeInvalidInput, "bad", http.StatusBadRequest)

	withDetails := base.WithDetails("x")

	assert.Nil(t, base.Details)
	assert.Equal(t, "x", withDetails.Details)
	assert.ErrorIs(t, Wrap(base, CodeInternalError, "outer", 500), base)
}

func TestMapValidationError(t *testing.T) {
	type payload struct {
		FirstName string `json:"first_name" validate:"required"`
		Email     string `json:"email" validate:"omitempty,email"`
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	err := MapValidationError(v.Struct(payload{}))
	var appErr *AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, CodeValidation, appErr.Code)
	assert.Equal(t, "First Name is required", appErr.Message)

	err = MapValidationError(v.Struct(payload{FirstName: "a", Email: "nope"}))
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Email is invalid", appErr.Message)

	err = MapValidationError(errors.New("EOF"))
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Invalid input", appErr.Message)
}
