package onboardingerrors

import (
	"net/http"

	"go-hiring/internal/shared/apperror"
)

var (
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeValidation,
		"Status must be pending, approved or rejected.",
		http.StatusBadRequest,
	).WithDetails(map[string]any{"field": "status"})
	ErrInvalidReviewer = apperror.New(
		apperror.CodeUnauthorized,
		"Reviewer identity is invalid",
		http.StatusUnauthorized,
	)
)
