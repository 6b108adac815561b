package profileerrors

import (
	"net/http"

	"go-hiring/internal/shared/apperror"
)

var (
	ErrEmptyUpdate = apperror.New(
		apperror.CodeValidation,
		"At least one profile section is required.",
		http.StatusBadRequest,
	)
)
