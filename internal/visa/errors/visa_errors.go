package visaerrors

import (
	"go-hiring/internal/shared/apperror"
)

var (
	ErrMessageRequired = apperror.RequiredField("message")
	ErrInvalidReviewer = apperror.ErrUnauthorized
)
