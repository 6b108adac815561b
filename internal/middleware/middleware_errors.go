package middleware

import (
	"net/http"

	"go-hiring/internal/shared/apperror"
	"go-hiring/internal/shared/response"

	"github.com/gin-gonic/gin"
)

var (
	ErrTokenNotFound = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken  = apperror.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired  = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)

	ErrRequestInProgress = apperror.New(apperror.CodeConflict, "This request is already being processed, please wait.", http.StatusConflict)
	ErrTooManyRequests   = apperror.New(apperror.CodeTooManyRequests, "Too many requests, please slow down.", http.StatusTooManyRequests)
)

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Abort(c, err.HTTPStatus, err.Code, err.Message)
}
