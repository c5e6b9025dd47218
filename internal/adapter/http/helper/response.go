package helper

import (
	"errors"
	"net/http"

	"tasknotes/internal/adapter/http/validation"
	"tasknotes/internal/core/domain"
	"tasknotes/internal/core/model/response"

	"github.com/gin-gonic/gin"
)

func SendSuccess[T any](c *gin.Context, statusCode int, data T, message ...string) {
	body := response.SuccessResponse[T]{
		Data: data,
	}

	if len(message) > 0 && message[0] != "" {
		body.Message = message[0]
	}

	c.JSON(statusCode, body)
}

func SendMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, response.SuccessResponse[any]{Message: message})
}

func SendError(c *gin.Context, statusCode int, code string, errors []response.ValidationError, details ...any) {
	errorResponse := response.ErrorResponse{
		Error: response.ResponseError{
			Code:   code,
			Errors: errors,
		},
	}

	if len(details) > 0 {
		errorResponse.Error.Details = details[0]
	}

	c.AbortWithStatusJSON(statusCode, errorResponse)
}

func SendValidationError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", validation.FormatValidationErrors(err))
}

func SendInternalError(c *gin.Context, message string, details ...any) {
	errors := []response.ValidationError{
		{
			Field:   "server",
			Message: message,
		},
	}

	SendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", errors, details...)
}

func SendUnauthenticatedError(c *gin.Context, message string) {
	errors := []response.ValidationError{
		{
			Field:   "auth",
			Message: message,
		},
	}

	SendError(c, http.StatusUnauthorized, "UNAUTHENTICATED", errors)
}

func SendInvalidCredentialsError(c *gin.Context) {
	errors := []response.ValidationError{
		{
			Field:   "auth",
			Message: "invalid email or password",
		},
	}

	SendError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", errors)
}

func SendConflictError(c *gin.Context, field string, message string) {
	errors := []response.ValidationError{
		{
			Field:   field,
			Message: message,
		},
	}

	SendError(c, http.StatusConflict, "CONFLICT", errors)
}

func SendBadRequestError(c *gin.Context, field string, message string) {
	errors := []response.ValidationError{
		{
			Field:   field,
			Message: message,
		},
	}

	SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", errors)
}

func SendNotFoundError(c *gin.Context, message string) {
	errors := []response.ValidationError{
		{
			Field:   "resource",
			Message: message,
		},
	}

	SendError(c, http.StatusNotFound, "NOT_FOUND", errors)
}

// SendDomainError maps a service error onto the error envelope. Unknown
// errors are reported as a generic 500 and never leak their text.
func SendDomainError(c *gin.Context, err error) {
	var invalid *domain.ValidationError

	switch {
	case errors.As(err, &invalid):
		SendBadRequestError(c, invalid.Field, invalid.Message)
	case errors.Is(err, domain.ErrValidation):
		SendBadRequestError(c, "body", err.Error())
	case errors.Is(err, domain.ErrConflict):
		SendConflictError(c, "email", "email is already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		SendInvalidCredentialsError(c)
	case errors.Is(err, domain.ErrUnauthenticated):
		SendUnauthenticatedError(c, "authentication required")
	case errors.Is(err, domain.ErrNotFound):
		SendNotFoundError(c, "resource not found")
	default:
		_ = c.Error(err)
		SendInternalError(c, "something went wrong, please try again")
	}
}
