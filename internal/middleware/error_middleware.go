package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wiseman/studentrecords/internal/app/models/dto"
	"github.com/wiseman/studentrecords/internal/pkg/apperrors"
)

// HandleAPIError maps domain errors onto HTTP responses. Anything
// unrecognized is an upstream failure and is reported generically;
// the detail stays in the logs.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrInvalidRole),
		errors.Is(err, apperrors.ErrNoModulesSelected):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()),
		})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})
	case errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "No student found for that username"),
		})
	case errors.Is(err, apperrors.ErrModuleNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Module not found"),
		})
	case errors.Is(err, apperrors.ErrEnrollmentNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Enrollment not found"),
		})
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found"),
		})
	case errors.Is(err, apperrors.ErrUsernameExists),
		errors.Is(err, apperrors.ErrResourceAlreadyExists):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Username already exists"),
		})
	default:
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An error occurred while processing the request"),
		})
	}
}
