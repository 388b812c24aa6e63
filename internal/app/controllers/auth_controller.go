// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wiseman/studentrecords/internal/app/models/dto"
	"github.com/wiseman/studentrecords/internal/app/services"
	"github.com/wiseman/studentrecords/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login handles user authentication
// @Summary Authenticate a user
// @Description Validates a username/password pair. The response does not distinguish an unknown user from a wrong password.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Authentication successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.APIResponse "Authentication failed"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	c.logger.Info().Str("username", req.Username).Msg("Authentication request received")

	if !c.authService.Authenticate(ctx.Request.Context(), req.Username, req.Password) {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Data: dto.LoginResponse{
				Authenticated: false,
				Message:       "Authentication failed",
			},
			Timestamp: time.Now(),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.LoginResponse{
			Authenticated: true,
			Message:       "Authentication successful",
		},
		Timestamp: time.Now(),
	})
}

// Register handles user creation
// @Summary Register a new user
// @Description Creates a new user record with a generated id. The password is stored as a bcrypt hash.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User information"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "User created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Username already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	user, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.NewUserResponse(user),
		Timestamp: time.Now(),
	})
}

// UpdatePassword handles a credential replacement for a user
// @Summary Update a user's password
// @Description Replaces the stored credential for the user identified by id
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param request body dto.UpdatePasswordRequest true "New password"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Password updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid password update data"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id}/password [post]
func (c *AuthController) UpdatePassword(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.UpdatePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid password update payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.authService.UpdatePassword(ctx.Request.Context(), id, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Password updated successfully"},
		Timestamp: time.Now(),
	})
}
