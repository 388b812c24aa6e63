package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wiseman/studentrecords/internal/app/models"
	"github.com/wiseman/studentrecords/internal/app/models/dto"
	"github.com/wiseman/studentrecords/internal/app/repositories"
	"github.com/wiseman/studentrecords/internal/pkg/apperrors"
	"github.com/wiseman/studentrecords/internal/pkg/auth"
)

// AuthService defines authentication and account operations
type AuthService interface {
	// Authenticate reports whether the credentials match a stored user.
	// It never returns an error: a missing user, a wrong password and a
	// store failure are indistinguishable to the caller.
	Authenticate(ctx context.Context, username, password string) bool
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, newPassword string) error
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo *repositories.UserRepository
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo *repositories.UserRepository, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Authenticate validates a username/password pair against the stored
// credential hash. Read-only, no side effects.
func (s *authServiceImpl) Authenticate(ctx context.Context, username, password string) bool {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// Store failures and unknown users collapse into the same
		// outcome so the response does not leak which one happened.
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Error().Err(err).Msg("Store error during authentication")
		}
		return false
	}

	return auth.CheckPassword(user.Password, password)
}

// Register creates a new user with a generated id and a hashed
// credential. Usernames are unique and case-sensitive.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", apperrors.ErrValidationFailed)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}
	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidRole, req.Role)
	}

	exists, err := s.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if exists {
		return nil, apperrors.ErrUsernameExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Username: req.Username,
		Password: hashedPassword,
		Name:     req.Name,
		Surname:  req.Surname,
		Role:     req.Role,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("User registered")
	return user, nil
}

// UpdatePassword rehashes and stores a replacement credential for the
// user identified by id.
func (s *authServiceImpl) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return fmt.Errorf("%w: new password cannot be empty", apperrors.ErrValidationFailed)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error retrieving user: %w", err)
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	user.Password = hashedPassword
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	s.logger.Info().Str("userId", userID).Msg("Password updated")
	return nil
}
