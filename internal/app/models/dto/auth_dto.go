package dto

import "github.com/wiseman/studentrecords/internal/app/models"

// LoginRequest carries login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"s1init"`
	Password string `json:"password" binding:"required" example:"pw1"`
}

// LoginResponse reports the authentication outcome. User-missing,
// wrong-password and store-failure are indistinguishable on purpose.
type LoginResponse struct {
	Authenticated bool   `json:"authenticated" example:"true"`
	Message       string `json:"message" example:"Authentication successful"`
}

// RegisterRequest carries the fields for a new user; the id is
// generated server-side.
type RegisterRequest struct {
	Username string          `json:"username" binding:"required" example:"s1init"`
	Password string          `json:"password" binding:"required" example:"pw1"`
	Name     string          `json:"name" binding:"required" example:"Wiseman"`
	Surname  string          `json:"surname" binding:"required" example:"Mkhize"`
	Role     models.RoleType `json:"role" binding:"required" example:"STUDENT"`
}

// UpdatePasswordRequest carries the replacement credential
type UpdatePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required" example:"pw2"`
}

// UserResponse is the public shape of a user record; the credential
// hash never leaves the service.
type UserResponse struct {
	ID       string          `json:"id" example:"7f8de1a2-58c4-4cbb-9f27-3a8d5cf60f11"`
	Username string          `json:"username" example:"s1init"`
	Name     string          `json:"name" example:"Wiseman"`
	Surname  string          `json:"surname" example:"Mkhize"`
	Role     models.RoleType `json:"role" example:"STUDENT"`
}

// NewUserResponse maps a user model onto its public shape
func NewUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Surname:  user.Surname,
		Role:     user.Role,
	}
}
