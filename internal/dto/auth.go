package dto

import (
	"time"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	ExpiresIn   int64   `json:"expires_in"`
	TokenType   string  `json:"token_type"`
	User        UserDTO `json:"user"`
}

type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Nama        string     `json:"nama"`
	Role        string     `json:"role"`
	GuruID      *uuid.UUID `json:"guru_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type LogoutAllResponse struct {
	SessionsTerminated int `json:"sessions_terminated"`
}

type CreateUserRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Nama     string     `json:"nama"`
	Role     string     `json:"role"`
	GuruID   *uuid.UUID `json:"guru_id"`
}

type UpdateUserRequest struct {
	Nama     *string    `json:"nama"`
	Role     *string    `json:"role"`
	GuruID   *uuid.UUID `json:"guru_id"`
	IsActive *bool      `json:"is_active"`
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}
