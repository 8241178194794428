package dto

import (
	"time"

	"github.com/spec-kit/labtrack/internal/domain"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

// LoginRequest payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	fields := apperrors.FieldErrors{}
	if blank(r.Email) {
		fields.Add("email", "required")
	}
	if r.Password == "" {
		fields.Add("password", "required")
	}
	return fields.Err()
}

// TokenResponse is returned after a successful login.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        UserResponse `json:"user"`
}

// UserResponse is the public view of an account. The password hash is never serialized.
type UserResponse struct {
	ID        int64       `json:"id"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
}
