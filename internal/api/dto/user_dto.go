package dto

import (
	"github.com/spec-kit/labtrack/internal/domain"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

// CreateUserRequest payload for POST /users.
type CreateUserRequest struct {
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	Role     domain.Role `json:"role"`
	Password string      `json:"password"`
}

func (r CreateUserRequest) Validate() error {
	fields := apperrors.FieldErrors{}
	if !validEmail(r.Email) {
		fields.Add("email", "must be a valid email address")
	}
	if blank(r.FullName) {
		fields.Add("full_name", "required")
	}
	if r.Role != "" && !r.Role.Valid() {
		fields.Add("role", "must be one of admin, supervisor, technician, viewer")
	}
	if len(r.Password) < minPasswordLength {
		fields.Add("password", "must be at least 8 characters")
	}
	return fields.Err()
}

// UpdateUserRequest payload for PUT /users/:id.
type UpdateUserRequest struct {
	Email    *string      `json:"email"`
	FullName *string      `json:"full_name"`
	Role     *domain.Role `json:"role"`
	IsActive *bool        `json:"is_active"`
	Password *string      `json:"password"`
}

func (r UpdateUserRequest) Validate() error {
	fields := apperrors.FieldErrors{}
	if r.Email != nil && !validEmail(*r.Email) {
		fields.Add("email", "must be a valid email address")
	}
	if r.FullName != nil && blank(*r.FullName) {
		fields.Add("full_name", "must not be empty")
	}
	if r.Role != nil && !r.Role.Valid() {
		fields.Add("role", "must be one of admin, supervisor, technician, viewer")
	}
	if r.Password != nil && len(*r.Password) < minPasswordLength {
		fields.Add("password", "must be at least 8 characters")
	}
	return fields.Err()
}
