package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/labtrack/internal/auth"
	"github.com/spec-kit/labtrack/internal/domain"
	"github.com/spec-kit/labtrack/internal/repository"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

// UserCreateInput describes a new account.
type UserCreateInput struct {
	Email    string
	FullName string
	Role     domain.Role
	Password string
}

// UserUpdateInput carries optional account changes.
type UserUpdateInput struct {
	Email    *string
	FullName *string
	Role     *domain.Role
	IsActive *bool
	Password *string
}

// UserService manages staff accounts.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
	logger     *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, bcryptCost int, logger *zap.Logger) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost, logger: nopIfNil(logger)}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, mapRepoError(err, "user", 0)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "user", id)
	}
	return user, nil
}

// Create hashes the password and stores an active account.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		if auth.IsValidationError(err) {
			return nil, apperrors.NewValidationError(err.Error(), map[string]any{"password": err.Error()})
		}
		return nil, apperrors.NewInternalError(err)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleTechnician
	}
	user := &domain.User{
		Email:        strings.TrimSpace(input.Email),
		FullName:     strings.TrimSpace(input.FullName),
		Role:         role,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, mapRepoError(err, "user", 0)
	}
	s.logger.Info("user created", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Update applies the non-nil fields of input.
func (s *UserService) Update(ctx context.Context, id int64, input UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "user", id)
	}

	if input.Email != nil {
		user.Email = strings.TrimSpace(*input.Email)
	}
	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			if auth.IsValidationError(err) {
				return nil, apperrors.NewValidationError(err.Error(), map[string]any{"password": err.Error()})
			}
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, mapRepoError(err, "user", id)
	}
	return user, nil
}
