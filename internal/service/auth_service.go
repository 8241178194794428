package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/labtrack/internal/auth"
	"github.com/spec-kit/labtrack/internal/config"
	"github.com/spec-kit/labtrack/internal/domain"
	"github.com/spec-kit/labtrack/internal/repository"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

// MsgIncorrectLogin is returned for every failed login.
const MsgIncorrectLogin = "Incorrect email or password"

// LoginResult carries the issued access token and the authenticated user.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
	ExpiresIn time.Duration
}

// AuthService coordinates login and account bootstrap.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	accessTTL  time.Duration
	bcryptCost int
	logger     *zap.Logger

	verify        func(password, credential string) (bool, error)
	dummyHashOnce sync.Once
	dummyHash     string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, tokenMgr *auth.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   tokenMgr,
		accessTTL:  cfg.AccessTokenTTL(),
		bcryptCost: cfg.BcryptCost,
		logger:     nopIfNil(logger),
		verify:     auth.VerifyPassword,
	}
}

// Login verifies credentials and issues an access token. Unknown, inactive
// and wrong-password logins are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		// Unknown emails pay the same bcrypt cost as known ones.
		_, _ = s.verify(password, s.timingHash())
		return nil, apperrors.NewUnauthorized(MsgIncorrectLogin)
	}
	if err != nil {
		return nil, mapRepoError(err, "user", 0)
	}

	ok, err := s.verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Warn("stored credential is malformed", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, apperrors.NewUnauthorized(MsgIncorrectLogin)
	}
	if !user.IsActive {
		s.logger.Debug("login for inactive user", zap.Int64("user_id", user.ID))
		return nil, apperrors.NewUnauthorized(MsgIncorrectLogin)
	}
	if !ok {
		return nil, apperrors.NewUnauthorized(MsgIncorrectLogin)
	}

	token, exp, err := s.tokenMgr.Issue(auth.Claims{
		Subject: user.Email,
		UserID:  user.ID,
		Role:    user.Role,
	}, s.accessTTL)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{User: user, Token: token, ExpiresAt: exp, ExpiresIn: s.accessTTL}, nil
}

// timingHash returns a bcrypt hash at the configured cost that no password
// is expected to match.
func (s *AuthService) timingHash() string {
	s.dummyHashOnce.Do(func() {
		hash, err := auth.HashPassword("labtrack-unknown-account", s.bcryptCost)
		if err != nil {
			s.logger.Warn("timing hash unavailable", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// Me loads the account behind identity.
func (s *AuthService) Me(ctx context.Context, identity *auth.Identity) (*domain.User, error) {
	if identity == nil {
		return nil, apperrors.NewUnauthorized(auth.MsgNotAuthenticated)
	}
	user, err := s.users.GetByEmail(ctx, identity.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewUnauthorized(auth.MsgInvalidCredentials)
	}
	if err != nil {
		return nil, mapRepoError(err, "user", identity.UserID)
	}
	return user, nil
}

// EnsureBootstrapAdmin creates the first admin account when the user store is
// empty and credentials are configured. It reports whether an account was created.
func (s *AuthService) EnsureBootstrapAdmin(ctx context.Context, cfg config.AuthConfig) (bool, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return false, mapRepoError(err, "user", 0)
	}
	if count > 0 {
		return false, nil
	}
	if cfg.BootstrapAdminEmail == "" || cfg.BootstrapAdminPassword == "" {
		s.logger.Warn("user store is empty and no bootstrap admin is configured")
		return false, nil
	}

	hash, err := auth.HashPassword(cfg.BootstrapAdminPassword, s.bcryptCost)
	if err != nil {
		return false, err
	}
	name := cfg.BootstrapAdminFullName
	if name == "" {
		name = "Administrator"
	}
	admin := &domain.User{
		Email:        strings.TrimSpace(cfg.BootstrapAdminEmail),
		FullName:     name,
		Role:         domain.RoleAdmin,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return false, mapRepoError(err, "user", 0)
	}
	s.logger.Info("bootstrap admin created", zap.String("email", admin.Email), zap.Int64("user_id", admin.ID))
	return true, nil
}
