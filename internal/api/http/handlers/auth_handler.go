package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/labtrack/internal/api/dto"
	"github.com/spec-kit/labtrack/internal/auth"
	"github.com/spec-kit/labtrack/internal/service"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

// AuthHandler exposes login and identity endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
		ExpiresIn:   int(result.ExpiresIn.Seconds()),
		User:        userResponse(result.User),
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgNotAuthenticated)
	}
	user, err := h.auth.Me(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(userResponse(user))
}
