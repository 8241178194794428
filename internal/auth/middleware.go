package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

const identityKey = "auth_identity"

// Messages returned with 401 responses.
const (
	MsgNotAuthenticated   = "Not authenticated"
	MsgInvalidCredentials = "Could not validate credentials"
)

// FailureRecorder observes authentication and authorization rejections.
type FailureRecorder interface {
	RecordAuthFailure(reason string)
}

// AuthMiddleware validates bearer tokens and stores the caller identity.
type AuthMiddleware struct {
	resolver *Resolver
	logger   *zap.Logger
	recorder FailureRecorder
}

// NewAuthMiddleware constructs middleware. recorder may be nil.
func NewAuthMiddleware(resolver *Resolver, logger *zap.Logger, recorder FailureRecorder) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{resolver: resolver, logger: logger, recorder: recorder}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		m.reject("missing_header")
		return apperrors.NewUnauthorized(MsgNotAuthenticated)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		m.reject("malformed_header")
		return apperrors.NewUnauthorized(MsgNotAuthenticated)
	}

	identity, err := m.resolver.Resolve(strings.TrimSpace(parts[1]))
	if err != nil {
		m.reject(rejectionKind(err))
		return apperrors.NewUnauthorized(MsgInvalidCredentials)
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// Require gates a route on the authorization table.
func (m *AuthMiddleware) Require(op Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			m.reject("missing_identity")
			return apperrors.NewUnauthorized(MsgNotAuthenticated)
		}
		decision := Authorize(identity, op)
		if !decision.Allowed {
			m.logger.Debug("authorization denied",
				zap.String("operation", string(op)),
				zap.String("role", string(identity.Role)),
				zap.String("email", identity.Email))
			m.reject("forbidden")
			return apperrors.NewForbidden(decision.Reason)
		}
		return c.Next()
	}
}

func (m *AuthMiddleware) reject(kind string) {
	m.logger.Debug("request rejected", zap.String("kind", kind))
	if m.recorder != nil {
		m.recorder.RecordAuthFailure(kind)
	}
}

func rejectionKind(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrTokenMissingSubject):
		return "token_missing_subject"
	default:
		return "token_invalid"
	}
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
