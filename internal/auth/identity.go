package auth

import (
	"fmt"

	"github.com/spec-kit/labtrack/internal/domain"
)

// Identity is the verified caller for the duration of one request.
type Identity struct {
	Email  string      `json:"email"`
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Resolver turns raw bearer tokens into identities.
type Resolver struct {
	tokens *TokenManager
}

// NewResolver constructs a resolver over the given token manager.
func NewResolver(tokens *TokenManager) *Resolver {
	return &Resolver{tokens: tokens}
}

// Resolve verifies rawToken. Every failure is reported as ErrUnauthenticated,
// wrapping the codec error as the cause. The role is returned verbatim even
// when it is outside the known set; the authorization gate decides what it may do.
func (r *Resolver) Resolve(rawToken string) (*Identity, error) {
	claims, err := r.tokens.Verify(rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, ErrTokenMissingSubject)
	}
	return &Identity{
		Email:  claims.Subject,
		UserID: claims.UserID,
		Role:   claims.Role,
	}, nil
}
