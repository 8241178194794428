package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/labtrack/internal/domain"
)

// DevelopmentSecret signs tokens when no secret is configured.
const DevelopmentSecret = "labtrack-insecure-development-secret"

// DefaultTokenTTL applies when neither the caller nor the manager sets a lifetime.
const DefaultTokenTTL = 15 * time.Minute

// Claims is the identity bundle carried by an access token.
type Claims struct {
	Subject   string
	UserID    int64
	Role      domain.Role
	ExpiresAt time.Time
}

type tokenClaims struct {
	UserID int64       `json:"user_id,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager handles issuing and validating HS256 tokens. It is immutable
// after construction and safe for concurrent use.
type TokenManager struct {
	secret        []byte
	defaultSecret bool
	ttl           time.Duration
	now           func() time.Time
}

// TokenOption customises a TokenManager.
type TokenOption func(*TokenManager)

// WithClock replaces the wall clock used for issuing and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// NewTokenManager builds a new manager. An empty secret selects
// DevelopmentSecret; a non-positive ttl selects DefaultTokenTTL.
func NewTokenManager(secret string, ttl time.Duration, opts ...TokenOption) *TokenManager {
	tm := &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
	if secret == "" {
		tm.secret = []byte(DevelopmentSecret)
		tm.defaultSecret = true
	}
	if tm.ttl <= 0 {
		tm.ttl = DefaultTokenTTL
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm
}

// UsesDefaultSecret reports whether the insecure development key is active.
func (tm *TokenManager) UsesDefaultSecret() bool {
	return tm.defaultSecret
}

// DefaultTTL returns the lifetime applied when Issue gets a non-positive ttl.
func (tm *TokenManager) DefaultTTL() time.Duration {
	return tm.ttl
}

// Issue signs claims with an expiry of now+ttl. Claims.ExpiresAt is ignored.
func (tm *TokenManager) Issue(claims Claims, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = tm.ttl
	}
	now := tm.now()
	expiresAt := now.Add(ttl).Truncate(time.Second)

	payload := &tokenClaims{
		UserID: claims.UserID,
		Role:   claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// Errors are ErrTokenInvalid, ErrTokenExpired or ErrTokenMissingSubject.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{}, func(*jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	payload, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if payload.Subject == "" {
		return nil, ErrTokenMissingSubject
	}

	return &Claims{
		Subject:   payload.Subject,
		UserID:    payload.UserID,
		Role:      payload.Role,
		ExpiresAt: payload.ExpiresAt.Time,
	}, nil
}
