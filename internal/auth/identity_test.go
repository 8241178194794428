package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/labtrack/internal/domain"
)

func TestResolve_ValidToken(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	token, _, err := tm.Issue(Claims{Subject: "a@b.com", UserID: 1, Role: domain.RoleAdmin}, 30*time.Minute)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	identity, err := NewResolver(tm).Resolve(token)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := Identity{Email: "a@b.com", UserID: 1, Role: domain.RoleAdmin}
	if *identity != want {
		t.Errorf("Resolve() = %+v, want %+v", *identity, want)
	}
}

func TestResolve_MapsTokenErrorsToUnauthenticated(t *testing.T) {
	clock := newTestClock()
	tm := NewTokenManager("secret", 0, WithClock(clock.Now))
	resolver := NewResolver(tm)

	expired, _, err := tm.Issue(Claims{Subject: "a@b.com"}, time.Minute)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	noSubject, _, err := tm.Issue(Claims{UserID: 9, Role: domain.RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	clock.Advance(2 * time.Minute)

	tests := []struct {
		name  string
		token string
		cause error
	}{
		{"garbage", "garbage", ErrTokenInvalid},
		{"expired", expired, ErrTokenExpired},
		{"missing subject", noSubject, ErrTokenMissingSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := resolver.Resolve(tt.token)
			if identity != nil {
				t.Errorf("Resolve() identity = %+v, want nil", identity)
			}
			if !errors.Is(err, ErrUnauthenticated) {
				t.Errorf("Resolve() error = %v, want ErrUnauthenticated", err)
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("Resolve() error = %v, want cause %v", err, tt.cause)
			}
		})
	}
}

func TestResolve_UnknownRolePassesThrough(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	token, _, err := tm.Issue(Claims{Subject: "root@labtrack.com", UserID: 99, Role: domain.Role("root")}, 0)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	identity, err := NewResolver(tm).Resolve(token)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if identity.Role != "root" {
		t.Errorf("Role = %q, want verbatim %q", identity.Role, "root")
	}

	if Authorize(identity, OpCreateUser).Allowed {
		t.Error("unknown role must be denied role-restricted operations")
	}
	if Authorize(identity, OpCreateTest).Allowed {
		t.Error("unknown role must be denied role-restricted operations")
	}
	if !Authorize(identity, OpListSamples).Allowed {
		t.Error("unknown role still holds a valid identity for unrestricted operations")
	}
}

func TestEndToEnd_AdminCreatesUser(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	token, _, err := tm.Issue(Claims{Subject: "a@b.com", UserID: 1, Role: domain.RoleAdmin}, 30*time.Minute)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	identity, err := NewResolver(tm).Resolve(token)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if identity.Email != "a@b.com" || identity.UserID != 1 || identity.Role != domain.RoleAdmin {
		t.Fatalf("Resolve() = %+v", identity)
	}
	if d := Authorize(identity, OpCreateUser); !d.Allowed {
		t.Errorf("Authorize(create_user) = %+v, want allowed", d)
	}
}
