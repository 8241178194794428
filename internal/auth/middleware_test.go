package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/labtrack/internal/domain"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

type countingRecorder struct {
	reasons []string
}

func (r *countingRecorder) RecordAuthFailure(reason string) {
	r.reasons = append(r.reasons, reason)
}

func newMiddlewareApp(t *testing.T, tm *TokenManager, recorder FailureRecorder) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"message": de.Message})
		},
	})
	mw := NewAuthMiddleware(NewResolver(tm), nil, recorder)

	app.Get("/me", mw.Handle, func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(identity)
	})
	app.Post("/users", mw.Handle, mw.Require(OpCreateUser), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusCreated)
	})
	return app
}

func readMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode body %q: %v", body, err)
	}
	return payload.Message
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	clock := newTestClock()
	tm := NewTokenManager("secret", 0, WithClock(clock.Now))
	expired, _, err := tm.Issue(Claims{Subject: "a@b.com"}, time.Minute)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	clock.Advance(time.Hour)

	tests := []struct {
		name       string
		header     string
		wantMsg    string
		wantReason string
	}{
		{"no header", "", MsgNotAuthenticated, "missing_header"},
		{"wrong scheme", "Basic dXNlcjpwYXNz", MsgNotAuthenticated, "malformed_header"},
		{"empty bearer", "Bearer ", MsgNotAuthenticated, "malformed_header"},
		{"garbage token", "Bearer mock-jwt-token", MsgInvalidCredentials, "token_invalid"},
		{"expired token", "Bearer " + expired, MsgInvalidCredentials, "token_expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &countingRecorder{}
			app := newMiddlewareApp(t, tm, recorder)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
			if msg := readMessage(t, resp); msg != tt.wantMsg {
				t.Errorf("message = %q, want %q", msg, tt.wantMsg)
			}
			if len(recorder.reasons) != 1 || recorder.reasons[0] != tt.wantReason {
				t.Errorf("recorded reasons = %v, want [%s]", recorder.reasons, tt.wantReason)
			}
		})
	}
}

func TestAuthMiddleware_StoresIdentity(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	token, _, err := tm.Issue(Claims{Subject: "tech@labtrack.com", UserID: 2, Role: domain.RoleTechnician}, 0)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	app := newMiddlewareApp(t, tm, nil)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got Identity
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Identity{Email: "tech@labtrack.com", UserID: 2, Role: domain.RoleTechnician}
	if got != want {
		t.Errorf("identity = %+v, want %+v", got, want)
	}
}

func TestAuthMiddleware_Require(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	tests := []struct {
		role       domain.Role
		wantStatus int
	}{
		{domain.RoleAdmin, http.StatusCreated},
		{domain.RoleTechnician, http.StatusForbidden},
		{domain.Role("root"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			token, _, err := tm.Issue(Claims{Subject: "x@labtrack.com", UserID: 3, Role: tt.role}, 0)
			if err != nil {
				t.Fatalf("Issue() error = %v", err)
			}
			recorder := &countingRecorder{}
			app := newMiddlewareApp(t, tm, recorder)

			req := httptest.NewRequest(http.MethodPost, "/users", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusForbidden {
				if msg := readMessage(t, resp); msg != "Only admins can create users" {
					t.Errorf("message = %q", msg)
				}
				if len(recorder.reasons) != 1 || recorder.reasons[0] != "forbidden" {
					t.Errorf("recorded reasons = %v", recorder.reasons)
				}
			}
		})
	}
}
