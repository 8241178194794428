package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/labtrack/internal/auth"
	"github.com/spec-kit/labtrack/internal/domain"
	"github.com/spec-kit/labtrack/internal/repository"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

const testCost = bcrypt.MinCost

func seedUser(t *testing.T, store *repository.Store, email string, role domain.Role, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, testCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	user := &domain.User{Email: email, FullName: "Test User", Role: role, PasswordHash: hash, IsActive: true}
	if err := store.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("Create user error = %v", err)
	}
	return user
}

func assertStatus(t *testing.T, err error, want int) *apperrors.DomainError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", want)
	}
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("error %v is not a DomainError", err)
	}
	if de.HTTPStatus != want {
		t.Fatalf("status = %d, want %d (%v)", de.HTTPStatus, want, err)
	}
	return de
}

