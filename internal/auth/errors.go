package auth

import "errors"

// Credential errors. Both are validation failures surfaced to the caller.
var (
	ErrEmptyPassword       = errors.New("password must not be empty")
	ErrPasswordTooLong     = errors.New("password exceeds 72 bytes")
	ErrMalformedCredential = errors.New("stored credential is not a bcrypt hash")
)

// Token errors stay inside the codec; the resolver maps them to ErrUnauthenticated.
var (
	ErrTokenInvalid        = errors.New("token invalid")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenMissingSubject = errors.New("token missing subject")
)

// Errors returned to request handlers.
var (
	ErrUnauthenticated = errors.New("could not validate credentials")
	ErrForbidden       = errors.New("insufficient permissions")
)

// IsValidationError reports whether err comes from bad hashing input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyPassword) || errors.Is(err, ErrPasswordTooLong)
}
