package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("account has not been verified")
	ErrAlreadyVerified    = errors.New("account has already been verified")
	ErrUnknownAccount     = errors.New("email is not associated with any account")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrPasswordTooShort   = errors.New("password must be at least 6 chars long")
	ErrSigningFailed      = errors.New("could not sign session token")
	ErrDeliveryFailed     = errors.New("could not deliver email")
)

// MinPasswordLen applies to registration and password reset alike.
const MinPasswordLen = 6

// User carries the hashed credential plus the optional pending-token pairs.
// ResetTokenHash/ResetExpiry are either both set or both nil; the same holds
// for VerifyTokenHash/VerifyExpiry. Token hashes are SHA-256 of the opaque
// value mailed to the user; the raw token is never stored.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsVerified   bool

	ResetTokenHash *string
	ResetExpiry    *time.Time

	VerifyTokenHash *string
	VerifyExpiry    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
