package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mderbes/bookvault/internal/domain"
	"github.com/mderbes/bookvault/internal/email"
	"github.com/mderbes/bookvault/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	// sessionTTL matches the 360000-second expiry the API contract fixes.
	sessionTTL     = 360000 * time.Second
	resetTokenTTL  = 1 * time.Hour
	verifyTokenTTL = 24 * time.Hour
)

type AuthUsecase struct {
	users      repository.UserRepository
	email      email.Sender
	jwtKey     []byte
	appBaseURL string
	jwtTTL     time.Duration
	resetTTL   time.Duration
	verifyTTL  time.Duration
	now        func() time.Time
}

func NewAuthUsecase(users repository.UserRepository, emailSender email.Sender, jwtKey []byte, appBaseURL string) *AuthUsecase {
	return &AuthUsecase{
		users:      users,
		email:      emailSender,
		jwtKey:     jwtKey,
		appBaseURL: appBaseURL,
		jwtTTL:     sessionTTL,
		resetTTL:   resetTokenTTL,
		verifyTTL:  verifyTokenTTL,
		now:        time.Now,
	}
}

// Register creates an unverified account with its verification token in a
// single insert, then emails the verification link. Persisting both together
// means a half-created account (user without a token) cannot exist; if only
// delivery fails the caller gets the user plus ErrDeliveryFailed, and
// ResendVerification provides the retry path.
func (u *AuthUsecase) Register(ctx context.Context, emailAddr, password string) (*domain.User, error) {
	if len(password) < domain.MinPasswordLen {
		return nil, domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	rawToken, tokenHash, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generate verify token: %w", err)
	}
	verifyExpiry := u.now().Add(u.verifyTTL)

	user, err := u.users.Create(ctx, &domain.User{
		ID:              uuid.NewString(),
		Email:           emailAddr,
		PasswordHash:    string(hash),
		VerifyTokenHash: &tokenHash,
		VerifyExpiry:    &verifyExpiry,
	})
	if err != nil {
		return nil, err
	}

	url := u.appBaseURL + "/api/users/verify/" + rawToken
	if err := u.email.Send(ctx, user.Email, email.SubjectVerifyAccount, email.VerifyAccountBody(url)); err != nil {
		return user, fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return user, nil
}

// ResendVerification issues a fresh verification token for an account whose
// original email never arrived or whose token expired.
func (u *AuthUsecase) ResendVerification(ctx context.Context, emailAddr string) error {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUnknownAccount
		}
		return fmt.Errorf("find user: %w", err)
	}
	if user.IsVerified {
		return domain.ErrAlreadyVerified
	}

	rawToken, tokenHash, err := generateToken()
	if err != nil {
		return fmt.Errorf("generate verify token: %w", err)
	}
	if err := u.users.SetVerifyToken(ctx, user.ID, tokenHash, u.now().Add(u.verifyTTL)); err != nil {
		return fmt.Errorf("store verify token: %w", err)
	}

	url := u.appBaseURL + "/api/users/verify/" + rawToken
	if err := u.email.Send(ctx, user.Email, email.SubjectVerifyAccount, email.VerifyAccountBody(url)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return nil
}

// VerifyAccount consumes a verification token and flips is_verified.
func (u *AuthUsecase) VerifyAccount(ctx context.Context, rawToken string) (*domain.User, error) {
	tokenHash := hashToken(rawToken)

	// Expiry is enforced by the store query and re-checked here against the
	// stored timestamp, so neither check can silently rot alone.
	found, err := u.users.FindByVerifyToken(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("find by verify token: %w", err)
	}
	if !u.tokenAlive(found.VerifyExpiry) {
		return nil, domain.ErrTokenInvalid
	}

	user, err := u.users.ConsumeVerifyToken(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("consume verify token: %w", err)
	}
	return user, nil
}

// Login checks credentials and returns a signed session token. A missing
// account and a wrong password both surface as ErrInvalidCredentials so the
// response never reveals whether the email is registered.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return "", domain.ErrNotVerified
	}

	now := u.now()
	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(u.jwtTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSigningFailed, err)
	}
	return signed, nil
}

// CurrentUser loads the account behind a validated session token.
func (u *AuthUsecase) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return u.users.FindByID(ctx, userID)
}

// RequestPasswordReset generates a fresh single-use token, persists its hash
// with a one-hour expiry, and emails the reset link. Unknown email leaves the
// store untouched and sends nothing.
func (u *AuthUsecase) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUnknownAccount
		}
		return fmt.Errorf("find user: %w", err)
	}

	rawToken, tokenHash, err := generateToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	if err := u.users.SetResetToken(ctx, user.ID, tokenHash, u.now().Add(u.resetTTL)); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	url := u.appBaseURL + "/api/auth/reset/" + rawToken
	if err := u.email.Send(ctx, user.Email, email.SubjectResetPassword, email.ResetPasswordBody(url)); err != nil {
		// Token stays persisted; delivery is at-least-attempted-once.
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return nil
}

// CheckResetToken reports whether a reset token exists and has not expired.
// Pure lookup, no state change.
func (u *AuthUsecase) CheckResetToken(ctx context.Context, rawToken string) error {
	user, err := u.users.FindByResetToken(ctx, hashToken(rawToken))
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return domain.ErrTokenInvalid
		}
		return fmt.Errorf("find by reset token: %w", err)
	}
	if !u.tokenAlive(user.ResetExpiry) {
		return domain.ErrTokenInvalid
	}
	return nil
}

// ConfirmPasswordReset validates the new password, revalidates the token, and
// atomically consumes it while committing the new hash. Of two concurrent
// confirms for the same token, exactly one can win; the loser gets
// ErrTokenInvalid from the consume statement.
func (u *AuthUsecase) ConfirmPasswordReset(ctx context.Context, rawToken, newPassword string) error {
	if len(newPassword) < domain.MinPasswordLen {
		return domain.ErrPasswordTooShort
	}

	if err := u.CheckResetToken(ctx, rawToken); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.ConsumeResetToken(ctx, hashToken(rawToken), string(hash))
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return domain.ErrTokenInvalid
		}
		return fmt.Errorf("consume reset token: %w", err)
	}

	if err := u.email.Send(ctx, user.Email, email.SubjectPasswordChanged, email.PasswordChangedBody(user.Email)); err != nil {
		// The password change already committed and is not rolled back.
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return nil
}

// tokenAlive re-checks a stored expiry against the clock.
func (u *AuthUsecase) tokenAlive(expiresAt *time.Time) bool {
	return expiresAt != nil && u.now().Before(*expiresAt)
}

// generateToken returns a 64-char hex token and the SHA-256 hash stored at rest.
func generateToken() (raw, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, hashToken(raw), nil
}

func hashToken(raw string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(raw)))
}
