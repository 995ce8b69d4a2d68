package repository

import (
	"context"
	"time"

	"github.com/mderbes/bookvault/internal/domain"
)

// UseCase depends on interface, not concrete implementation.
// This way we get: 1) can swap DB later without touching usecase 2) We can pass a mock implementation of interface in tests
type UserRepository interface {
	// Create inserts the full user row, including any verify-token pair already
	// set on the value, in one statement. A user is never persisted without its
	// verification token.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// Password reset. FindByResetToken matches a hash that has not expired;
	// ConsumeResetToken additionally swaps in the new password hash and clears
	// the token pair in a single statement, so at most one concurrent confirm
	// can succeed.
	SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	FindByResetToken(ctx context.Context, tokenHash string) (*domain.User, error)
	ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string) (*domain.User, error)

	// Email verification, same single-use mechanics as reset.
	SetVerifyToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	FindByVerifyToken(ctx context.Context, tokenHash string) (*domain.User, error)
	ConsumeVerifyToken(ctx context.Context, tokenHash string) (*domain.User, error)

	// PurgeExpiredTokens clears token pairs whose expiry is at or before now.
	// Returns how many users were touched.
	PurgeExpiredTokens(ctx context.Context, now time.Time) (int, error)
}
