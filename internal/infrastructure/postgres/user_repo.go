package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mderbes/bookvault/internal/domain"
)

const userColumns = `id, email, password_hash, is_verified,
	reset_token_hash, reset_expiry, verify_token_hash, verify_expiry,
	created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (id, email, password_hash, is_verified, verify_token_hash, verify_expiry)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	row := r.pool.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.IsVerified,
		user.VerifyTokenHash, user.VerifyExpiry)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 = unique_violation (users_email_key)
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	query := `UPDATE users
		SET reset_token_hash = $2, reset_expiry = $3, updated_at = now()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, userID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) FindByResetToken(ctx context.Context, tokenHash string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE reset_token_hash = $1 AND reset_expiry > now()`

	u, err := scanUser(r.pool.QueryRow(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	return u, nil
}

// ConsumeResetToken is the single atomic read-modify-write of the reset flow:
// the WHERE clause revalidates the token, the SET clause commits the new hash
// and clears the pair. A concurrent confirm loses the race and sees zero rows.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string) (*domain.User, error) {
	query := `UPDATE users
		SET password_hash = $2, reset_token_hash = NULL, reset_expiry = NULL, updated_at = now()
		WHERE reset_token_hash = $1 AND reset_expiry > now()
		RETURNING ` + userColumns

	u, err := scanUser(r.pool.QueryRow(ctx, query, tokenHash, newPasswordHash))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) SetVerifyToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	query := `UPDATE users
		SET verify_token_hash = $2, verify_expiry = $3, updated_at = now()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, userID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("set verify token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) FindByVerifyToken(ctx context.Context, tokenHash string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE verify_token_hash = $1 AND verify_expiry > now()`

	u, err := scanUser(r.pool.QueryRow(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) ConsumeVerifyToken(ctx context.Context, tokenHash string) (*domain.User, error) {
	query := `UPDATE users
		SET is_verified = TRUE, verify_token_hash = NULL, verify_expiry = NULL, updated_at = now()
		WHERE verify_token_hash = $1 AND verify_expiry > now()
		RETURNING ` + userColumns

	u, err := scanUser(r.pool.QueryRow(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) PurgeExpiredTokens(ctx context.Context, now time.Time) (int, error) {
	query := `UPDATE users
		SET reset_token_hash  = CASE WHEN reset_expiry  <= $1 THEN NULL ELSE reset_token_hash  END,
		    reset_expiry      = CASE WHEN reset_expiry  <= $1 THEN NULL ELSE reset_expiry      END,
		    verify_token_hash = CASE WHEN verify_expiry <= $1 THEN NULL ELSE verify_token_hash END,
		    verify_expiry     = CASE WHEN verify_expiry <= $1 THEN NULL ELSE verify_expiry     END
		WHERE reset_expiry <= $1 OR verify_expiry <= $1`

	tag, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("purge expired tokens: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.IsVerified,
		&u.ResetTokenHash, &u.ResetExpiry, &u.VerifyTokenHash, &u.VerifyExpiry,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
