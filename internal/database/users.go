package database

import (
	"context"
	"errors"
	"time"

	"github.com/ayush-gupta456/pass-op/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrDuplicateUsername = errors.New("username is already taken")
var ErrDuplicateEmail = errors.New("email is already registered")

type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, email_verified)
		VALUES ($1, $2, $3, false)
		RETURNING id, username, email, password_hash, email_verified, reset_token, reset_token_expires_at, created_at
	`
	row := q.db.QueryRow(ctx, query, arg.Username, arg.Email, arg.PasswordHash)

	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.EmailVerified,
		&user.ResetToken,
		&user.ResetTokenExpiresAt,
		&user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "users_email_key" {
				return nil, ErrDuplicateEmail
			}
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	return &user, nil
}

func (q *Queries) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	err := q.db.QueryRow(ctx, query, username).Scan(&exists)
	return exists, err
}

func (q *Queries) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	err := q.db.QueryRow(ctx, query, email).Scan(&exists)
	return exists, err
}

// GetUserByIdentifier matches the identifier against either the username or
// the email column. The caller is expected to lowercase the identifier first.
func (q *Queries) GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, email_verified, reset_token, reset_token_expires_at, created_at
		FROM users
		WHERE username = $1 OR email = $1
	`
	return q.scanUser(q.db.QueryRow(ctx, query, identifier))
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, email_verified, reset_token, reset_token_expires_at, created_at
		FROM users
		WHERE email = $1
	`
	return q.scanUser(q.db.QueryRow(ctx, query, email))
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, email_verified, reset_token, reset_token_expires_at, created_at
		FROM users
		WHERE id = $1
	`
	return q.scanUser(q.db.QueryRow(ctx, query, id))
}

func (q *Queries) SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET reset_token = $1, reset_token_expires_at = $2
		WHERE email = $3
	`
	_, err := q.db.Exec(ctx, query, token, expiresAt, email)
	return err
}

// ConsumeResetToken sets the new password hash and clears the reset token in a
// single statement. The WHERE clause requires a non-expired matching token, so
// a consumed or stale token simply matches zero rows.
func (q *Queries) ConsumeResetToken(ctx context.Context, token, newPasswordHash string) (bool, error) {
	query := `
		UPDATE users
		SET password_hash = $1, reset_token = NULL, reset_token_expires_at = NULL
		WHERE reset_token = $2 AND reset_token_expires_at > NOW()
	`
	res, err := q.db.Exec(ctx, query, newPasswordHash, token)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (q *Queries) scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.EmailVerified,
		&user.ResetToken,
		&user.ResetTokenExpiresAt,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
