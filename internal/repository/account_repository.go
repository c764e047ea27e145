package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"refugee-portal/internal/domain"
)

var errAccountNotFound = errors.New("account not found")

type AccountRepository interface {
	// CreateWithProfile inserts the profile and its credentials atomically.
	CreateWithProfile(ctx context.Context, account *domain.Account, profile *domain.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetPasswordResetToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error
	GetByResetToken(ctx context.Context, token string) (*domain.Account, error)
	ClearPasswordResetToken(ctx context.Context, id uuid.UUID) error
	SetEmailVerificationToken(ctx context.Context, id uuid.UUID, token string, sentAt time.Time) error
	GetByEmailVerificationToken(ctx context.Context, token string) (*domain.Account, error)
	VerifyEmail(ctx context.Context, id uuid.UUID) error
}

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateWithProfile(ctx context.Context, account *domain.Account, profile *domain.Profile) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertProfile(ctx, tx, profile); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	query := `
		INSERT INTO accounts (id, email, password_hash, is_email_verified)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`
	err = tx.QueryRowxContext(ctx, query,
		account.ID, account.Email, account.PasswordHash, account.IsEmailVerified,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}

	return tx.Commit()
}

func (r *accountRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.Account, error) {
	var account domain.Account
	err := r.db.GetContext(ctx, &account, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) exec(ctx context.Context, query string, args ...interface{}) error {
	var updatedAt time.Time
	err := r.db.QueryRowxContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return errAccountNotFound
	}
	return err
}

func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return r.getOne(ctx, `SELECT * FROM accounts WHERE id = $1 AND deleted_at IS NULL`, id)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getOne(ctx, `SELECT * FROM accounts WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL`, email)
}

func (r *accountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL)`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *accountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.exec(ctx, `
		UPDATE accounts SET password_hash = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`, id, passwordHash)
}

func (r *accountRepository) SetPasswordResetToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	return r.exec(ctx, `
		UPDATE accounts
		SET password_reset_token = $2, password_reset_expires_at = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`, id, token, expiresAt)
}

func (r *accountRepository) GetByResetToken(ctx context.Context, token string) (*domain.Account, error) {
	return r.getOne(ctx, `
		SELECT * FROM accounts
		WHERE password_reset_token = $1 AND password_reset_expires_at > NOW() AND deleted_at IS NULL`, token)
}

func (r *accountRepository) ClearPasswordResetToken(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, `
		UPDATE accounts
		SET password_reset_token = NULL, password_reset_expires_at = NULL, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`, id)
}

func (r *accountRepository) SetEmailVerificationToken(ctx context.Context, id uuid.UUID, token string, sentAt time.Time) error {
	return r.exec(ctx, `
		UPDATE accounts
		SET email_verification_token = $2, email_verification_sent_at = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`, id, token, sentAt)
}

func (r *accountRepository) GetByEmailVerificationToken(ctx context.Context, token string) (*domain.Account, error) {
	return r.getOne(ctx, `SELECT * FROM accounts WHERE email_verification_token = $1 AND deleted_at IS NULL`, token)
}

func (r *accountRepository) VerifyEmail(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, `
		UPDATE accounts
		SET is_email_verified = TRUE, email_verification_token = NULL, email_verification_sent_at = NULL, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`, id)
}
