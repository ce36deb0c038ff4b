package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"todoapp/internal/models"
)

type AccountRepository interface {
	Create(account *models.Account) error
	GetByID(id int64) (*models.Account, error)
	GetByEmail(email string) (*models.Account, error)
	GetVerifiedByEmail(email string) (*models.Account, error)
	GetVerifiedByEmailOrPhone(email, phone string) (*models.Account, error)
	GetUnverifiedByEmailOrPhone(email, phone string) (*models.Account, error)
	MarkVerified(id int64) error
	UpdatePassword(id int64, passwordHash string) error

	// reset-password helpers
	SetResetToken(id int64, tokenHash string, expiresAt time.Time) error
	ClearResetToken(id int64) error
	GetByResetTokenHash(tokenHash string, now time.Time) (*models.Account, error)
}

type accountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{DB: db}
}

const accountColumns = `
	id, name, email, password_hash, phone, account_verified,
	reset_token_hash, reset_token_expires_at, created_at
`

func (r *accountRepository) scanAccount(row *sql.Row) (*models.Account, error) {
	var a models.Account
	if err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Phone, &a.AccountVerified,
		&a.ResetTokenHash, &a.ResetTokenExpiresAt, &a.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *accountRepository) Create(account *models.Account) error {
	const q = `
		INSERT INTO accounts (name, email, password_hash, phone, account_verified)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		account.Name, account.Email, account.PasswordHash, account.Phone, account.AccountVerified,
	).Scan(&account.ID, &account.CreatedAt); err != nil {
		return fmt.Errorf("account create: %w", err)
	}
	return nil
}

func (r *accountRepository) GetByID(id int64) (*models.Account, error) {
	const q = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	a, err := r.scanAccount(r.DB.QueryRow(q, id))
	if err != nil {
		return nil, fmt.Errorf("account by id: %w", err)
	}
	return a, nil
}

func (r *accountRepository) GetByEmail(email string) (*models.Account, error) {
	const q = `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	a, err := r.scanAccount(r.DB.QueryRow(q, email))
	if err != nil {
		return nil, fmt.Errorf("account by email: %w", err)
	}
	return a, nil
}

func (r *accountRepository) GetVerifiedByEmail(email string) (*models.Account, error) {
	const q = `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 AND account_verified = TRUE`
	a, err := r.scanAccount(r.DB.QueryRow(q, email))
	if err != nil {
		return nil, fmt.Errorf("verified account by email: %w", err)
	}
	return a, nil
}

// GetVerifiedByEmailOrPhone guards duplicate registration: at most one
// verified account may hold a given email or phone.
func (r *accountRepository) GetVerifiedByEmailOrPhone(email, phone string) (*models.Account, error) {
	const q = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_verified = TRUE AND (email = $1 OR phone = $2)
		LIMIT 1
	`
	a, err := r.scanAccount(r.DB.QueryRow(q, email, phone))
	if err != nil {
		return nil, fmt.Errorf("verified account by email or phone: %w", err)
	}
	return a, nil
}

func (r *accountRepository) GetUnverifiedByEmailOrPhone(email, phone string) (*models.Account, error) {
	const q = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_verified = FALSE AND (email = $1 OR phone = $2)
		LIMIT 1
	`
	a, err := r.scanAccount(r.DB.QueryRow(q, email, phone))
	if err != nil {
		return nil, fmt.Errorf("unverified account by email or phone: %w", err)
	}
	return a, nil
}

func (r *accountRepository) MarkVerified(id int64) error {
	if _, err := r.DB.Exec(`UPDATE accounts SET account_verified = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("account mark verified: %w", err)
	}
	return nil
}

func (r *accountRepository) UpdatePassword(id int64, passwordHash string) error {
	if _, err := r.DB.Exec(`UPDATE accounts SET password_hash = $1 WHERE id = $2`, passwordHash, id); err != nil {
		return fmt.Errorf("account update password: %w", err)
	}
	return nil
}

func (r *accountRepository) SetResetToken(id int64, tokenHash string, expiresAt time.Time) error {
	const q = `
		UPDATE accounts
		SET reset_token_hash = $1, reset_token_expires_at = $2
		WHERE id = $3
	`
	if _, err := r.DB.Exec(q, tokenHash, expiresAt, id); err != nil {
		return fmt.Errorf("account set reset token: %w", err)
	}
	return nil
}

func (r *accountRepository) ClearResetToken(id int64) error {
	const q = `
		UPDATE accounts
		SET reset_token_hash = NULL, reset_token_expires_at = NULL
		WHERE id = $1
	`
	if _, err := r.DB.Exec(q, id); err != nil {
		return fmt.Errorf("account clear reset token: %w", err)
	}
	return nil
}

// GetByResetTokenHash matches only while the reset window is open.
func (r *accountRepository) GetByResetTokenHash(tokenHash string, now time.Time) (*models.Account, error) {
	const q = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE reset_token_hash = $1 AND reset_token_expires_at > $2
	`
	a, err := r.scanAccount(r.DB.QueryRow(q, tokenHash, now))
	if err != nil {
		return nil, fmt.Errorf("account by reset token: %w", err)
	}
	return a, nil
}
