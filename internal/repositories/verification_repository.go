package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"todoapp/internal/models"
)

// VerificationRepository is a bounded ordered log of OTP sends per account,
// newest first. Callers use the named push/collapse/clear operations instead
// of touching rows directly.
type VerificationRepository interface {
	Push(accountID int64, code int, expiresAt time.Time) (int64, error)
	Latest(accountID int64) (*models.VerificationAttempt, error)
	Count(accountID int64) (int, error)
	CollapseToLatest(accountID int64) error
	Clear(accountID int64) error
}

type verificationRepository struct {
	DB *sql.DB
}

func NewVerificationRepository(db *sql.DB) VerificationRepository {
	return &verificationRepository{DB: db}
}

// Push records one send; every resend is a new row.
func (r *verificationRepository) Push(accountID int64, code int, expiresAt time.Time) (int64, error) {
	const q = `
		INSERT INTO account_verifications (account_id, code, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	if err := r.DB.QueryRow(q, accountID, code, expiresAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("verification push: %w", err)
	}
	return id, nil
}

func (r *verificationRepository) Latest(accountID int64) (*models.VerificationAttempt, error) {
	const q = `
		SELECT id, account_id, code, expires_at, created_at
		FROM account_verifications
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	row := r.DB.QueryRow(q, accountID)
	var v models.VerificationAttempt
	if err := row.Scan(&v.ID, &v.AccountID, &v.Code, &v.ExpiresAt, &v.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("verification latest: %w", err)
	}
	return &v, nil
}

func (r *verificationRepository) Count(accountID int64) (int, error) {
	const q = `SELECT COUNT(*) FROM account_verifications WHERE account_id = $1`
	var c int
	if err := r.DB.QueryRow(q, accountID).Scan(&c); err != nil {
		return 0, fmt.Errorf("verification count: %w", err)
	}
	return c, nil
}

// CollapseToLatest discards every attempt except the newest one, so older
// codes can never be confirmed after a resend.
func (r *verificationRepository) CollapseToLatest(accountID int64) error {
	const q = `
		DELETE FROM account_verifications
		WHERE account_id = $1
		  AND id <> (
			SELECT id FROM account_verifications
			WHERE account_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		  )
	`
	if _, err := r.DB.Exec(q, accountID); err != nil {
		return fmt.Errorf("verification collapse: %w", err)
	}
	return nil
}

func (r *verificationRepository) Clear(accountID int64) error {
	if _, err := r.DB.Exec(`DELETE FROM account_verifications WHERE account_id = $1`, accountID); err != nil {
		return fmt.Errorf("verification clear: %w", err)
	}
	return nil
}
