package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestVerificationPush(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expiresAt := time.Now().Add(10 * time.Minute)
	mock.ExpectQuery("INSERT INTO account_verifications").
		WithArgs(int64(7), 12345, expiresAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	repo := NewVerificationRepository(db)
	id, err := repo.Push(7, 12345, expiresAt)
	require.NoError(t, err)
	require.Equal(t, int64(3), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationLatest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expiresAt := time.Now().Add(10 * time.Minute)
	createdAt := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM account_verifications").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "code", "expires_at", "created_at"}).
			AddRow(int64(3), int64(7), 12345, expiresAt, createdAt))

	repo := NewVerificationRepository(db)
	latest, err := repo.Latest(7)
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.Equal(t, 12345, latest.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationLatest_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM account_verifications").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "code", "expires_at", "created_at"}))

	repo := NewVerificationRepository(db)
	latest, err := repo.Latest(7)
	require.NoError(t, err)
	require.Nil(t, latest)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM account_verifications").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	repo := NewVerificationRepository(db)
	count, err := repo.Count(7)
	require.NoError(t, err)
	require.Equal(t, 4, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationCollapseAndClear(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM account_verifications").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM account_verifications").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewVerificationRepository(db)
	require.NoError(t, repo.CollapseToLatest(7))
	require.NoError(t, repo.Clear(7))
	require.NoError(t, mock.ExpectationsWereMet())
}
