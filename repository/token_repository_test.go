// repository/token_repository_test.go
package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTokenRepository_CreateUpserts(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	userID := uuid.New()
	expiresAt := time.Now().Add(7 * 24 * time.Hour)

	dbMock.ExpectExec(`INSERT INTO refresh_tokens .+ ON CONFLICT \(user_id\) DO UPDATE`).
		WithArgs(userID, "opaque-token", expiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewTokenRepository(db)

	err = repo.Create(context.Background(), userID, "opaque-token", expiresAt)
	assert.NoError(t, err)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestTokenRepository_GetByToken(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	userID := uuid.New()
	expiresAt := time.Now().Add(time.Hour)
	createdAt := time.Now()

	rows := sqlmock.NewRows([]string{"user_id", "token", "expires_at", "created_at"}).
		AddRow(userID, "opaque-token", expiresAt, createdAt)
	dbMock.ExpectQuery(`SELECT user_id, token, expires_at, created_at FROM refresh_tokens`).
		WithArgs("opaque-token").
		WillReturnRows(rows)

	repo := NewTokenRepository(db)

	stored, err := repo.GetByToken(context.Background(), "opaque-token")
	assert.NoError(t, err)
	assert.Equal(t, userID, stored.UserID)
	assert.Equal(t, "opaque-token", stored.Token)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestTokenRepository_GetByTokenNotFound(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbMock.ExpectQuery(`SELECT user_id, token, expires_at, created_at FROM refresh_tokens`).
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "token", "expires_at", "created_at"}))

	repo := NewTokenRepository(db)

	_, err = repo.GetByToken(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTokenRepository_DeleteByTokenIsIdempotent(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	// Zero rows affected is still a success.
	dbMock.ExpectExec(`DELETE FROM refresh_tokens WHERE token = \$1`).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewTokenRepository(db)

	assert.NoError(t, repo.DeleteByToken(context.Background(), "gone"))
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
