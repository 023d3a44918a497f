// file: repository/token_repository.go

package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"go-event-api/logger"
	"go-event-api/model"
)

// ITokenRepository defines the contract for refresh token database operations.
type ITokenRepository interface {
	Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) error
}

// TokenRepository implements ITokenRepository.
type TokenRepository struct {
	DB *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

// Create stores the single live refresh token for a user. The table has a
// unique constraint on user_id, so the upsert atomically replaces any prior
// session; concurrent calls for the same user serialize on the row and can
// never leave zero or two live tokens.
func (r *TokenRepository) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to store the refresh token for a user")

	query := `INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at, created_at = now()`
	_, err := r.DB.ExecContext(ctx, query, userID, token, expiresAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute store refresh token query")
		return err
	}
	return nil
}

// GetByToken resolves a refresh token value to its owner and expiry.
func (r *TokenRepository) GetByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	refreshToken := &model.RefreshToken{}
	query := `SELECT user_id, token, expires_at, created_at FROM refresh_tokens WHERE token = $1`
	err := r.DB.QueryRowContext(ctx, query, token).
		Scan(&refreshToken.UserID, &refreshToken.Token, &refreshToken.ExpiresAt, &refreshToken.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Log.WithError(err).Error("Failed to execute get refresh token query")
		return nil, err
	}
	return refreshToken, nil
}

// DeleteByToken removes a refresh token. Deleting a token that does not
// exist is not an error, so logout can be called twice safely.
func (r *TokenRepository) DeleteByToken(ctx context.Context, token string) error {
	query := `DELETE FROM refresh_tokens WHERE token = $1`
	_, err := r.DB.ExecContext(ctx, query, token)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute delete refresh token query")
		return err
	}
	return nil
}
