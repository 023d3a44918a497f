package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"go-event-api/auth"
	"go-event-api/logger"
	"go-event-api/model"
	"go-event-api/repository"
)

const refreshTokenBytes = 64

// SessionService orchestrates issuance, rotation, and invalidation of
// access/refresh token pairs. A user has at most one live session: issuing
// a new pair supersedes any previous refresh token.
type SessionService struct {
	codec      *auth.TokenCodec
	tokenRepo  repository.ITokenRepository
	userRepo   repository.IUserRepository
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewSessionService(codec *auth.TokenCodec, tokenRepo repository.ITokenRepository,
	userRepo repository.IUserRepository, accessTTL, refreshTTL time.Duration) *SessionService {
	return &SessionService{
		codec:      codec,
		tokenRepo:  tokenRepo,
		userRepo:   userRepo,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Issue mints a new access/refresh pair for an already-verified user and
// stores the refresh token, superseding any prior session. Store failures
// propagate unchanged.
func (s *SessionService) Issue(ctx context.Context, user *model.User) (*model.TokenPair, error) {
	accessToken, err := s.codec.Encode(user.ID, user.Role, s.accessTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := newRefreshTokenValue()
	if err != nil {
		return nil, err
	}

	expiresAt := s.now().Add(s.refreshTTL)
	if err := s.tokenRepo.Create(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return nil, err
	}

	logger.Log.WithField("user_id", user.ID).Info("Issued a new token pair")

	return &model.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: expiresAt,
	}, nil
}

// Rotate exchanges a possibly-expired access token plus a valid refresh
// token for a fresh pair. The refresh token is checked first so a bad one
// never leaks whether the access token was well-formed; the access token is
// then decoded without expiry validation, because refreshing an expired
// access token is the whole point of rotation. Signature failures remain
// fatal.
func (s *SessionService) Rotate(ctx context.Context, accessToken, refreshToken string) (*model.TokenPair, error) {
	stored, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, fmt.Errorf("%w: refresh token unknown", auth.ErrAuthentication)
		}
		return nil, err
	}

	if stored.ExpiresAt.Before(s.now()) {
		return nil, fmt.Errorf("%w: refresh token expired", auth.ErrAuthentication)
	}

	claims, err := s.codec.DecodeExpired(accessToken)
	if err != nil {
		logger.Log.WithError(err).Warn("Access token rejected during rotation")
		return nil, fmt.Errorf("%w: %v", auth.ErrAuthentication, err)
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, fmt.Errorf("%w: user not found", auth.ErrAuthentication)
		}
		return nil, err
	}

	// Issue supersedes the presented refresh token via the store's
	// replace-on-create semantics.
	return s.Issue(ctx, user)
}

// Invalidate removes a refresh token. Idempotent: unknown tokens are not
// an error, so logout can be retried safely.
func (s *SessionService) Invalidate(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.DeleteByToken(ctx, refreshToken)
}

// newRefreshTokenValue draws a fixed-length opaque value from the secure
// random source. It is never derived from user data.
func newRefreshTokenValue() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
