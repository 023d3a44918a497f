package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-event-api/model"
)

// TokenClaims is the identity payload extracted from a validated access token.
type TokenClaims struct {
	UserID    uuid.UUID
	Role      model.Role
	ExpiresAt time.Time
}

// TokenCodec builds and parses signed HS256 access tokens. The signing key
// and clock are injected at construction so the codec stays a pure function
// of (token, key, time) and tests can use arbitrary keys and fixed clocks.
type TokenCodec struct {
	key []byte
	now func() time.Time
}

func NewTokenCodec(secretKey string) *TokenCodec {
	return &TokenCodec{key: []byte(secretKey), now: time.Now}
}

// NewTokenCodecWithClock is used by tests that need a deterministic clock.
func NewTokenCodecWithClock(secretKey string, now func() time.Time) *TokenCodec {
	return &TokenCodec{key: []byte(secretKey), now: now}
}

// Encode mints a signed access token for the given user valid for ttl.
func (c *TokenCodec) Encode(userID uuid.UUID, role model.Role, ttl time.Duration) (string, error) {
	now := c.now()
	claims := &model.AppClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}
	return tokenString, nil
}

// Decode parses and fully validates an access token, distinguishing the
// three failure classes callers react to differently: malformed structure,
// bad signature, and expiry.
func (c *TokenCodec) Decode(tokenString string) (*TokenClaims, error) {
	return c.decode(tokenString, false)
}

// DecodeExpired verifies structure and signature but skips expiry
// validation. Rotation uses it to read the subject out of an access token
// that has, by design, already expired.
func (c *TokenCodec) DecodeExpired(tokenString string) (*TokenClaims, error) {
	return c.decode(tokenString, true)
}

func (c *TokenCodec) decode(tokenString string, skipExpiry bool) (*TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	}
	if skipExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &model.AppClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return c.key, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%w: %v", ErrTokenSignature, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		}
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid subject claim", ErrTokenMalformed)
	}
	role, err := model.ParseRole(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid role claim", ErrTokenMalformed)
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &TokenClaims{
		UserID:    userID,
		Role:      role,
		ExpiresAt: expiresAt,
	}, nil
}
