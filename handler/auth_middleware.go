package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go-event-api/auth"
	"go-event-api/common"
	"go-event-api/logger"
)

type contextKey string

// IdentityKey holds the caller's auth.Identity in the request context.
const IdentityKey contextKey = "identity"

// AccessTokenCookie and RefreshTokenCookie are the session cookie names.
const (
	AccessTokenCookie  = "_at"
	RefreshTokenCookie = "_rt"
)

// IdentityFromContext extracts the caller identity placed by AuthMiddleware.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(auth.Identity)
	return identity, ok
}

// bearerToken returns the access token from the Authorization header, or
// from the session cookie when no header is present.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// AuthMiddleware validates the access token and stores the derived identity
// in the request context. Signature failures are logged as security events.
func AuthMiddleware(codec *auth.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				appErr := common.NewAppError(http.StatusUnauthorized, "Authorization is required", nil)
				appErr.Send(w)
				return
			}

			claims, err := codec.Decode(tokenString)
			if err != nil {
				if errors.Is(err, auth.ErrTokenSignature) {
					logger.Log.WithError(err).Warn("Access token signature verification failed")
				}
				appErr := common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", err)
				appErr.Send(w)
				return
			}

			identity := auth.Identity{UserID: claims.UserID, Role: claims.Role}
			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware allows only admin callers through. Runs after
// AuthMiddleware.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok || !identity.IsAdmin() {
			appErr := common.NewAppError(http.StatusForbidden, "Access denied. Admin privileges required.", nil)
			appErr.Send(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
