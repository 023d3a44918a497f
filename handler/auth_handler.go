package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go-event-api/auth"
	"go-event-api/common"
	"go-event-api/model"
	"go-event-api/service"
)

// AuthHandler exposes registration, login, token rotation, and logout.
// Tokens travel both in the JSON body and in HttpOnly session cookies; the
// cookies are what the browser client uses.
type AuthHandler struct {
	userService    *service.UserService
	sessionService *service.SessionService
}

func NewAuthHandler(userService *service.UserService, sessionService *service.SessionService) *AuthHandler {
	return &AuthHandler{
		userService:    userService,
		sessionService: sessionService,
	}
}

func setSessionCookies(w http.ResponseWriter, pair *model.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		Expires:  pair.RefreshExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/",
		Expires:  pair.RefreshExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookies drops both cookies. Called on logout and on every
// authentication failure; authorization failures leave the session alone.
func clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        user body model.RegisterRequest true "Registration details"
// @Success      201  {object}  model.User
// @Failure      400  {object}  common.AppError
// @Failure      500  {object}  common.AppError
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	user, err := h.userService.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordEncoding) {
			return common.NewAppError(http.StatusBadRequest, "Password cannot be processed", err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not create user", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
	return nil
}

// Login godoc
// @Summary      Authenticate and receive a token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body model.LoginRequest true "Login credentials"
// @Success      200  {object}  model.TokenPair
// @Failure      401  {object}  common.AppError
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	pair, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		clearSessionCookies(w)
		return common.FromError(err, "Could not log in")
	}

	setSessionCookies(w, pair)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(pair)
	return nil
}

// Refresh godoc
// @Summary      Rotate the access/refresh token pair
// @Description  Exchanges the session cookies for a fresh pair. The access token may be expired; the refresh token must be live.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  model.TokenPair
// @Failure      401  {object}  common.AppError
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	accessCookie, errAT := r.Cookie(AccessTokenCookie)
	refreshCookie, errRT := r.Cookie(RefreshTokenCookie)
	if errAT != nil || errRT != nil {
		clearSessionCookies(w)
		return common.NewAppError(http.StatusUnauthorized, "Access token or refresh token is missing", nil)
	}

	pair, err := h.sessionService.Rotate(r.Context(), accessCookie.Value, refreshCookie.Value)
	if err != nil {
		clearSessionCookies(w)
		return common.FromError(err, "Could not refresh tokens")
	}

	setSessionCookies(w, pair)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(pair)
	return nil
}

// Logout godoc
// @Summary      Invalidate the current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	if refreshCookie, err := r.Cookie(RefreshTokenCookie); err == nil {
		if err := h.userService.Logout(r.Context(), refreshCookie.Value); err != nil {
			return common.NewAppError(http.StatusInternalServerError, "Could not log out", err)
		}
	}

	clearSessionCookies(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Successfully logged out"})
	return nil
}
