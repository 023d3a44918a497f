// handler/auth_handler_test.go
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-event-api/auth"
	"go-event-api/model"
	"go-event-api/repository"
	"go-event-api/service"
)

// fakeUserStore is an in-memory IUserRepository used to run the auth
// handlers against real services.
type fakeUserStore struct {
	byID    map[uuid.UUID]*model.User
	byEmail map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    make(map[uuid.UUID]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *model.User) error {
	user.CreatedAt = time.Now()
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	if user, ok := f.byID[userID]; ok {
		return user, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if user, ok := f.byEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) UpdateUser(ctx context.Context, userID uuid.UUID, user *model.User) error {
	existing, ok := f.byID[userID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.BirthDate = user.BirthDate
	existing.Email = user.Email
	return nil
}

func (f *fakeUserStore) UpdateUserRole(ctx context.Context, userID uuid.UUID, role model.Role) error {
	existing, ok := f.byID[userID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Role = role
	return nil
}

// fakeTokenStore is an in-memory ITokenRepository with the same
// replace-on-create semantics as the real one.
type fakeTokenStore struct {
	byUser  map[uuid.UUID]*model.RefreshToken
	byToken map[string]*model.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{
		byUser:  make(map[uuid.UUID]*model.RefreshToken),
		byToken: make(map[string]*model.RefreshToken),
	}
}

func (f *fakeTokenStore) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	if old, ok := f.byUser[userID]; ok {
		delete(f.byToken, old.Token)
	}
	record := &model.RefreshToken{UserID: userID, Token: token, ExpiresAt: expiresAt, CreatedAt: time.Now()}
	f.byUser[userID] = record
	f.byToken[token] = record
	return nil
}

func (f *fakeTokenStore) GetByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	if record, ok := f.byToken[token]; ok {
		return record, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTokenStore) DeleteByToken(ctx context.Context, token string) error {
	if record, ok := f.byToken[token]; ok {
		delete(f.byUser, record.UserID)
		delete(f.byToken, token)
	}
	return nil
}

func newTestAuthHandler() (*AuthHandler, *fakeUserStore) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	codec := auth.NewTokenCodec("handler-test-key")
	hasher := auth.NewPasswordHasher(4)
	sessions := service.NewSessionService(codec, tokens, users, 15*time.Minute, 7*24*time.Hour)
	userService := service.NewUserService(users, hasher, sessions)
	return NewAuthHandler(userService, sessions), users
}

func registerPayload() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"birth_date": "1990-06-01T00:00:00Z",
		"email":      "ada@example.com",
		"password":   "correct-password",
	})
	return body
}

func doLogin(t *testing.T, h *AuthHandler, email, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	ErrorHandlingMiddleware(h.Login)(rec, req)
	return rec
}

func sessionCookies(rec *httptest.ResponseRecorder) (access, refresh *http.Cookie) {
	for _, cookie := range rec.Result().Cookies() {
		switch cookie.Name {
		case AccessTokenCookie:
			access = cookie
		case RefreshTokenCookie:
			refresh = cookie
		}
	}
	return access, refresh
}

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	h, users := newTestAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(registerPayload()))
	rec := httptest.NewRecorder()
	ErrorHandlingMiddleware(h.Register)(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	stored, err := users.GetUserByEmail(context.Background(), "ada@example.com")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, stored.Role)
	assert.NotEqual(t, "correct-password", stored.PasswordHash)

	// The response never carries the password hash.
	assert.NotContains(t, rec.Body.String(), stored.PasswordHash)

	loginRec := doLogin(t, h, "ada@example.com", "correct-password")
	assert.Equal(t, http.StatusOK, loginRec.Code)

	access, refresh := sessionCookies(loginRec)
	assert.NotNil(t, access)
	assert.NotNil(t, refresh)
	assert.True(t, access.HttpOnly)
	assert.True(t, refresh.HttpOnly)
	assert.NotEmpty(t, access.Value)
	assert.NotEmpty(t, refresh.Value)
}

func TestAuthHandler_LoginFailureClearsCookies(t *testing.T) {
	h, _ := newTestAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(registerPayload()))
	ErrorHandlingMiddleware(h.Register)(httptest.NewRecorder(), req)

	rec := doLogin(t, h, "ada@example.com", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	access, refresh := sessionCookies(rec)
	assert.NotNil(t, access)
	assert.NotNil(t, refresh)
	assert.Empty(t, access.Value)
	assert.Empty(t, refresh.Value)
	assert.Negative(t, access.MaxAge)
	assert.Negative(t, refresh.MaxAge)
}

func TestAuthHandler_Refresh(t *testing.T) {
	h, _ := newTestAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(registerPayload()))
	ErrorHandlingMiddleware(h.Register)(httptest.NewRecorder(), req)

	loginRec := doLogin(t, h, "ada@example.com", "correct-password")
	access, refresh := sessionCookies(loginRec)

	refreshReq := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	refreshReq.AddCookie(access)
	refreshReq.AddCookie(refresh)
	refreshRec := httptest.NewRecorder()
	ErrorHandlingMiddleware(h.Refresh)(refreshRec, refreshReq)

	assert.Equal(t, http.StatusOK, refreshRec.Code)
	_, rotated := sessionCookies(refreshRec)
	assert.NotNil(t, rotated)
	assert.NotEqual(t, refresh.Value, rotated.Value)

	// Replaying the superseded pair fails and clears the session.
	replayRec := httptest.NewRecorder()
	replayReq := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	replayReq.AddCookie(access)
	replayReq.AddCookie(refresh)
	ErrorHandlingMiddleware(h.Refresh)(replayRec, replayReq)
	assert.Equal(t, http.StatusUnauthorized, replayRec.Code)
}

func TestAuthHandler_RefreshWithoutCookies(t *testing.T) {
	h, _ := newTestAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	rec := httptest.NewRecorder()
	ErrorHandlingMiddleware(h.Refresh)(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_LogoutIsIdempotent(t *testing.T) {
	h, _ := newTestAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(registerPayload()))
	ErrorHandlingMiddleware(h.Register)(httptest.NewRecorder(), req)

	loginRec := doLogin(t, h, "ada@example.com", "correct-password")
	_, refresh := sessionCookies(loginRec)

	for i := 0; i < 2; i++ {
		logoutReq := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		logoutReq.AddCookie(refresh)
		logoutRec := httptest.NewRecorder()
		ErrorHandlingMiddleware(h.Logout)(logoutRec, logoutReq)

		assert.Equal(t, http.StatusOK, logoutRec.Code)
		access, cleared := sessionCookies(logoutRec)
		assert.Empty(t, access.Value)
		assert.Empty(t, cleared.Value)
	}

	// The invalidated refresh token no longer rotates.
	refreshReq := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	refreshReq.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "whatever"})
	refreshReq.AddCookie(refresh)
	refreshRec := httptest.NewRecorder()
	ErrorHandlingMiddleware(h.Refresh)(refreshRec, refreshReq)
	assert.Equal(t, http.StatusUnauthorized, refreshRec.Code)
}

func TestAuthHandler_RegisterRejectsInvalidPayload(t *testing.T) {
	h, _ := newTestAuthHandler()

	body, _ := json.Marshal(map[string]string{"email": "not-an-email", "password": "short"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	ErrorHandlingMiddleware(h.Register)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
