// service/user_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-event-api/auth"
	"go-event-api/model"
	"go-event-api/repository"
)

func newTestUserService(userRepo repository.IUserRepository, tokenRepo repository.ITokenRepository) *UserService {
	hasher := auth.NewPasswordHasher(4) // minimum cost keeps tests fast
	sessions := newTestSessionService(tokenRepo, userRepo)
	return NewUserService(userRepo, hasher, sessions)
}

func TestUserService_Register(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "new@example.com" &&
			u.Role == model.RoleUser &&
			u.PasswordHash != "" &&
			u.PasswordHash != "plaintext-password"
	})).Return(nil).Once()

	svc := newTestUserService(userRepo, nil)

	user, err := svc.Register(context.Background(), model.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "new@example.com",
		Password:  "plaintext-password",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	userRepo.AssertExpectations(t)
}

func TestUserService_Login(t *testing.T) {
	hasher := auth.NewPasswordHasher(4)
	hash, err := hasher.GenerateHash("correct-password")
	assert.NoError(t, err)

	user := testUser()
	user.PasswordHash = hash

	userRepo := new(mockUserRepo)
	userRepo.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil)

	svc := newTestUserService(userRepo, newFakeTokenStore())

	pair, err := svc.Login(context.Background(), user.Email, "correct-password")
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	hasher := auth.NewPasswordHasher(4)
	hash, err := hasher.GenerateHash("correct-password")
	assert.NoError(t, err)

	user := testUser()
	user.PasswordHash = hash

	userRepo := new(mockUserRepo)
	userRepo.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil)

	svc := newTestUserService(userRepo, newFakeTokenStore())

	_, err = svc.Login(context.Background(), user.Email, "wrong-password")
	assert.ErrorIs(t, err, auth.ErrAuthentication)
}

func TestUserService_LoginUnknownEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetUserByEmail", mock.Anything, "ghost@example.com").
		Return(nil, repository.ErrNotFound).Once()

	svc := newTestUserService(userRepo, nil)

	// Unknown email and wrong password are indistinguishable to the caller.
	_, err := svc.Login(context.Background(), "ghost@example.com", "anything")
	assert.ErrorIs(t, err, auth.ErrAuthentication)
	assert.Contains(t, err.Error(), "invalid credentials")
	userRepo.AssertExpectations(t)
}

func TestUserService_LoginCorruptStoredHash(t *testing.T) {
	user := testUser()
	user.PasswordHash = "definitely-not-bcrypt"

	userRepo := new(mockUserRepo)
	userRepo.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil)

	svc := newTestUserService(userRepo, nil)

	_, err := svc.Login(context.Background(), user.Email, "anything")
	assert.ErrorIs(t, err, auth.ErrAuthentication)
}

func TestUserService_UpdateUserRole(t *testing.T) {
	user := testUser()

	userRepo := new(mockUserRepo)
	userRepo.On("UpdateUserRole", mock.Anything, user.ID, model.RoleAdmin).Return(nil).Once()

	svc := newTestUserService(userRepo, nil)

	assert.NoError(t, svc.UpdateUserRole(context.Background(), user.ID, model.RoleAdmin))
	userRepo.AssertExpectations(t)
}

func TestUserService_UpdateUserRoleInvalid(t *testing.T) {
	user := testUser()
	userRepo := new(mockUserRepo)

	svc := newTestUserService(userRepo, nil)

	err := svc.UpdateUserRole(context.Background(), user.ID, model.Role("superuser"))
	assert.EqualError(t, err, "invalid role specified")
	userRepo.AssertNotCalled(t, "UpdateUserRole")
}
