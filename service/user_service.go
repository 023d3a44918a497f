package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"go-event-api/auth"
	"go-event-api/logger"
	"go-event-api/model"
	"go-event-api/repository"
)

// UserService handles registration, credential verification, and profile
// management. Session lifecycle is delegated to the SessionService.
type UserService struct {
	userRepo repository.IUserRepository
	hasher   *auth.PasswordHasher
	sessions *SessionService
}

func NewUserService(userRepo repository.IUserRepository, hasher *auth.PasswordHasher, sessions *SessionService) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		sessions: sessions,
	}
}

// Register creates a new user with the default role. The plaintext password
// is hashed immediately and never stored.
func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	hash, err := s.hasher.GenerateHash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BirthDate:    req.BirthDate,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	logger.Log.WithField("email", user.Email).Info("New user registered")
	return user, nil
}

// Login verifies credentials and issues a token pair. Unknown email, wrong
// password, and a corrupt stored hash all surface as the same
// authentication failure to the caller; the corrupt-hash case is logged
// separately as it needs operator attention.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.TokenPair, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", auth.ErrAuthentication)
		}
		return nil, err
	}

	match, err := s.hasher.VerifyHash(password, user.PasswordHash)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", user.ID).
			Error("Stored password hash could not be verified")
		return nil, fmt.Errorf("%w: invalid credentials", auth.ErrAuthentication)
	}
	if !match {
		return nil, fmt.Errorf("%w: invalid credentials", auth.ErrAuthentication)
	}

	return s.sessions.Issue(ctx, user)
}

// Logout invalidates the presented refresh token. Safe to call twice.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	return s.sessions.Invalidate(ctx, refreshToken)
}

func (s *UserService) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userRepo.GetUserByEmail(ctx, email)
}

// UpdateProfile updates a user's own display attributes.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req model.UpdateUserRequest) error {
	user := &model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
		Email:     req.Email,
	}
	return s.userRepo.UpdateUser(ctx, userID, user)
}

// UpdateUserRole assigns a new role. Only valid roles can be assigned; the
// admin-only restriction is enforced by the routing layer.
func (s *UserService) UpdateUserRole(ctx context.Context, userID uuid.UUID, newRole model.Role) error {
	if _, err := model.ParseRole(string(newRole)); err != nil {
		return errors.New("invalid role specified")
	}
	return s.userRepo.UpdateUserRole(ctx, userID, newRole)
}
