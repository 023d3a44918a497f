package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"go-event-api/logger"
	"go-event-api/model"
)

// IUserRepository defines the contract for user database operations.
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, user *model.User) error
	UpdateUserRole(ctx context.Context, userID uuid.UUID, role model.Role) error
}

// UserRepository implements IUserRepository.
type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, first_name, last_name, birth_date, email, password_hash, role, created_at`

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.BirthDate,
		&user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	log := logger.Log.WithField("email", user.Email)
	log.Info("Executing query to create a new user")

	query := `INSERT INTO users (id, first_name, last_name, birth_date, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`
	err := r.DB.QueryRowContext(ctx, query, user.ID, user.FirstName, user.LastName,
		user.BirthDate, user.Email, user.PasswordHash, user.Role).Scan(&user.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create user query")
		return err
	}
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.DB.QueryRowContext(ctx, query, email))
}

// UpdateUser updates profile attributes. The password hash and role are
// managed through their own paths and never touched here.
func (r *UserRepository) UpdateUser(ctx context.Context, userID uuid.UUID, user *model.User) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to update a user profile")

	query := `UPDATE users SET first_name = $1, last_name = $2, birth_date = $3, email = $4 WHERE id = $5`
	result, err := r.DB.ExecContext(ctx, query, user.FirstName, user.LastName, user.BirthDate, user.Email, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update user query")
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateUserRole(ctx context.Context, userID uuid.UUID, role model.Role) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to update a user role")

	query := `UPDATE users SET role = $1 WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, role, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update user role query")
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}
