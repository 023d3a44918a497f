// repository/user_repository_test.go
package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-event-api/model"
)

func TestUserRepository_GetUserByEmail(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	userID := uuid.New()
	birthDate := time.Date(1990, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "birth_date",
		"email", "password_hash", "role", "created_at"}).
		AddRow(userID, "Ada", "Lovelace", birthDate, "ada@example.com", "hash", "user", time.Now())
	dbMock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("ada@example.com").
		WillReturnRows(rows)

	repo := NewUserRepository(db)

	user, err := repo.GetUserByEmail(context.Background(), "ada@example.com")
	assert.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByIDNotFound(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	userID := uuid.New()
	dbMock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "birth_date",
			"email", "password_hash", "role", "created_at"}))

	repo := NewUserRepository(db)

	_, err = repo.GetUserByID(context.Background(), userID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_UpdateUserNotFound(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	userID := uuid.New()
	dbMock.ExpectExec(`UPDATE users SET first_name = \$1`).
		WithArgs("Ada", "Lovelace", sqlmock.AnyArg(), "ada@example.com", userID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewUserRepository(db)

	err = repo.UpdateUser(context.Background(), userID, &model.User{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_UpdateUserRole(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	userID := uuid.New()
	dbMock.ExpectExec(`UPDATE users SET role = \$1 WHERE id = \$2`).
		WithArgs(model.RoleAdmin, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewUserRepository(db)

	assert.NoError(t, repo.UpdateUserRole(context.Background(), userID, model.RoleAdmin))
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
