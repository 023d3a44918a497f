package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"go-event-api/logger"
	"go-event-api/model"
)

// IRegistrationRepository defines the contract for registration database
// operations. CountByEvent and CreateRegistration run inside the caller's
// transaction so the capacity check and the insert see the same snapshot.
type IRegistrationRepository interface {
	CountByEvent(tx *sql.Tx, eventID uuid.UUID) (int, error)
	CreateRegistration(tx *sql.Tx, registration *model.Registration) error
	DeleteRegistration(ctx context.Context, eventID, userID uuid.UUID) error
	Exists(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	GetParticipants(ctx context.Context, eventID uuid.UUID, page model.PageParams) (*model.PageResult[*model.User], error)
	GetParticipantByID(ctx context.Context, eventID, userID uuid.UUID) (*model.User, error)
}

// RegistrationRepository implements IRegistrationRepository.
type RegistrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) *RegistrationRepository {
	return &RegistrationRepository{DB: db}
}

func (r *RegistrationRepository) CountByEvent(tx *sql.Tx, eventID uuid.UUID) (int, error) {
	var count int
	err := tx.QueryRow(`SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute count registrations query")
		return 0, err
	}
	return count, nil
}

func (r *RegistrationRepository) CreateRegistration(tx *sql.Tx, registration *model.Registration) error {
	log := logger.Log.WithField("event_id", registration.EventID).WithField("user_id", registration.UserID)
	log.Info("Executing query to create a new registration")

	query := `INSERT INTO registrations (id, user_id, event_id) VALUES ($1, $2, $3) RETURNING registered_at`
	err := tx.QueryRow(query, registration.ID, registration.UserID, registration.EventID).
		Scan(&registration.RegisteredAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create registration query")
		return err
	}
	return nil
}

func (r *RegistrationRepository) DeleteRegistration(ctx context.Context, eventID, userID uuid.UUID) error {
	log := logger.Log.WithField("event_id", eventID).WithField("user_id", userID)
	log.Info("Executing query to delete a registration")

	query := `DELETE FROM registrations WHERE event_id = $1 AND user_id = $2`
	result, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete registration query")
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM registrations WHERE event_id = $1 AND user_id = $2)`
	if err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(&exists); err != nil {
		logger.Log.WithError(err).Error("Failed to execute registration exists query")
		return false, err
	}
	return exists, nil
}

// GetParticipants returns one page of users registered for an event,
// ordered by registration time.
func (r *RegistrationRepository) GetParticipants(ctx context.Context, eventID uuid.UUID, page model.PageParams) (*model.PageResult[*model.User], error) {
	page.Normalize()

	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID).Scan(&total); err != nil {
		logger.Log.WithError(err).Error("Failed to execute count participants query")
		return nil, err
	}

	query := `SELECT u.id, u.first_name, u.last_name, u.birth_date, u.email, u.role, u.created_at
		FROM users u
		JOIN registrations r ON r.user_id = u.id
		WHERE r.event_id = $1
		ORDER BY r.registered_at LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, eventID, page.PageSize, page.Offset())
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute get participants query")
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.BirthDate, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &model.PageResult[*model.User]{Data: users, TotalCount: total}, nil
}

func (r *RegistrationRepository) GetParticipantByID(ctx context.Context, eventID, userID uuid.UUID) (*model.User, error) {
	query := `SELECT u.id, u.first_name, u.last_name, u.birth_date, u.email, u.role, u.created_at
		FROM users u
		JOIN registrations r ON r.user_id = u.id
		WHERE r.event_id = $1 AND r.user_id = $2`
	var u model.User
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.BirthDate, &u.Email, &u.Role, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		logger.Log.WithError(err).Error("Failed to execute get participant query")
		return nil, err
	}
	return &u, nil
}
