package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"go-event-api/logger"
	"go-event-api/model"
)

// IEventRepository defines the contract for event database operations.
type IEventRepository interface {
	CreateEvent(ctx context.Context, event *model.Event) error
	GetEventByID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	GetEventByTitle(ctx context.Context, title string) (*model.Event, error)
	ListEvents(ctx context.Context, page model.PageParams) (*model.PageResult[*model.Event], error)
	SearchEvents(ctx context.Context, filter model.EventFilter, page model.PageParams) (*model.PageResult[*model.Event], error)
	ListEventsByCreator(ctx context.Context, creatorID uuid.UUID, page model.PageParams) (*model.PageResult[*model.Event], error)
	UpdateEvent(ctx context.Context, eventID uuid.UUID, event *model.Event) error
	DeleteEvent(ctx context.Context, eventID uuid.UUID) error
	UploadEventImage(ctx context.Context, eventID uuid.UUID, image []byte) error
	GetImageByEventID(ctx context.Context, eventID uuid.UUID) ([]byte, error)
	GetEventForUpdate(tx *sql.Tx, eventID uuid.UUID) (*model.Event, error)
}

// EventRepository implements IEventRepository.
type EventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{DB: db}
}

const eventColumns = `id, title, description, start_date, end_date, location, category, max_participants, creator_id, created_at`

func scanEventRows(rows *sql.Rows) ([]*model.Event, error) {
	var events []*model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate,
			&e.Location, &e.Category, &e.MaxParticipants, &e.CreatorID, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}

func (r *EventRepository) CreateEvent(ctx context.Context, event *model.Event) error {
	log := logger.Log.WithField("title", event.Title)
	log.Info("Executing query to create a new event")

	query := `INSERT INTO events (id, title, description, start_date, end_date, location, category, max_participants, creator_id, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING created_at`
	err := r.DB.QueryRowContext(ctx, query, event.ID, event.Title, event.Description,
		event.StartDate, event.EndDate, event.Location, event.Category,
		event.MaxParticipants, event.CreatorID, event.Image).Scan(&event.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create event query")
		return err
	}
	return nil
}

func (r *EventRepository) GetEventByID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.scanEvent(r.DB.QueryRowContext(ctx, query, eventID))
}

func (r *EventRepository) GetEventByTitle(ctx context.Context, title string) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE title = $1`
	return r.scanEvent(r.DB.QueryRowContext(ctx, query, title))
}

func (r *EventRepository) scanEvent(row *sql.Row) (*model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate,
		&e.Location, &e.Category, &e.MaxParticipants, &e.CreatorID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListEvents returns one page of events ordered by start date.
func (r *EventRepository) ListEvents(ctx context.Context, page model.PageParams) (*model.PageResult[*model.Event], error) {
	return r.queryPage(ctx, "", nil, page)
}

// ListEventsByCreator returns one page of the events a user created.
func (r *EventRepository) ListEventsByCreator(ctx context.Context, creatorID uuid.UUID, page model.PageParams) (*model.PageResult[*model.Event], error) {
	return r.queryPage(ctx, "WHERE creator_id = $1", []interface{}{creatorID}, page)
}

// SearchEvents applies the optional filter criteria and returns one page of
// matches. Filter clauses are combined with AND; the search term matches
// title or description case-insensitively.
func (r *EventRepository) SearchEvents(ctx context.Context, filter model.EventFilter, page model.PageParams) (*model.PageResult[*model.Event], error) {
	var clauses []string
	var args []interface{}

	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.StartDate != nil {
		clauses = append(clauses, "start_date >= "+next(*filter.StartDate))
	}
	if filter.EndDate != nil {
		clauses = append(clauses, "end_date <= "+next(*filter.EndDate))
	}
	if filter.Location != "" {
		clauses = append(clauses, "location ILIKE "+next("%"+filter.Location+"%"))
	}
	if filter.Category != "" {
		clauses = append(clauses, "category = "+next(filter.Category))
	}
	if filter.SearchTerm != "" {
		p := next("%" + filter.SearchTerm + "%")
		clauses = append(clauses, "(title ILIKE "+p+" OR description ILIKE "+p+")")
	}

	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}
	return r.queryPage(ctx, where, args, page)
}

func (r *EventRepository) queryPage(ctx context.Context, where string, args []interface{}, page model.PageParams) (*model.PageResult[*model.Event], error) {
	page.Normalize()

	var total int
	countQuery := `SELECT COUNT(*) FROM events ` + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.Log.WithError(err).Error("Failed to execute count events query")
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM events %s ORDER BY start_date LIMIT $%d OFFSET $%d`,
		eventColumns, where, len(args)+1, len(args)+2)
	rows, err := r.DB.QueryContext(ctx, query, append(args, page.PageSize, page.Offset())...)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute list events query")
		return nil, err
	}
	defer rows.Close()

	events, err := scanEventRows(rows)
	if err != nil {
		return nil, err
	}
	return &model.PageResult[*model.Event]{Data: events, TotalCount: total}, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, eventID uuid.UUID, event *model.Event) error {
	log := logger.Log.WithField("event_id", eventID)
	log.Info("Executing query to update an event")

	query := `UPDATE events SET title = $1, description = $2, start_date = $3, end_date = $4,
		location = $5, category = $6, max_participants = $7 WHERE id = $8`
	result, err := r.DB.ExecContext(ctx, query, event.Title, event.Description, event.StartDate,
		event.EndDate, event.Location, event.Category, event.MaxParticipants, eventID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update event query")
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventRepository) DeleteEvent(ctx context.Context, eventID uuid.UUID) error {
	log := logger.Log.WithField("event_id", eventID)
	log.Info("Executing query to delete an event")

	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, eventID)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete event query")
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventRepository) UploadEventImage(ctx context.Context, eventID uuid.UUID, image []byte) error {
	log := logger.Log.WithField("event_id", eventID)
	log.Info("Executing query to upload an event image")

	result, err := r.DB.ExecContext(ctx, `UPDATE events SET image = $1 WHERE id = $2`, image, eventID)
	if err != nil {
		log.WithError(err).Error("Failed to execute upload event image query")
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

// GetEventForUpdate locks the event row for the duration of the enclosing
// transaction. Used by registration to serialize capacity checks.
func (r *EventRepository) GetEventForUpdate(tx *sql.Tx, eventID uuid.UUID) (*model.Event, error) {
	var e model.Event
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	err := tx.QueryRow(query, eventID).Scan(&e.ID, &e.Title, &e.Description, &e.StartDate,
		&e.EndDate, &e.Location, &e.Category, &e.MaxParticipants, &e.CreatorID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Log.WithError(err).Error("Failed to execute get event for update query")
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) GetImageByEventID(ctx context.Context, eventID uuid.UUID) ([]byte, error) {
	var image []byte
	err := r.DB.QueryRowContext(ctx, `SELECT image FROM events WHERE id = $1`, eventID).Scan(&image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Log.WithError(err).Error("Failed to execute get event image query")
		return nil, err
	}
	return image, nil
}
