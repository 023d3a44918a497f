package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go-event-api/logger"
	"go-event-api/model"
	"go-event-api/queue"
	"go-event-api/repository"
)

var (
	ErrEventFull         = errors.New("event has reached its maximum number of participants")
	ErrAlreadyRegistered = errors.New("user is already registered for this event")
	ErrNotRegistered     = errors.New("user is not registered for this event")
)

// RegistrationService handles event sign-ups. The capacity check and the
// insert run in one transaction with the event row locked, so two
// concurrent registrations cannot both take the last seat.
type RegistrationService struct {
	db        *sql.DB
	eventRepo repository.IEventRepository
	regRepo   repository.IRegistrationRepository
	publisher queue.IPublisher
}

func NewRegistrationService(db *sql.DB, eventRepo repository.IEventRepository,
	regRepo repository.IRegistrationRepository, publisher queue.IPublisher) *RegistrationService {
	return &RegistrationService{
		db:        db,
		eventRepo: eventRepo,
		regRepo:   regRepo,
		publisher: publisher,
	}
}

// RegisterForEvent signs a user up for an event, enforcing capacity and
// uniqueness. A confirmation message is published after commit; publish
// failures are logged, never surfaced.
func (s *RegistrationService) RegisterForEvent(ctx context.Context, eventID, userID uuid.UUID) (*model.Registration, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"event_id": eventID,
		"user_id":  userID,
	})
	log.Info("Starting event registration")

	registered, err := s.regRepo.Exists(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, ErrAlreadyRegistered
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	event, err := s.eventRepo.GetEventForUpdate(tx, eventID)
	if err != nil {
		return nil, err
	}

	count, err := s.regRepo.CountByEvent(tx, eventID)
	if err != nil {
		return nil, err
	}
	if count >= event.MaxParticipants {
		return nil, ErrEventFull
	}

	registration := &model.Registration{
		ID:      uuid.New(),
		UserID:  userID,
		EventID: eventID,
	}
	if err := s.regRepo.CreateRegistration(tx, registration); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	log.Info("Registration completed successfully")

	if s.publisher != nil {
		confirmation := queue.RegistrationConfirmedEvent{
			RegistrationID: registration.ID,
			UserID:         userID,
			EventID:        eventID,
			EventTitle:     event.Title,
			RegisteredAt:   registration.RegisteredAt,
		}
		if err := s.publisher.PublishRegistrationConfirmed(ctx, confirmation); err != nil {
			log.WithError(err).Warn("Failed to publish registration confirmation")
		}
	}

	return registration, nil
}

// UnregisterFromEvent removes a user's registration.
func (s *RegistrationService) UnregisterFromEvent(ctx context.Context, eventID, userID uuid.UUID) error {
	err := s.regRepo.DeleteRegistration(ctx, eventID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotRegistered
	}
	return err
}

// GetEventParticipants lists the users registered for an event.
func (s *RegistrationService) GetEventParticipants(ctx context.Context, eventID uuid.UUID, page model.PageParams) (*model.PageResult[*model.User], error) {
	if _, err := s.eventRepo.GetEventByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.regRepo.GetParticipants(ctx, eventID, page)
}

// GetEventParticipantByID fetches one participant of an event.
func (s *RegistrationService) GetEventParticipantByID(ctx context.Context, eventID, userID uuid.UUID) (*model.User, error) {
	return s.regRepo.GetParticipantByID(ctx, eventID, userID)
}
