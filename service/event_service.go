package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"go-event-api/auth"
	"go-event-api/logger"
	"go-event-api/model"
	"go-event-api/repository"
)

const imageCacheTTL = 10 * time.Minute

// EventService handles event business logic. Every mutating operation is
// gated by the ownership guard: only the event's creator or an admin may
// update, delete, or replace the image.
type EventService struct {
	repo  repository.IEventRepository
	cache ICacheClient
}

func NewEventService(repo repository.IEventRepository, cache ICacheClient) *EventService {
	return &EventService{
		repo:  repo,
		cache: cache,
	}
}

func imageCacheKey(eventID uuid.UUID) string {
	return fmt.Sprintf("event_image:%s", eventID)
}

func (s *EventService) ListEvents(ctx context.Context, page model.PageParams) (*model.PageResult[*model.Event], error) {
	return s.repo.ListEvents(ctx, page)
}

func (s *EventService) GetEventByID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	return s.repo.GetEventByID(ctx, eventID)
}

func (s *EventService) GetEventByTitle(ctx context.Context, title string) (*model.Event, error) {
	return s.repo.GetEventByTitle(ctx, title)
}

func (s *EventService) SearchEvents(ctx context.Context, filter model.EventFilter, page model.PageParams) (*model.PageResult[*model.Event], error) {
	return s.repo.SearchEvents(ctx, filter, page)
}

func (s *EventService) ListEventsByCreator(ctx context.Context, creatorID uuid.UUID, page model.PageParams) (*model.PageResult[*model.Event], error) {
	return s.repo.ListEventsByCreator(ctx, creatorID, page)
}

// CreateEvent creates an event owned by the caller.
func (s *EventService) CreateEvent(ctx context.Context, caller auth.Identity, req model.EventRequest) (*model.Event, error) {
	event := &model.Event{
		ID:              uuid.New(),
		Title:           req.Title,
		Description:     req.Description,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Location:        req.Location,
		Category:        req.Category,
		MaxParticipants: req.MaxParticipants,
		CreatorID:       caller.UserID,
	}
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	logger.Log.WithField("event_id", event.ID).Info("Event created")
	return event, nil
}

// UpdateEvent replaces an event's attributes after the ownership check.
func (s *EventService) UpdateEvent(ctx context.Context, caller auth.Identity, eventID uuid.UUID, req model.EventRequest) error {
	existing, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return err
	}
	if !auth.CanMutate(existing.CreatorID, caller) {
		return fmt.Errorf("%w: only the event creator or an admin can update it", auth.ErrForbidden)
	}

	event := &model.Event{
		Title:           req.Title,
		Description:     req.Description,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Location:        req.Location,
		Category:        req.Category,
		MaxParticipants: req.MaxParticipants,
	}
	if err := s.repo.UpdateEvent(ctx, eventID, event); err != nil {
		return err
	}
	s.cache.Del(ctx, imageCacheKey(eventID))
	return nil
}

// DeleteEvent removes an event after the ownership check.
func (s *EventService) DeleteEvent(ctx context.Context, caller auth.Identity, eventID uuid.UUID) error {
	existing, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return err
	}
	if !auth.CanMutate(existing.CreatorID, caller) {
		return fmt.Errorf("%w: only the event creator or an admin can delete it", auth.ErrForbidden)
	}

	if err := s.repo.DeleteEvent(ctx, eventID); err != nil {
		return err
	}
	s.cache.Del(ctx, imageCacheKey(eventID))
	return nil
}

// UploadEventImage replaces the event image after the ownership check.
func (s *EventService) UploadEventImage(ctx context.Context, caller auth.Identity, eventID uuid.UUID, image []byte) error {
	existing, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return err
	}
	if !auth.CanMutate(existing.CreatorID, caller) {
		return fmt.Errorf("%w: only the event creator or an admin can replace the image", auth.ErrForbidden)
	}

	if err := s.repo.UploadEventImage(ctx, eventID, image); err != nil {
		return err
	}
	s.cache.Del(ctx, imageCacheKey(eventID))
	return nil
}

// GetImageByEventID serves the event image through a cache-aside lookup.
func (s *EventService) GetImageByEventID(ctx context.Context, eventID uuid.UUID) ([]byte, error) {
	cacheKey := imageCacheKey(eventID)

	cached, err := s.cache.Get(ctx, cacheKey).Bytes()
	if err == nil && len(cached) > 0 {
		return cached, nil
	}
	if err != nil && err != redis.Nil {
		// Cache trouble is not fatal; fall through to the database.
		logger.Log.WithError(err).Warn("Event image cache read failed")
	}

	image, err := s.repo.GetImageByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(image) == 0 {
		return nil, repository.ErrNotFound
	}

	if err := s.cache.Set(ctx, cacheKey, image, imageCacheTTL).Err(); err != nil {
		logger.Log.WithError(err).Warn("Event image cache write failed")
	}
	return image, nil
}
