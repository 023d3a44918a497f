package handler

import (
	"net/http"

	"github.com/google/uuid"

	"go-event-api/common"
	"go-event-api/model"
	"go-event-api/service"
)

type RegistrationHandler struct {
	service *service.RegistrationService
}

func NewRegistrationHandler(service *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

// RegisterForEvent godoc
// @Summary      Register the caller for an event
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        eventId path string true "Event ID"
// @Success      201  {object}  model.Registration
// @Failure      400  {object}  common.AppError "Event full or already registered"
// @Failure      404  {object}  common.AppError
// @Router       /api/events/{eventId}/registrations [post]
func (h *RegistrationHandler) RegisterForEvent(w http.ResponseWriter, r *http.Request) *common.AppError {
	caller, appErr := callerIdentity(r)
	if appErr != nil {
		return appErr
	}
	eventID, appErr := eventIDFromPath(r)
	if appErr != nil {
		return appErr
	}

	registration, err := h.service.RegisterForEvent(r.Context(), eventID, caller.UserID)
	if err != nil {
		switch err {
		case service.ErrEventFull, service.ErrAlreadyRegistered:
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		default:
			return common.FromError(err, "Could not register for event")
		}
	}
	return sendJSON(w, http.StatusCreated, registration)
}

// UnregisterFromEvent godoc
// @Summary      Remove the caller's registration for an event
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        eventId path string true "Event ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  common.AppError "Not registered"
// @Router       /api/events/{eventId}/registrations [delete]
func (h *RegistrationHandler) UnregisterFromEvent(w http.ResponseWriter, r *http.Request) *common.AppError {
	caller, appErr := callerIdentity(r)
	if appErr != nil {
		return appErr
	}
	eventID, appErr := eventIDFromPath(r)
	if appErr != nil {
		return appErr
	}

	if err := h.service.UnregisterFromEvent(r.Context(), eventID, caller.UserID); err != nil {
		if err == service.ErrNotRegistered {
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		}
		return common.FromError(err, "Could not unregister from event")
	}
	return sendJSON(w, http.StatusOK, map[string]string{"message": "Unregistered from event"})
}

// GetEventParticipants godoc
// @Summary      List the participants of an event
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        eventId path string true "Event ID"
// @Success      200  {object}  model.PageResult[*model.User]
// @Failure      404  {object}  common.AppError
// @Router       /api/events/{eventId}/registrations [get]
func (h *RegistrationHandler) GetEventParticipants(w http.ResponseWriter, r *http.Request) *common.AppError {
	eventID, appErr := eventIDFromPath(r)
	if appErr != nil {
		return appErr
	}

	result, err := h.service.GetEventParticipants(r.Context(), eventID, pageParamsFromQuery(r))
	if err != nil {
		return common.FromError(err, "Could not retrieve participants")
	}
	if result.Data == nil {
		result.Data = []*model.User{}
	}
	return sendJSON(w, http.StatusOK, result)
}

// GetEventParticipantByID godoc
// @Summary      Get one participant of an event
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        eventId path string true "Event ID"
// @Param        userId path string true "User ID"
// @Success      200  {object}  model.User
// @Failure      404  {object}  common.AppError
// @Router       /api/events/{eventId}/registrations/{userId} [get]
func (h *RegistrationHandler) GetEventParticipantByID(w http.ResponseWriter, r *http.Request) *common.AppError {
	eventID, appErr := eventIDFromPath(r)
	if appErr != nil {
		return appErr
	}
	userID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid user ID in URL path", err)
	}

	participant, svcErr := h.service.GetEventParticipantByID(r.Context(), eventID, userID)
	if svcErr != nil {
		return common.FromError(svcErr, "Could not retrieve participant")
	}
	return sendJSON(w, http.StatusOK, participant)
}
