package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"go-event-api/auth"
	"go-event-api/common"
	"go-event-api/model"
	"go-event-api/service"
)

const maxImageBytes = 5 << 20 // 5 MiB

type EventHandler struct {
	service *service.EventService
}

func NewEventHandler(service *service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func pageParamsFromQuery(r *http.Request) model.PageParams {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	params := model.PageParams{Page: page, PageSize: pageSize}
	params.Normalize()
	return params
}

func eventIDFromPath(r *http.Request) (uuid.UUID, *common.AppError) {
	eventID, err := uuid.Parse(r.PathValue("eventId"))
	if err != nil {
		return uuid.Nil, common.NewAppError(http.StatusBadRequest, "Invalid event ID in URL path", err)
	}
	return eventID, nil
}

func callerIdentity(r *http.Request) (auth.Identity, *common.AppError) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		return id, common.NewAppError(http.StatusUnauthorized, "Invalid identity in token", nil)
	}
	return id, nil
}

// ListEvents godoc
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200  {object}  model.PageResult[*model.Event]
// @Router       /api/events [get]
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) *common.AppError {
	result, err := h.service.ListEvents(r.Context(), pageParamsFromQuery(r))
	if err != nil {
		return common.FromError(err, "Could not retrieve events")
	}
	return sendJSON(w, http.StatusOK, result)
}

// GetEventByID godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventId path string true "Event ID"
// @Success      200  {object}  model.Event
// @Failure      404  {object}  common.AppError
// @Router       /api/events/{eventId} [get]
func (h *EventHandler) GetEventByID(w http.ResponseWriter, r *http.Request) *common.AppError {
	eventID, appErr := eventIDFromPath(r)
	if appErr != nil {
		return appErr
	}
	event, err := h.service.GetEventByID(r.Context(), eventID)
	if err != nil {
		return common.FromError(err, "Could not retrieve event")
	}
	return sendJSON(w, http.StatusOK, event)
}

// GetEventByTitle godoc
// @Summary      Get an event by exact title
// @Tags         events
// @Produce      json
// @Param        title query string true "Event title"
// @Success      200  {object}  model.Event
// @Failure      404  {object}  common.AppError
// @Router       /api/events/by-title [get]
func (h *EventHandler) GetEventByTitle(w http.ResponseWriter, r *http.Request) *common.AppError {
	title := r.URL.Query().Get("title")
	if title == "" {
		return common.NewAppError(http.StatusBadRequest, "Query parameter 'title' is required", nil)
	}
	event, err := h.service.GetEventByTitle(r.Context(), title)
	if err != nil {
		return common.FromError(err, "Could not retrieve event")
	}
	return sendJSON(w, http.StatusOK, event)
}

// SearchEvents godoc
// @Summary      Search events by filter criteria
// @Tags         events
// @Produce      json
// @Param        start_date query string false "RFC 3339 lower bound"
// @Param        end_date query string false "RFC 3339 upper bound"
// @Param        location query string false "Location substring"
// @Param        category query string false "Event category"
// @Param        term query string false "Free-text search term"
// @Success      200  {object}  model.PageResult[*model.Event]
// @Failure      400  {object}  common.AppError
// @Router       /api/events/search [get]
func (h *EventHandler) SearchEvents(w http.ResponseWriter, r *http.Request) *common.AppError {
	q := r.URL.Query()
	filter := model.EventFilter{
		Location:   q.Get("location"),
		SearchTerm: q.Get("term"),
	}

	if raw := q.Get("start_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return common.NewAppError(http.StatusBadRequest, "Invalid start_date", err)
		}
		filter.StartDate = &t
	}
	if raw := q.Get("end_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return common.NewAppError(http.StatusBadRequest, "Invalid end_date", err)
		}
		filter.EndDate = &t
	}
	if raw := q.Get("category"); raw != "" {
		category, err := model.ParseEventCategory(raw)
		if err != nil {
			return common.NewAppError(http.StatusBadRequest, "Invalid category", err)
		}
		filter.Category = category
	}

	result, err := h.service.SearchEvents(r.Context(), filter, pageParamsFromQuery(r))
	if err != nil {
		return common.FromError(err, "Could not search events")
	}
	return sendJSON(w, http.StatusOK, result)
}

// ListEventsByCreator godoc
// @Summary      List events created by a user
// @Tags         events
// @Produce      json
// @Param        userId path string true "Creator user ID"
// @Success      200  {object}  model.PageResult[*model.Event]
// @Router       /api/events/created-by/{userId} [get]
func (h *EventHandler) ListEventsByCreator(w http.ResponseWriter, r *http.Request) *common.AppError {
	creatorID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid user ID in URL path", err)
	}
	result, svcErr := h.service.ListEventsByCreator(r.Context(), creatorID, pageParamsFromQuery(r))
	if svcErr != nil {
		return common.FromError(svcErr, "Could not retrieve events")
	}
	return sendJSON(w, http.StatusOK, result)
}

// CreateEvent godoc
// @Summary      Create an event owned by the caller
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        event body model.EventRequest true "Event details"
// @Success      201  {object}  model.Event
// @Failure      400  {object}  common.AppError
// @Failure      401  {object}  common.AppError
// @Router       /api/events [post]
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) *common.AppError {
	caller, appErr := callerIdentity(r)
	if appErr != nil {
		return appErr
	}

	var req model.EventRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	event, err := h.service.CreateEvent(r.Context(), caller, req)
	if err != nil {
		return common.FromError(err, "Could not create event")
	}
	return sendJSON(w, http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary      Update an event (creator or admin only)
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        eventId path string true "Event ID"
// @Param        event body model.EventRequest true "Event details"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Router       /api/events/{eventId} [put]
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) *common.AppError {
	caller, appErr := callerIdentity(r)
	if appErr != nil {
		return appErr
	}
	eventID, appErr := eventIDFromPath(r)
	if appErr != nil {
		return appErr
	}

	var req model.EventRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	if err := h.service.UpdateEvent(r.Context(), caller, eventID, req); err != nil {
		return common.FromError(err, "Could not update event")
	}
	return sendJSON(w, http.StatusOK, map[string]string{"message": "Event updated"})
}

// DeleteEvent godoc
// @Summary      Delete an event (creator or admin only)
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        eventId path string true "Event ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Router       /api/events/{eventId} [delete]
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) *common.AppError {
	caller, appErr := callerIdentity(r)
	if appErr != nil {
		return appErr
	}
	eventID, appErr := eventIDFromPath(r)
	if appErr != nil {
		return appErr
	}

	if err := h.service.DeleteEvent(r.Context(), caller, eventID); err != nil {
		return common.FromError(err, "Could not delete event")
	}
	return sendJSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
}

// GetEventImage godoc
// @Summary      Get the event image
// @Tags         events
// @Produce      octet-stream
// @Param        eventId path string true "Event ID"
// @Success      200  {string}  binary
// @Failure      404  {object}  common.AppError
// @Router       /api/events/{eventId}/image [get]
func (h *EventHandler) GetEventImage(w http.ResponseWriter, r *http.Request) *common.AppError {
	eventID, appErr := eventIDFromPath(r)
	if appErr != nil {
		return appErr
	}

	image, err := h.service.GetImageByEventID(r.Context(), eventID)
	if err != nil {
		return common.FromError(err, "Could not retrieve event image")
	}

	w.Header().Set("Content-Type", http.DetectContentType(image))
	w.WriteHeader(http.StatusOK)
	w.Write(image)
	return nil
}

// UploadEventImage godoc
// @Summary      Replace the event image (creator or admin only)
// @Tags         events
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        eventId path string true "Event ID"
// @Param        image formData file true "Image file"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Router       /api/events/{eventId}/image [post]
func (h *EventHandler) UploadEventImage(w http.ResponseWriter, r *http.Request) *common.AppError {
	caller, appErr := callerIdentity(r)
	if appErr != nil {
		return appErr
	}
	eventID, appErr := eventIDFromPath(r)
	if appErr != nil {
		return appErr
	}

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid multipart form", err)
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "No image file provided", err)
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Could not read image file", err)
	}
	if len(image) == 0 {
		return common.NewAppError(http.StatusBadRequest, "No image file provided", nil)
	}

	if err := h.service.UploadEventImage(r.Context(), caller, eventID, image); err != nil {
		return common.FromError(err, "Could not upload event image")
	}
	return sendJSON(w, http.StatusOK, map[string]string{"message": "Image updated"})
}

func sendJSON(w http.ResponseWriter, status int, payload interface{}) *common.AppError {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
	return nil
}
