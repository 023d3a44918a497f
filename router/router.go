package router

import (
	"net/http"

	"go-event-api/auth"
	"go-event-api/common"
	"go-event-api/handler"
)

// NewRouter wires every route. Public reads stay open; mutating routes go
// through the auth middleware, role management additionally through the
// admin middleware.
func NewRouter(codec *auth.TokenCodec,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	eventHandler *handler.EventHandler,
	registrationHandler *handler.RegistrationHandler) http.Handler {

	mux := http.NewServeMux()
	authenticated := handler.AuthMiddleware(codec)

	protect := func(h func(http.ResponseWriter, *http.Request) *common.AppError) http.Handler {
		return authenticated(handler.ErrorHandlingMiddleware(h))
	}

	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Auth
	mux.Handle("POST /api/auth/register", handler.ErrorHandlingMiddleware(authHandler.Register))
	mux.Handle("POST /api/auth/login", handler.ErrorHandlingMiddleware(authHandler.Login))
	mux.Handle("POST /api/auth/refresh", handler.ErrorHandlingMiddleware(authHandler.Refresh))
	mux.Handle("POST /api/auth/logout", handler.ErrorHandlingMiddleware(authHandler.Logout))

	// Events: public reads
	mux.Handle("GET /api/events", handler.ErrorHandlingMiddleware(eventHandler.ListEvents))
	mux.Handle("GET /api/events/by-title", handler.ErrorHandlingMiddleware(eventHandler.GetEventByTitle))
	mux.Handle("GET /api/events/search", handler.ErrorHandlingMiddleware(eventHandler.SearchEvents))
	mux.Handle("GET /api/events/created-by/{userId}", handler.ErrorHandlingMiddleware(eventHandler.ListEventsByCreator))
	mux.Handle("GET /api/events/{eventId}", handler.ErrorHandlingMiddleware(eventHandler.GetEventByID))
	mux.Handle("GET /api/events/{eventId}/image", handler.ErrorHandlingMiddleware(eventHandler.GetEventImage))

	// Events: authenticated writes
	mux.Handle("POST /api/events", protect(eventHandler.CreateEvent))
	mux.Handle("PUT /api/events/{eventId}", protect(eventHandler.UpdateEvent))
	mux.Handle("DELETE /api/events/{eventId}", protect(eventHandler.DeleteEvent))
	mux.Handle("POST /api/events/{eventId}/image", protect(eventHandler.UploadEventImage))

	// Registrations
	mux.Handle("POST /api/events/{eventId}/registrations", protect(registrationHandler.RegisterForEvent))
	mux.Handle("DELETE /api/events/{eventId}/registrations", protect(registrationHandler.UnregisterFromEvent))
	mux.Handle("GET /api/events/{eventId}/registrations", protect(registrationHandler.GetEventParticipants))
	mux.Handle("GET /api/events/{eventId}/registrations/{userId}", protect(registrationHandler.GetEventParticipantByID))

	// Users
	mux.Handle("GET /api/users/me", protect(userHandler.GetMe))
	mux.Handle("PUT /api/users/me", protect(userHandler.UpdateMe))
	mux.Handle("PUT /api/users/{userId}/role",
		authenticated(handler.AdminMiddleware(handler.ErrorHandlingMiddleware(userHandler.UpdateUserRole))))

	return mux
}
