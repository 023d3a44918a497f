package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"go-event-api/auth"
	"go-event-api/logger"
	"go-event-api/repository"
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Code,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Code)
	json.NewEncoder(w).Encode(e)
}

// FromError maps service-layer errors onto HTTP status codes. The 401/403
// split is deliberate: authentication failures end the session, authorization
// failures leave it intact.
func FromError(err error, message string) *AppError {
	switch {
	case errors.Is(err, auth.ErrAuthentication):
		return NewAppError(http.StatusUnauthorized, err.Error(), err)
	case errors.Is(err, auth.ErrForbidden):
		return NewAppError(http.StatusForbidden, err.Error(), err)
	case errors.Is(err, repository.ErrNotFound):
		return NewAppError(http.StatusNotFound, err.Error(), err)
	default:
		return NewAppError(http.StatusInternalServerError, message, err)
	}
}
