package http

import (
	"net/http"

	"blognest-api/internal/notification"
	"blognest-api/internal/realtime"
	"blognest-api/pkg/errors"
)

var errBadRequest = errors.NewHTTPError(http.StatusBadRequest, "Invalid request")

func (h *Handler) mapError(err error) error {
	switch err {
	case notification.ErrNotificationNotFound:
		return errors.NewHTTPError(http.StatusNotFound, "Notification not found")
	case notification.ErrNotOwner:
		return errors.NewForbiddenHTTPError()
	case notification.ErrFieldRequired:
		return errors.NewHTTPError(http.StatusBadRequest, "Missing required field")
	case realtime.ErrTooManyChannels:
		return errors.NewHTTPError(http.StatusTooManyRequests, "Too many open streams")
	default:
		panic(err)
	}
}
