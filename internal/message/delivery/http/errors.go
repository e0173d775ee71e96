package http

import (
	"net/http"

	"blognest-api/internal/message"
	"blognest-api/internal/realtime"
	"blognest-api/pkg/errors"
)

var errBadRequest = errors.NewHTTPError(http.StatusBadRequest, "Invalid request")

func (h *Handler) mapError(err error) error {
	switch err {
	case message.ErrMessageNotFound:
		return errors.NewHTTPError(http.StatusNotFound, "Message not found")
	case message.ErrNotParticipant, realtime.ErrNotParticipant:
		return errors.NewForbiddenHTTPError()
	case message.ErrNotSender:
		return errors.NewHTTPError(http.StatusForbidden, "Only the sender can recall a message")
	case message.ErrRecallWindowExpired:
		return errors.NewHTTPError(http.StatusUnprocessableEntity, "Recall window has expired")
	case message.ErrMediaNotAllowed:
		return errors.NewHTTPError(http.StatusForbidden, "Media requires friendship or a prior reply")
	case message.ErrSelfMessage:
		return errors.NewHTTPError(http.StatusBadRequest, "Cannot message yourself")
	case message.ErrFieldRequired:
		return errors.NewHTTPError(http.StatusBadRequest, "Missing required field")
	case message.ErrUnsupportedMediaType:
		return errors.NewHTTPError(http.StatusUnsupportedMediaType, "Unsupported media type")
	default:
		panic(err)
	}
}
