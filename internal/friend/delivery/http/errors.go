package http

import (
	"net/http"

	"blognest-api/internal/friend"
	"blognest-api/pkg/errors"
)

var errBadRequest = errors.NewHTTPError(http.StatusBadRequest, "Invalid request")

func (h *Handler) mapError(err error) error {
	switch err {
	case friend.ErrRequestNotFound:
		return errors.NewHTTPError(http.StatusNotFound, "Friend request not found")
	case friend.ErrRequestPending:
		return errors.NewHTTPError(http.StatusConflict, "A request is already pending")
	case friend.ErrAlreadyFriends:
		return errors.NewHTTPError(http.StatusConflict, "Already friends")
	case friend.ErrAlreadyResolved:
		return errors.NewHTTPError(http.StatusConflict, "Request already resolved")
	case friend.ErrNotReceiver:
		return errors.NewForbiddenHTTPError()
	case friend.ErrNotFriends:
		return errors.NewHTTPError(http.StatusNotFound, "Not friends")
	case friend.ErrSelfAction:
		return errors.NewHTTPError(http.StatusBadRequest, "Cannot target yourself")
	case friend.ErrFieldRequired:
		return errors.NewHTTPError(http.StatusBadRequest, "Missing required field")
	default:
		panic(err)
	}
}
