package http

import (
	"net/http"

	"blognest-api/internal/user"
	"blognest-api/pkg/errors"
)

var errBadRequest = errors.NewHTTPError(http.StatusBadRequest, "Invalid request")

func (h *Handler) mapError(err error) error {
	switch err {
	case user.ErrUserNotFound:
		return errors.NewHTTPError(http.StatusNotFound, "User not found")
	case user.ErrUserExists:
		return errors.NewHTTPError(http.StatusConflict, "Username already taken")
	case user.ErrWrongPassword:
		return errors.NewHTTPError(http.StatusUnauthorized, "Wrong username or password")
	case user.ErrFieldRequired:
		return errors.NewHTTPError(http.StatusBadRequest, "Missing required field")
	default:
		panic(err)
	}
}
