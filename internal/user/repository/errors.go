package repository

import "errors"

// ErrNotFound is returned when no row matches the query.
var ErrNotFound = errors.New("record not found")
