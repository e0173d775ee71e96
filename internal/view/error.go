package view

import "errors"

var ErrFieldRequired = errors.New("field required")
