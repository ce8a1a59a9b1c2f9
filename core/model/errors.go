package model

import "errors"

// ErrInvalidArgument is returned when a value is constructed from invalid input.
var ErrInvalidArgument = errors.New("invalid argument")
