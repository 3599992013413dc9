package domain

import "errors"

var (
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidColumnID = errors.New("invalid column id")
)
