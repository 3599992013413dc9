package app

import "errors"

// ErrNotFound reports a lookup for a column or task id that is not on the board.
var ErrNotFound = errors.New("not found")
