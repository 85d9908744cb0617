package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrNotFound   = errors.New("event not found")
	ErrNoSnapshot = errors.New("no snapshot published yet")
)
