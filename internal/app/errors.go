package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoFetchers    = errors.New("both fetchers must be configured before start")
	ErrCycleInFlight = errors.New("a correlation cycle is already running")
)
