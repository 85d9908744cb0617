package fetch

import "errors"

// Sentinel kinds for fetch errors.
var (
	ErrUpstreamStatus = errors.New("upstream returned non-2xx status")
	ErrDecode         = errors.New("upstream payload decode failed")
)
