package model

import (
	"errors"
	"fmt"
)

// ErrUpstream marks any failure talking to the generation service. Transport
// errors, non-2xx statuses and undecodable bodies all wrap it.
var ErrUpstream = errors.New("generation service unavailable")

// HTTPError wraps a non-2xx status returned by the generation service.
type HTTPError struct {
	StatusCode int
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}
