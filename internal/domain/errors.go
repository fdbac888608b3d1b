package domain

import "errors"

var (
	// ErrUpstreamUnavailable is returned when the disclosure API cannot be reached
	// or does not answer within the fetch timeout
	ErrUpstreamUnavailable = errors.New("upstream disclosure source unavailable")

	// ErrNoDataAvailable is returned when no cache tier and no upstream fetch
	// could produce any data for a key
	ErrNoDataAvailable = errors.New("no data available for key")
)
