package domain

import (
	"errors"
	"fmt"
)

// ErrStationNotFound is returned when no station in the feed has the requested id.
var ErrStationNotFound = errors.New("station not found")

// UpstreamError reports a network or status failure talking to the feed.
type UpstreamError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s returned status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ParseError reports a feed payload that is missing fields or is not valid JSON.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("parse: missing field %q", e.Field)
	}
	return fmt.Sprintf("parse: %s: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
