package providers

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderUnavailable is returned when no upstream is configured.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrInvalidDate rejects date filters that are neither YYYYMMDD nor YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date filter")
)

// EmptyFeedError signals the upstream has nothing published (HTTP 204/404).
// It is not a failure: callers render an empty scoreboard.
type EmptyFeedError struct {
	Provider   string
	StatusCode int
}

func (e *EmptyFeedError) Error() string {
	return fmt.Sprintf("%s published no scoreboard (status=%d)", providerLabel(e.Provider), e.StatusCode)
}

// NotPublished reports the 204 case; 404 means temporarily unavailable.
func (e *EmptyFeedError) NotPublished() bool {
	return e.StatusCode == 204
}

// UpstreamError is any other failure talking to the upstream: non-2xx,
// transport failure, timeout or an unreadable body.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Detail     string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := providerLabel(e.Provider) + " request failed"
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// AsEmptyFeed attempts to unwrap an error into an EmptyFeedError.
func AsEmptyFeed(err error) (*EmptyFeedError, bool) {
	var target *EmptyFeedError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsUpstreamError attempts to unwrap an error into an UpstreamError.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var target *UpstreamError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

func providerLabel(name string) string {
	if name == "" {
		return "provider"
	}
	return name
}
