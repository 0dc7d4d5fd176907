package collector

import (
	"context"
	"errors"
	"fmt"

	"MarketBreadth/internal/model"
)

var (
	// ErrNoData is returned when no ticker yielded any bars.
	ErrNoData = errors.New("no data available")
	// ErrMalformedPayload is returned when a provider response cannot be decoded into bars.
	ErrMalformedPayload = errors.New("malformed payload")
)

// Fetcher retrieves the daily bar history of one ticker.
// A nil slice with a nil error means the provider has no data for the ticker.
// Each call is a single attempt; retrying is up to the caller.
type Fetcher interface {
	FetchHistory(ctx context.Context, ticker string) ([]model.RawBar, error)
	Name() string
}

// StatusError reports a non-success HTTP status from the provider.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d, body: %s", e.StatusCode, e.Body)
}
