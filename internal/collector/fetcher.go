package collector

import (
	"context"

	"ipoalert/internal/model"
)

// Fetcher defines the interface for fetching IPO calendar data.
type Fetcher interface {
	// FetchRange retrieves calendar records for the inclusive date range.
	// It never returns an error: failures come back inside the result.
	FetchRange(ctx context.Context, from, to string) model.FetchResult
	Name() string
}
