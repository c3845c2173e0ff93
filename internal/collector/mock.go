package collector

import (
	"context"

	"ipoalert/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Items   []map[string]any
	Summary string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchRange(_ context.Context, _, _ string) model.FetchResult {
	if m.Summary != "" {
		return model.FetchResult{Source: m.Name(), ErrorSummary: m.Summary}
	}
	return model.FetchResult{Source: m.Name(), Items: m.Items}
}
