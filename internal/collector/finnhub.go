package collector

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"resty.dev/v3"

	"ipoalert/internal/config"
	"ipoalert/internal/model"
	"ipoalert/internal/normalize"
)

// summaryLimit caps response text embedded in error summaries.
const summaryLimit = 260

// FinnhubFetcher retrieves the IPO calendar from the Finnhub REST API.
type FinnhubFetcher struct {
	Token  string
	Client *resty.Client
}

// NewFinnhubFetcher creates a fetcher backed by the configured HTTP client.
func NewFinnhubFetcher(cfg *config.Config) *FinnhubFetcher {
	return &FinnhubFetcher{
		Token:  cfg.Finnhub.Token,
		Client: NewHTTPClient(cfg),
	}
}

func (f *FinnhubFetcher) Name() string { return "FINNHUB" }

// FetchRange retrieves calendar records for [from, to]. Every failure mode
// is folded into the result's ErrorSummary; the items are then empty.
func (f *FinnhubFetcher) FetchRange(ctx context.Context, from, to string) model.FetchResult {
	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"from":  from,
			"to":    to,
			"token": f.Token,
		}).
		Get("/calendar/ipo")
	if err != nil {
		return f.failure(transportSummary(err))
	}

	body := resp.String()
	if resp.StatusCode() >= 400 {
		return f.failure(fmt.Sprintf("FINNHUB HTTP %d. Body=%s", resp.StatusCode(), normalize.Truncate(body, summaryLimit)))
	}

	var data any
	if err := json.Unmarshal(resp.Bytes(), &data); err != nil {
		return f.failure("FINNHUB non-JSON response. Body=" + normalize.Truncate(body, summaryLimit))
	}

	obj, ok := data.(map[string]any)
	if !ok {
		return f.failure(fmt.Sprintf("FINNHUB unexpected JSON type: %T", data))
	}

	calendar, ok := obj["ipoCalendar"]
	if !ok || calendar == nil {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return f.failure(fmt.Sprintf("FINNHUB missing 'ipoCalendar'. Keys=%v", keys))
	}

	list, ok := calendar.([]any)
	if !ok {
		return f.failure(fmt.Sprintf("FINNHUB ipoCalendar not a list: %T", calendar))
	}

	items := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		if rec, ok := entry.(map[string]any); ok {
			items = append(items, rec)
		}
	}
	return model.FetchResult{Source: f.Name(), Items: items}
}

func (f *FinnhubFetcher) failure(summary string) model.FetchResult {
	return model.FetchResult{Source: f.Name(), ErrorSummary: summary}
}

func transportSummary(err error) string {
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return "FINNHUB SSL error: " + normalize.Truncate(err.Error(), summaryLimit)
	}
	return "FINNHUB error: " + normalize.Truncate(err.Error(), summaryLimit)
}
