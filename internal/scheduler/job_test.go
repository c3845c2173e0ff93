package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ipoalert/internal/collector"
	"ipoalert/internal/config"
	"ipoalert/internal/model"
)

type fakeMailer struct {
	calls    int
	subjects []string
	bodies   []string
	err      error
}

func (f *fakeMailer) Send(_ context.Context, subject, body string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, body)
	return nil
}

type panicFetcher struct{}

func (panicFetcher) Name() string { return "panic" }

func (panicFetcher) FetchRange(context.Context, string, string) model.FetchResult {
	panic("fetcher exploded")
}

func testJobConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Threshold = 200_000_000

	var err error
	if cfg.ScheduleLoc, err = time.LoadLocation("Asia/Dubai"); err != nil {
		t.Fatalf("load location: %v", err)
	}
	if cfg.MarketLoc, err = time.LoadLocation("America/New_York"); err != nil {
		t.Fatalf("load location: %v", err)
	}
	return cfg
}

func marketToday(cfg *config.Config) string {
	return time.Now().In(cfg.MarketLoc).Format("2006-01-02")
}

func TestJobRun_QualifyingIPO(t *testing.T) {
	cfg := testJobConfig(t)
	today := marketToday(cfg)

	fetcher := &collector.MockFetcher{Items: []map[string]any{
		{"date": today, "symbol": "acme", "name": "Acme Corp", "totalSharesValue": 300_000_000.0},
		{"date": today, "symbol": "tiny", "name": "Tiny Inc", "totalSharesValue": 50_000_000.0},
	}}
	mailer := &fakeMailer{}

	NewJob(cfg, fetcher, mailer).Run(context.Background())

	if mailer.calls != 1 {
		t.Fatalf("mailer calls = %d, want 1", mailer.calls)
	}
	wantSubject := "US IPOs Today > $200M — " + today
	if mailer.subjects[0] != wantSubject {
		t.Errorf("subject = %q, want %q", mailer.subjects[0], wantSubject)
	}
	body := mailer.bodies[0]
	if !strings.Contains(body, "ACME") {
		t.Error("body missing qualifying ticker")
	}
	if strings.Contains(body, "TINY") {
		t.Error("body contains sub-threshold ticker")
	}
	if !strings.Contains(body, "IPO records returned by API:</b> 2") {
		t.Error("body missing record count")
	}
}

func TestJobRun_FetchFailureStillMails(t *testing.T) {
	cfg := testJobConfig(t)
	fetcher := &collector.MockFetcher{Summary: "FINNHUB HTTP 500. Body=boom"}
	mailer := &fakeMailer{}

	NewJob(cfg, fetcher, mailer).Run(context.Background())

	if mailer.calls != 1 {
		t.Fatalf("mailer calls = %d, want 1", mailer.calls)
	}
	wantSubject := "No US IPOs Today > $200M — " + marketToday(cfg)
	if mailer.subjects[0] != wantSubject {
		t.Errorf("subject = %q, want %q", mailer.subjects[0], wantSubject)
	}
	if !strings.Contains(mailer.bodies[0], "FINNHUB HTTP 500. Body=boom") {
		t.Error("body missing fetch error summary")
	}
}

func TestJobRun_YesterdayIgnored(t *testing.T) {
	cfg := testJobConfig(t)
	yesterday := time.Now().In(cfg.MarketLoc).AddDate(0, 0, -1).Format("2006-01-02")

	fetcher := &collector.MockFetcher{Items: []map[string]any{
		{"date": yesterday, "symbol": "OLD", "name": "Old News", "totalSharesValue": 500_000_000.0},
	}}
	mailer := &fakeMailer{}

	NewJob(cfg, fetcher, mailer).Run(context.Background())

	if mailer.calls != 1 {
		t.Fatalf("mailer calls = %d, want 1", mailer.calls)
	}
	if !strings.HasPrefix(mailer.subjects[0], "No US IPOs Today") {
		t.Errorf("subject = %q, want no-match subject", mailer.subjects[0])
	}
}

func TestJobRun_SendFailureDoesNotPropagate(t *testing.T) {
	cfg := testJobConfig(t)
	fetcher := &collector.MockFetcher{}
	mailer := &fakeMailer{err: errors.New("smtp down")}

	NewJob(cfg, fetcher, mailer).Run(context.Background())

	if mailer.calls != 1 {
		t.Errorf("mailer calls = %d, want 1", mailer.calls)
	}
}

func TestJobRun_RecoversFromPanic(t *testing.T) {
	cfg := testJobConfig(t)
	mailer := &fakeMailer{}

	NewJob(cfg, panicFetcher{}, mailer).Run(context.Background())

	if mailer.calls != 0 {
		t.Errorf("mailer calls = %d, want 0 after panic", mailer.calls)
	}
}
