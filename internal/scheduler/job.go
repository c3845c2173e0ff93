package scheduler

import (
	"context"
	"log/slog"
	"time"

	"ipoalert/internal/collector"
	"ipoalert/internal/config"
	"ipoalert/internal/normalize"
	"ipoalert/internal/notifier"
	"ipoalert/internal/screener"
)

// Job runs one complete monitoring pass: fetch, screen, render, send.
type Job struct {
	Cfg     *config.Config
	Fetcher collector.Fetcher
	Mailer  notifier.Mailer
}

// NewJob creates a Job.
func NewJob(cfg *config.Config, fetcher collector.Fetcher, mailer notifier.Mailer) *Job {
	return &Job{Cfg: cfg, Fetcher: fetcher, Mailer: mailer}
}

// Run executes one pass. It never returns an error and never panics out:
// fetch failures are folded into the report, send failures are logged.
func (j *Job) Run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("job panicked", "panic", r)
		}
	}()

	now := time.Now().In(j.Cfg.ScheduleLoc)
	slog.Info("running IPO monitor", "run_time", now.Format("2006-01-02 15:04:05 MST"))

	// The US market day, regardless of where this process runs.
	marketDate := normalize.CivilDate(time.Now(), j.Cfg.MarketLoc)

	var errs []string
	res := j.Fetcher.FetchRange(ctx, marketDate, marketDate)
	if res.ErrorSummary != "" {
		slog.Warn("fetch failed", "source", res.Source, "summary", res.ErrorSummary)
		errs = append(errs, res.ErrorSummary)
	}

	matches := screener.Screen(res.Items, marketDate, j.Cfg.Threshold)
	subject, body := notifier.Render(marketDate, matches, errs, len(res.Items), now)

	if err := j.Mailer.Send(ctx, subject, body); err != nil {
		slog.Error("send email", "error", err)
		return
	}
	slog.Info("email sent", "subject", subject, "matches", len(matches), "records", len(res.Items))
}
