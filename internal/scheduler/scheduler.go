package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"ipoalert/internal/config"
)

// Scheduler fires the job once per calendar day at the configured wall-clock
// time, polling in short intervals rather than arming long timers.
type Scheduler struct {
	Hour     int
	Minute   int
	Loc      *time.Location
	Poll     time.Duration
	Cooldown time.Duration
	Job      func(ctx context.Context)

	schedule cron.Schedule
	lastRun  string
}

// New creates a Scheduler for the configured trigger time.
func New(cfg *config.Config, job func(ctx context.Context)) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(fmt.Sprintf("%d %d * * *", cfg.Schedule.Minute, cfg.Schedule.Hour))
	if err != nil {
		return nil, fmt.Errorf("parse schedule: %w", err)
	}
	return &Scheduler{
		Hour:     cfg.Schedule.Hour,
		Minute:   cfg.Schedule.Minute,
		Loc:      cfg.ScheduleLoc,
		Poll:     time.Duration(cfg.Schedule.PollSeconds) * time.Second,
		Cooldown: time.Duration(cfg.Schedule.CooldownSeconds) * time.Second,
		Job:      job,
		schedule: schedule,
	}, nil
}

// shouldFire reports whether now sits on the trigger minute with no run
// recorded for today.
func shouldFire(now time.Time, hour, minute int, lastRun string) bool {
	if now.Hour() != hour || now.Minute() != minute {
		return false
	}
	return lastRun != now.Format("2006-01-02")
}

// tick runs the job when the trigger condition holds and records the day.
func (s *Scheduler) tick(ctx context.Context, now time.Time) bool {
	if !shouldFire(now, s.Hour, s.Minute, s.lastRun) {
		return false
	}
	s.Job(ctx)
	s.lastRun = now.Format("2006-01-02")
	return true
}

// NextRun returns the next trigger instant after now.
func (s *Scheduler) NextRun(now time.Time) time.Time {
	return s.schedule.Next(now.In(s.Loc))
}

// RunNow executes the job immediately without touching the daily guard, so
// the scheduled run still happens.
func (s *Scheduler) RunNow(ctx context.Context) {
	s.Job(ctx)
}

// Run polls until the context is cancelled. After a fire it holds for the
// cooldown so one trigger minute cannot produce two runs.
func (s *Scheduler) Run(ctx context.Context) {
	slog.Info("scheduler started",
		"trigger", fmt.Sprintf("%02d:%02d", s.Hour, s.Minute),
		"timezone", s.Loc.String(),
		"next_run", s.NextRun(time.Now()).Format(time.RFC3339))

	for {
		wait := s.Poll
		if s.tick(ctx, time.Now().In(s.Loc)) {
			wait = s.Cooldown
			slog.Info("job finished", "next_run", s.NextRun(time.Now()).Format(time.RFC3339))
		}
		select {
		case <-ctx.Done():
			slog.Info("scheduler stopped")
			return
		case <-time.After(wait):
		}
	}
}
