package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/postguard/pkg/config"
	"github.com/umputun/postguard/pkg/content"
	"github.com/umputun/postguard/pkg/domain"
	"github.com/umputun/postguard/pkg/feed"
	"github.com/umputun/postguard/pkg/llm"
	"github.com/umputun/postguard/pkg/monitor"
	"github.com/umputun/postguard/pkg/scheduler"
)

// task names
const (
	taskPosting = "posting"
	taskMonitor = "monitor"
	taskHealth  = "health"
	taskCleanup = "cleanup"
	taskReport  = "report"
)

// tasks makes scheduled tasks from configuration
func (a *app) tasks() ([]scheduler.Task, error) {
	loc, err := a.cfg.Admission.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}
	cleanupHour, cleanupMin, err := config.ParseClock(a.cfg.Schedule.CleanupAt)
	if err != nil {
		return nil, fmt.Errorf("invalid cleanup time: %w", err)
	}
	reportHour, reportMin, err := config.ParseClock(a.cfg.Schedule.ReportAt)
	if err != nil {
		return nil, fmt.Errorf("invalid report time: %w", err)
	}

	res := []scheduler.Task{
		{Name: taskPosting, Trigger: scheduler.Every(a.cfg.Posting.Interval), Run: a.postingTask},
		{Name: taskHealth, Trigger: scheduler.Every(a.cfg.Schedule.HealthInterval), Run: a.healthTask, RunOnStart: true},
		{Name: taskCleanup, Trigger: scheduler.Daily(cleanupHour, cleanupMin, loc), Run: a.cleanupTask},
		{Name: taskReport, Trigger: scheduler.Daily(reportHour, reportMin, loc), Run: a.reportTask},
	}

	if a.cfg.Monitor.Enabled {
		mon, err := a.makeMonitor()
		if err != nil {
			return nil, err
		}
		res = append(res, scheduler.Task{Name: taskMonitor, Trigger: scheduler.Every(a.cfg.Schedule.MonitorInterval),
			RunOnStart: true, Run: func(ctx context.Context) error {
				_, err := mon.Run(ctx)
				return err
			}})
	}
	return res, nil
}

// makeMonitor wires the keyword monitor with feed parser, page extractor and reply generator
func (a *app) makeMonitor() (*monitor.Monitor, error) {
	sources, err := a.cfg.Monitor.DomainSources()
	if err != nil {
		return nil, fmt.Errorf("invalid monitor sources: %w", err)
	}
	params := monitor.Params{
		Sources:    sources,
		Parser:     feed.NewParser(a.cfg.Monitor.ExtractTimeout, a.cfg.Monitor.UserAgent),
		Generator:  llm.NewGenerator(a.cfg.LLM),
		Seen:       a.repos.Seen,
		Queue:      a.queue,
		MaxWorkers: a.cfg.Schedule.MaxWorkers,
	}
	if a.cfg.Monitor.Extract {
		params.Extractor = content.NewHTTPExtractor(content.Params{
			Timeout: a.cfg.Monitor.ExtractTimeout, UserAgent: a.cfg.Monitor.UserAgent})
	}
	lgr.Printf("[INFO] keyword monitor enabled for %d sources, model %s", len(sources), a.cfg.LLM.Model)
	return monitor.New(params), nil
}

// postingTask runs a posting cycle
func (a *app) postingTask(ctx context.Context) error {
	report, err := a.worker.RunCycle(ctx)
	if err != nil {
		return fmt.Errorf("posting cycle: %w", err)
	}
	if report.Due > 0 {
		lgr.Printf("[INFO] posting cycle: %s", report)
	}
	return nil
}

// healthTask checks database and publishers, it also refreshes budget gauges
func (a *app) healthTask(ctx context.Context) error {
	var errs []error
	if err := a.repos.Ping(ctx); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}
	if err := a.publisher.Check(ctx); err != nil {
		errs = append(errs, fmt.Errorf("publisher: %w", err))
	}
	if _, err := a.queue.Stats(ctx); err != nil {
		errs = append(errs, fmt.Errorf("stats: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		a.audit(ctx, domain.AuditEntry{Level: "ERROR", Message: "health check failed", Meta: map[string]any{"error": err.Error()}})
		return err
	}
	lgr.Printf("[DEBUG] health check passed, platforms %v", a.publisher.Platforms())
	return nil
}

// cleanupTask drops expired rate windows, old audit entries and old seen feed entries
func (a *app) cleanupTask(ctx context.Context) error {
	now := time.Now()
	settings, err := a.repos.Setting.LoadSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	windows, err := a.repos.Window.PurgeExpired(ctx, now, settings.Cooldown)
	if err != nil {
		return fmt.Errorf("purge rate windows: %w", err)
	}
	audit, err := a.repos.Audit.Purge(ctx, now.Add(-a.cfg.Schedule.AuditRetention))
	if err != nil {
		return fmt.Errorf("purge audit log: %w", err)
	}
	seen, err := a.repos.Seen.Purge(ctx, now.Add(-a.cfg.Schedule.SeenRetention))
	if err != nil {
		return fmt.Errorf("purge seen entries: %w", err)
	}
	lgr.Printf("[INFO] cleanup removed %d rate windows, %d audit entries, %d seen entries", windows, audit, seen)
	return nil
}

// reportTask writes the daily summary to the log and the audit log
func (a *app) reportTask(ctx context.Context) error {
	stats, err := a.queue.Stats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}
	lgr.Printf("[INFO] daily report: drafts %d, approved %d, posted %d, failed %d, rejected %d, hourly budget left %d",
		stats.StatusCounts[domain.StatusDraft], stats.StatusCounts[domain.StatusApproved],
		stats.StatusCounts[domain.StatusPosted], stats.StatusCounts[domain.StatusFailed],
		stats.StatusCounts[domain.StatusRejected], stats.HourlyRemaining)

	windows, err := a.repos.Window.ActiveWindows(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("get active rate windows: %w", err)
	}

	meta := map[string]any{"hourly_remaining": stats.HourlyRemaining, "kill_switch": stats.KillSwitch,
		"active_windows": len(windows)}
	for _, st := range domain.Statuses {
		meta[string(st)] = stats.StatusCounts[st]
	}
	for p, n := range stats.PlatformCounts {
		meta["platform_"+string(p)] = n
	}
	a.audit(ctx, domain.AuditEntry{Level: "INFO", Message: "daily report", Meta: meta})
	return nil
}

func (a *app) audit(ctx context.Context, entry domain.AuditEntry) {
	if err := a.repos.Audit.Log(ctx, entry); err != nil {
		lgr.Printf("[WARN] failed to write audit entry %q: %v", entry.Message, err)
	}
}
