package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/postguard/pkg/admission"
	"github.com/umputun/postguard/pkg/compliance"
	"github.com/umputun/postguard/pkg/config"
	"github.com/umputun/postguard/pkg/domain"
	"github.com/umputun/postguard/pkg/metrics"
	"github.com/umputun/postguard/pkg/poster"
	"github.com/umputun/postguard/pkg/publisher"
	"github.com/umputun/postguard/pkg/queue"
	"github.com/umputun/postguard/pkg/repository"
	"github.com/umputun/postguard/pkg/scheduler"
	"github.com/umputun/postguard/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"postguard.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DryRun bool   `long:"dry-run" env:"DRY_RUN" description:"simulate publishing on all platforms"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)
	lgr.Printf("[INFO] starting postguard version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Print("[INFO] shutdown complete")
}

// app holds wired components
type app struct {
	cfg       *config.Config
	repos     *repository.Repositories
	metrics   *metrics.Metrics
	admission *admission.Controller
	queue     *queue.Service
	publisher *publisher.Registry
	worker    *poster.Worker
	scheduler *scheduler.Scheduler
	server    *server.Server
}

// admissionStore joins settings and rate windows for the admission controller
type admissionStore struct {
	*repository.SettingRepository
	*repository.RateWindowRepository
}

// itemStore joins items and their reviews for the queue
type itemStore struct {
	*repository.ItemRepository
	*repository.ReviewRepository
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	setupLog(opts.Debug, opts.NoColor, cfg.Server.AuthPassword, cfg.LLM.APIKey, cfg.Platforms.Bluesky.AppPassword)

	a, err := newApp(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	a.scheduler.Start(ctx)
	defer a.scheduler.Stop()

	if err := a.server.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// newApp opens the database, seeds settings and wires all components
func newApp(ctx context.Context, cfg *config.Config, opts Opts) (*app, error) {
	settings, err := cfg.Admission.Settings()
	if err != nil {
		return nil, fmt.Errorf("invalid admission config: %w", err)
	}
	loc, err := cfg.Admission.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := repos.Setting.SeedDefaults(ctx, settings); err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("failed to seed settings: %w", err)
	}

	a := &app{cfg: cfg, repos: repos, metrics: metrics.New()}
	a.admission = admission.New(admissionStore{repos.Setting, repos.Window}, admission.Params{Location: loc})
	a.queue = queue.New(queue.Params{
		Items:               itemStore{repos.Item, repos.Review},
		Settings:            repos.Setting,
		Audit:               repos.Audit,
		Budget:              a.admission,
		Evaluator:           compliance.New(cfg.Compliance.Rules()),
		Metrics:             a.metrics,
		SimilarityThreshold: cfg.Compliance.SimilarityThreshold,
		SimilarityWindow:    cfg.Compliance.SimilarityWindow,
	})
	a.publisher = makePublisher(cfg, opts.DryRun)
	a.worker = poster.New(poster.Params{
		Queue:               a.queue,
		Admission:           a.admission,
		Publisher:           a.publisher,
		Audit:               repos.Audit,
		Metrics:             a.metrics,
		PublishTimeout:      cfg.Posting.PublishTimeout,
		MaxAdmissionDenials: cfg.Posting.MaxAdmissionDenials,
	})

	a.scheduler = scheduler.New(scheduler.Params{Metrics: a.metrics})
	tasks, err := a.tasks()
	if err != nil {
		_ = repos.Close()
		return nil, err
	}
	for _, t := range tasks {
		if err := a.scheduler.Add(t); err != nil {
			_ = repos.Close()
			return nil, fmt.Errorf("failed to add task: %w", err)
		}
	}

	a.server, err = server.New(server.Params{
		Config:  cfg.Server,
		Queue:   a.queue,
		Tasks:   a.scheduler,
		Metrics: a.metrics,
		Version: revision,
		Debug:   opts.Debug,
	})
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("failed to make server: %w", err)
	}
	return a, nil
}

// makePublisher registers a real bluesky adapter when credentials are set, every other platform is simulated
func makePublisher(cfg *config.Config, dryRun bool) *publisher.Registry {
	adapters := make([]publisher.Adapter, 0, len(domain.Platforms)+1)
	for _, p := range domain.Platforms {
		adapters = append(adapters, publisher.NewSimulated(p))
	}
	if dryRun {
		lgr.Printf("[INFO] dry run, publishing is simulated on all platforms")
		return publisher.NewRegistry(adapters...)
	}
	if bs := cfg.Platforms.Bluesky; bs.Handle != "" {
		lgr.Printf("[INFO] publishing to bluesky as %s via %s", bs.Handle, bs.Host)
		adapters = append(adapters, publisher.NewBluesky(publisher.BlueskyParams{
			Host: bs.Host, Handle: bs.Handle, AppPassword: bs.AppPassword, Timeout: cfg.Posting.PublishTimeout,
		}))
	}
	return publisher.NewRegistry(adapters...)
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
