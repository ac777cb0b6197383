package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/postguard/pkg/compliance"
	"github.com/umputun/postguard/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database   DatabaseConfig   `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Posting    PostingConfig    `yaml:"posting" json:"posting" jsonschema:"description=Posting worker configuration"`
	Admission  AdmissionConfig  `yaml:"admission" json:"admission" jsonschema:"description=Admission defaults seeded into settings at first start"`
	Compliance ComplianceConfig `yaml:"compliance" json:"compliance" jsonschema:"description=Compliance rules"`
	Schedule   ScheduleConfig   `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`
	LLM        LLMConfig        `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for reply generation"`
	Monitor    MonitorConfig    `yaml:"monitor" json:"monitor" jsonschema:"description=Keyword monitor configuration"`
	Platforms  PlatformsConfig  `yaml:"platforms" json:"platforms" jsonschema:"description=Platform credentials"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen          string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout         time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	AuthUser        string        `yaml:"auth_user" json:"auth_user" jsonschema:"default=admin,description=Basic auth user (reviewer name)"`
	AuthPassword    string        `yaml:"auth_password" json:"auth_password" jsonschema:"description=Basic auth password (empty disables auth)"`
	RequestsPerHour int           `yaml:"requests_per_hour" json:"requests_per_hour" jsonschema:"default=100,minimum=1,description=Per-IP API request limit"`
	LimiterSize     int           `yaml:"limiter_size" json:"limiter_size" jsonschema:"default=1000,minimum=1,description=Number of client IPs tracked by the limiter"`
	FeedInterval    time.Duration `yaml:"feed_interval" json:"feed_interval" jsonschema:"default=5s,description=Live feed push interval"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:postguard.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// PostingConfig holds posting worker settings
type PostingConfig struct {
	Interval            time.Duration `yaml:"interval" json:"interval" jsonschema:"default=60s,description=Posting cycle interval"`
	PublishTimeout      time.Duration `yaml:"publish_timeout" json:"publish_timeout" jsonschema:"default=30s,description=Timeout of a single publish call"`
	MaxAdmissionDenials int           `yaml:"max_admission_denials" json:"max_admission_denials" jsonschema:"default=0,minimum=0,description=Consecutive scoped denials before an item is failed (0 disables)"`
}

// AdmissionConfig holds admission defaults. They are written to settings on first start only.
type AdmissionConfig struct {
	KillSwitch       bool          `yaml:"kill_switch" json:"kill_switch" jsonschema:"default=false,description=Start with the kill switch on"`
	QuietHours       string        `yaml:"quiet_hours" json:"quiet_hours" jsonschema:"default=23-6,description=Quiet hours range start-end (0-0 disables)"`
	GlobalMaxPerHour int           `yaml:"global_max_per_hour" json:"global_max_per_hour" jsonschema:"default=10,minimum=1,description=Posts per hour across all platforms"`
	AccountMaxPerDay int           `yaml:"account_max_per_day" json:"account_max_per_day" jsonschema:"default=5,minimum=1,description=Posts per day per account"`
	Cooldown         time.Duration `yaml:"cooldown" json:"cooldown" jsonschema:"default=12h,description=Minimum gap between posts of one account on one platform"`
	Timezone         string        `yaml:"timezone" json:"timezone" jsonschema:"default=UTC,description=Time zone of quiet hours and daily tasks"`
}

// ComplianceConfig holds compliance rules
type ComplianceConfig struct {
	Blacklist           []string                `yaml:"blacklist" json:"blacklist" jsonschema:"description=Terms that block a draft"`
	AllowedDomains      []string                `yaml:"allowed_domains" json:"allowed_domains" jsonschema:"description=Domains allowed in links"`
	SelfPromoMarkers    []string                `yaml:"self_promo_markers" json:"self_promo_markers" jsonschema:"description=Terms treated as self promotion"`
	NoSelfPromoChannels []string                `yaml:"no_self_promo_channels" json:"no_self_promo_channels" jsonschema:"description=Channels where self promotion is not allowed"`
	Length              LengthConfig            `yaml:"length" json:"length" jsonschema:"description=Default word count limits"`
	PlatformLength      map[string]LengthConfig `yaml:"platform_length" json:"platform_length" jsonschema:"description=Word count limits per platform"`
	SimilarityThreshold float64                 `yaml:"similarity_threshold" json:"similarity_threshold" jsonschema:"default=0.8,minimum=0,maximum=1,description=Similarity to recent posts flagged as near duplicate"`
	SimilarityWindow    int                     `yaml:"similarity_window" json:"similarity_window" jsonschema:"default=10,minimum=1,description=Number of recent posts compared"`
}

// LengthConfig is a word count range
type LengthConfig struct {
	Min int `yaml:"min" json:"min" jsonschema:"minimum=0,description=Minimum words"`
	Max int `yaml:"max" json:"max" jsonschema:"minimum=0,description=Maximum words"`
}

// ScheduleConfig holds periodic task settings
type ScheduleConfig struct {
	MonitorInterval time.Duration `yaml:"monitor_interval" json:"monitor_interval" jsonschema:"default=15m,description=Keyword monitor interval"`
	HealthInterval  time.Duration `yaml:"health_interval" json:"health_interval" jsonschema:"default=1h,description=Health check interval"`
	CleanupAt       string        `yaml:"cleanup_at" json:"cleanup_at" jsonschema:"default=02:00,description=Daily cleanup time HH:MM"`
	ReportAt        string        `yaml:"report_at" json:"report_at" jsonschema:"default=09:00,description=Daily report time HH:MM"`
	AuditRetention  time.Duration `yaml:"audit_retention" json:"audit_retention" jsonschema:"default=720h,description=How long audit entries are kept"`
	SeenRetention   time.Duration `yaml:"seen_retention" json:"seen_retention" jsonschema:"default=720h,description=How long seen feed entries are kept"`
	MaxWorkers      int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,description=Maximum concurrent monitor workers"`
}

// LLMConfig holds LLM configuration for reply generation
type LLMConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"default=gpt-4o-mini,description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.7,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=300,description=Maximum tokens in response"`
	MaxWords     int           `yaml:"max_words" json:"max_words" jsonschema:"default=120,description=Generated replies are trimmed to this many words"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
}

// MonitorConfig holds keyword monitor settings
type MonitorConfig struct {
	Enabled        bool           `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable keyword monitor"`
	Extract        bool           `yaml:"extract" json:"extract" jsonschema:"default=false,description=Extract full page text of matched entries"`
	ExtractTimeout time.Duration  `yaml:"extract_timeout" json:"extract_timeout" jsonschema:"default=30s,description=Extraction timeout per page"`
	UserAgent      string         `yaml:"user_agent" json:"user_agent" jsonschema:"default=Postguard/1.0,description=User agent for HTTP requests"`
	Sources        []SourceConfig `yaml:"sources" json:"sources" jsonschema:"description=Feeds watched for keywords"`
}

// SourceConfig is a watched feed
type SourceConfig struct {
	URL      string   `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
	Platform string   `yaml:"platform" json:"platform" jsonschema:"required,enum=reddit,enum=bluesky,enum=twitter,enum=linkedin,description=Platform replies are drafted for"`
	Account  string   `yaml:"account" json:"account" jsonschema:"required,description=Account scope of drafted replies"`
	Channel  string   `yaml:"channel" json:"channel" jsonschema:"description=Channel such as a subreddit"`
	Flair    string   `yaml:"flair" json:"flair" jsonschema:"description=Flair of drafted replies"`
	Keywords []string `yaml:"keywords" json:"keywords" jsonschema:"required,description=Keywords matched case-insensitively"`

	NoSelfPromotion bool `yaml:"no_self_promotion" json:"no_self_promotion" jsonschema:"description=Source community forbids self-promotion"`
}

// PlatformsConfig holds publisher credentials
type PlatformsConfig struct {
	Bluesky BlueskyConfig `yaml:"bluesky" json:"bluesky" jsonschema:"description=Bluesky account"`
}

// BlueskyConfig holds Bluesky credentials, empty handle means simulated publishing
type BlueskyConfig struct {
	Host        string `yaml:"host" json:"host" jsonschema:"default=https://bsky.social,description=PDS host"`
	Handle      string `yaml:"handle" json:"handle" jsonschema:"description=Account handle"`
	AppPassword string `yaml:"app_password" json:"app_password" jsonschema:"description=App password (can use environment variable)"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// Default returns configuration with all defaults applied
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.AuthUser == "" {
		c.Server.AuthUser = "admin"
	}
	if c.Server.RequestsPerHour == 0 {
		c.Server.RequestsPerHour = 100
	}
	if c.Server.LimiterSize == 0 {
		c.Server.LimiterSize = 1000
	}
	if c.Server.FeedInterval == 0 {
		c.Server.FeedInterval = 5 * time.Second
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:postguard.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// posting
	if c.Posting.Interval == 0 {
		c.Posting.Interval = 60 * time.Second
	}
	if c.Posting.PublishTimeout == 0 {
		c.Posting.PublishTimeout = 30 * time.Second
	}

	// admission
	if c.Admission.QuietHours == "" {
		c.Admission.QuietHours = "23-6"
	}
	if c.Admission.GlobalMaxPerHour == 0 {
		c.Admission.GlobalMaxPerHour = 10
	}
	if c.Admission.AccountMaxPerDay == 0 {
		c.Admission.AccountMaxPerDay = 5
	}
	if c.Admission.Cooldown == 0 {
		c.Admission.Cooldown = 12 * time.Hour
	}
	if c.Admission.Timezone == "" {
		c.Admission.Timezone = "UTC"
	}

	// compliance
	if c.Compliance.SimilarityThreshold == 0 {
		c.Compliance.SimilarityThreshold = 0.8
	}
	if c.Compliance.SimilarityWindow == 0 {
		c.Compliance.SimilarityWindow = 10
	}

	// schedule
	if c.Schedule.MonitorInterval == 0 {
		c.Schedule.MonitorInterval = 15 * time.Minute
	}
	if c.Schedule.HealthInterval == 0 {
		c.Schedule.HealthInterval = time.Hour
	}
	if c.Schedule.CleanupAt == "" {
		c.Schedule.CleanupAt = "02:00"
	}
	if c.Schedule.ReportAt == "" {
		c.Schedule.ReportAt = "09:00"
	}
	if c.Schedule.AuditRetention == 0 {
		c.Schedule.AuditRetention = 30 * 24 * time.Hour
	}
	if c.Schedule.SeenRetention == 0 {
		c.Schedule.SeenRetention = 30 * 24 * time.Hour
	}
	if c.Schedule.MaxWorkers == 0 {
		c.Schedule.MaxWorkers = 5
	}

	// llm
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 300
	}
	if c.LLM.MaxWords == 0 {
		c.LLM.MaxWords = 120
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 30 * time.Second
	}

	// monitor
	if c.Monitor.ExtractTimeout == 0 {
		c.Monitor.ExtractTimeout = 30 * time.Second
	}
	if c.Monitor.UserAgent == "" {
		c.Monitor.UserAgent = "Postguard/1.0"
	}

	// platforms
	if c.Platforms.Bluesky.Host == "" {
		c.Platforms.Bluesky.Host = "https://bsky.social"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Server.RequestsPerHour < 1 {
		return fmt.Errorf("server.requests_per_hour must be at least 1")
	}
	if cfg.Posting.Interval < time.Second {
		return fmt.Errorf("posting.interval must be at least 1 second")
	}
	if cfg.Posting.MaxAdmissionDenials < 0 {
		return fmt.Errorf("posting.max_admission_denials must be non-negative")
	}

	if _, err := cfg.Admission.Settings(); err != nil {
		return fmt.Errorf("admission: %w", err)
	}
	if _, err := cfg.Admission.Location(); err != nil {
		return fmt.Errorf("admission.timezone: %w", err)
	}

	if cfg.Compliance.SimilarityThreshold < 0 || cfg.Compliance.SimilarityThreshold > 1 {
		return fmt.Errorf("compliance.similarity_threshold must be between 0 and 1")
	}
	if err := cfg.Compliance.Length.validate(); err != nil {
		return fmt.Errorf("compliance.length: %w", err)
	}
	for name, l := range cfg.Compliance.PlatformLength {
		if _, err := domain.ParsePlatform(name); err != nil {
			return fmt.Errorf("compliance.platform_length: %w", err)
		}
		if err := l.validate(); err != nil {
			return fmt.Errorf("compliance.platform_length.%s: %w", name, err)
		}
	}

	if _, _, err := ParseClock(cfg.Schedule.CleanupAt); err != nil {
		return fmt.Errorf("schedule.cleanup_at: %w", err)
	}
	if _, _, err := ParseClock(cfg.Schedule.ReportAt); err != nil {
		return fmt.Errorf("schedule.report_at: %w", err)
	}
	if cfg.Schedule.MaxWorkers < 1 {
		return fmt.Errorf("schedule.max_workers must be at least 1")
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}

	if cfg.Monitor.Enabled {
		if cfg.LLM.Endpoint == "" {
			return fmt.Errorf("llm.endpoint is required when monitor is enabled")
		}
		if len(cfg.Monitor.Sources) == 0 {
			return fmt.Errorf("monitor.sources must not be empty when monitor is enabled")
		}
		if _, err := cfg.Monitor.DomainSources(); err != nil {
			return err
		}
	}

	if cfg.Platforms.Bluesky.Handle != "" && cfg.Platforms.Bluesky.AppPassword == "" {
		return fmt.Errorf("platforms.bluesky.app_password is required with handle")
	}
	return nil
}

// Settings converts admission defaults to runtime settings
func (a AdmissionConfig) Settings() (domain.Settings, error) {
	qh, err := domain.ParseQuietHours(a.QuietHours)
	if err != nil {
		return domain.Settings{}, err
	}
	if a.GlobalMaxPerHour < 1 || a.AccountMaxPerDay < 1 {
		return domain.Settings{}, fmt.Errorf("post limits must be at least 1")
	}
	if a.Cooldown < 0 {
		return domain.Settings{}, fmt.Errorf("cooldown must be non-negative")
	}
	return domain.Settings{
		KillSwitch:               a.KillSwitch,
		QuietHours:               qh,
		GlobalMaxPostsPerHour:    a.GlobalMaxPerHour,
		MaxPostsPerAccountPerDay: a.AccountMaxPerDay,
		Cooldown:                 a.Cooldown,
	}, nil
}

// Location returns the configured time zone
func (a AdmissionConfig) Location() (*time.Location, error) {
	return time.LoadLocation(a.Timezone)
}

// Rules converts compliance configuration to evaluator rules
func (c ComplianceConfig) Rules() compliance.Rules {
	res := compliance.Rules{
		Blacklist:           c.Blacklist,
		AllowedDomains:      c.AllowedDomains,
		SelfPromoMarkers:    c.SelfPromoMarkers,
		NoSelfPromoChannels: c.NoSelfPromoChannels,
		DefaultLimits:       compliance.LengthLimits{Min: c.Length.Min, Max: c.Length.Max},
	}
	if len(c.PlatformLength) > 0 {
		res.PlatformLimits = make(map[domain.Platform]compliance.LengthLimits, len(c.PlatformLength))
		for name, l := range c.PlatformLength {
			res.PlatformLimits[domain.Platform(strings.ToLower(name))] = compliance.LengthLimits{Min: l.Min, Max: l.Max}
		}
	}
	return res
}

func (l LengthConfig) validate() error {
	if l.Min < 0 || l.Max < 0 {
		return fmt.Errorf("limits must be non-negative")
	}
	if l.Max > 0 && l.Min > l.Max {
		return fmt.Errorf("min %d is greater than max %d", l.Min, l.Max)
	}
	return nil
}

// DomainSources converts configured sources to monitor sources
func (m MonitorConfig) DomainSources() ([]domain.Source, error) {
	res := make([]domain.Source, 0, len(m.Sources))
	for i, s := range m.Sources {
		if s.URL == "" {
			return nil, fmt.Errorf("monitor.sources[%d].url is required", i)
		}
		if s.Account == "" {
			return nil, fmt.Errorf("monitor.sources[%d].account is required", i)
		}
		if len(s.Keywords) == 0 {
			return nil, fmt.Errorf("monitor.sources[%d].keywords must not be empty", i)
		}
		platform, err := domain.ParsePlatform(s.Platform)
		if err != nil {
			return nil, fmt.Errorf("monitor.sources[%d]: %w", i, err)
		}
		res = append(res, domain.Source{URL: s.URL, Platform: platform, Account: s.Account,
			Channel: s.Channel, Flair: s.Flair, NoSelfPromotion: s.NoSelfPromotion, Keywords: s.Keywords})
	}
	return res, nil
}

// ParseClock parses "HH:MM" daily time
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}
