package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// setting keys stored in the settings table
const (
	SettingKillSwitch               = "kill_switch"
	SettingQuietHours               = "quiet_hours"
	SettingGlobalMaxPostsPerHour    = "global_max_posts_per_hour"
	SettingMaxPostsPerAccountPerDay = "max_posts_per_account_per_day"
	SettingCooldown                 = "cooldown"
)

// QuietHours is a daily hour range [Start, End) during which posting is suppressed.
// The range wraps past midnight when Start > End. Equal bounds disable it.
type QuietHours struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ParseQuietHours parses "23-6" style ranges, empty string disables quiet hours
func ParseQuietHours(s string) (QuietHours, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return QuietHours{}, nil
	}
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return QuietHours{}, &ValidationError{Field: "quiet_hours", Message: fmt.Sprintf("invalid range %q", s)}
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return QuietHours{}, &ValidationError{Field: "quiet_hours", Message: fmt.Sprintf("invalid start hour %q", parts[0])}
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return QuietHours{}, &ValidationError{Field: "quiet_hours", Message: fmt.Sprintf("invalid end hour %q", parts[1])}
	}
	qh := QuietHours{Start: start, End: end}
	return qh, qh.Validate()
}

// Validate checks hour bounds
func (q QuietHours) Validate() error {
	if q.Start < 0 || q.Start > 23 || q.End < 0 || q.End > 23 {
		return &ValidationError{Field: "quiet_hours", Message: fmt.Sprintf("hours must be within 0-23, got %d-%d", q.Start, q.End)}
	}
	return nil
}

// Enabled reports whether the range covers any hour
func (q QuietHours) Enabled() bool { return q.Start != q.End }

// Contains reports whether the hour of day falls inside the range
func (q QuietHours) Contains(hour int) bool {
	if !q.Enabled() {
		return false
	}
	if q.Start < q.End {
		return hour >= q.Start && hour < q.End
	}
	return hour >= q.Start || hour < q.End
}

// Until returns time left until the range ends, zero if t is outside of it
func (q QuietHours) Until(t time.Time) time.Duration {
	if !q.Contains(t.Hour()) {
		return 0
	}
	end := time.Date(t.Year(), t.Month(), t.Day(), q.End, 0, 0, 0, t.Location())
	if !end.After(t) {
		end = end.AddDate(0, 0, 1)
	}
	return end.Sub(t)
}

// String formats the range the same way ParseQuietHours reads it
func (q QuietHours) String() string {
	if !q.Enabled() {
		return ""
	}
	return fmt.Sprintf("%d-%d", q.Start, q.End)
}

// Settings are process-wide admission settings, read fresh on every check
type Settings struct {
	KillSwitch               bool          `json:"kill_switch"`
	QuietHours               QuietHours    `json:"quiet_hours"`
	GlobalMaxPostsPerHour    int           `json:"global_max_posts_per_hour"`
	MaxPostsPerAccountPerDay int           `json:"max_posts_per_account_per_day"`
	Cooldown                 time.Duration `json:"cooldown"`
}

// SettingsUpdate lists the fields an admin may change, nil means unchanged
type SettingsUpdate struct {
	KillSwitch               *bool    `json:"kill_switch,omitempty"`
	QuietHours               *string  `json:"quiet_hours,omitempty"`
	GlobalMaxPostsPerHour    *int     `json:"global_max_posts_per_hour,omitempty"`
	MaxPostsPerAccountPerDay *int     `json:"max_posts_per_account_per_day,omitempty"`
	CooldownHours            *float64 `json:"cooldown_hours,omitempty"`
}

// Empty reports whether the update changes nothing
func (u SettingsUpdate) Empty() bool {
	return u.KillSwitch == nil && u.QuietHours == nil && u.GlobalMaxPostsPerHour == nil &&
		u.MaxPostsPerAccountPerDay == nil && u.CooldownHours == nil
}

// Apply returns a copy of s with the update applied, validating each changed field
func (u SettingsUpdate) Apply(s Settings) (Settings, error) {
	if u.KillSwitch != nil {
		s.KillSwitch = *u.KillSwitch
	}
	if u.QuietHours != nil {
		qh, err := ParseQuietHours(*u.QuietHours)
		if err != nil {
			return s, err
		}
		s.QuietHours = qh
	}
	if u.GlobalMaxPostsPerHour != nil {
		if *u.GlobalMaxPostsPerHour < 0 {
			return s, &ValidationError{Field: SettingGlobalMaxPostsPerHour, Message: "must be non-negative"}
		}
		s.GlobalMaxPostsPerHour = *u.GlobalMaxPostsPerHour
	}
	if u.MaxPostsPerAccountPerDay != nil {
		if *u.MaxPostsPerAccountPerDay < 0 {
			return s, &ValidationError{Field: SettingMaxPostsPerAccountPerDay, Message: "must be non-negative"}
		}
		s.MaxPostsPerAccountPerDay = *u.MaxPostsPerAccountPerDay
	}
	if u.CooldownHours != nil {
		if *u.CooldownHours < 0 {
			return s, &ValidationError{Field: SettingCooldown, Message: "must be non-negative"}
		}
		s.Cooldown = time.Duration(*u.CooldownHours * float64(time.Hour))
	}
	return s, nil
}

// Stats is the dashboard summary of the queue and budgets
type Stats struct {
	StatusCounts     map[Status]int   `json:"status_counts"`
	PlatformCounts   map[Platform]int `json:"platform_counts"`
	PostedLastHour   int              `json:"posted_last_hour"`
	HourlyRemaining  int              `json:"hourly_remaining"`
	KillSwitch       bool             `json:"kill_switch"`
	QuietHoursActive bool             `json:"quiet_hours_active"`
}

// Snapshot is the live feed payload pushed to dashboards
type Snapshot struct {
	Stats        Stats         `json:"stats"`
	RecentDrafts []ContentItem `json:"recent_drafts"`
	GeneratedAt  time.Time     `json:"generated_at"`
}

// AuditEntry is a business event written to the audit log
type AuditEntry struct {
	ID        int64          `json:"id"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Meta      map[string]any `json:"meta,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
