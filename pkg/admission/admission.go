// Package admission decides whether a post may be published right now. It combines the kill switch,
// quiet hours and sliding rate windows (global per hour, per account per day, per channel cooldown).
// Settings are read from the store on every call so an admin toggle applies to the very next check.
package admission

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/postguard/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

const (
	globalWindow  = time.Hour
	accountWindow = 24 * time.Hour
)

// Store provides settings and rate window access
type Store interface {
	LoadSettings(ctx context.Context) (domain.Settings, error)
	WindowStats(ctx context.Context, scope domain.RateScope, identifier string, since time.Time) (domain.WindowStats, error)
	RecordAction(ctx context.Context, windows []domain.RateWindow) error
}

// Params defines controller parameters
type Params struct {
	Location *time.Location // quiet hours are evaluated in this zone, UTC if nil
}

// Controller is the admission controller
type Controller struct {
	store Store
	loc   *time.Location
}

// Budget describes the current global posting budget
type Budget struct {
	PostedLastHour   int
	HourlyRemaining  int
	KillSwitch       bool
	QuietHoursActive bool
}

// New makes admission controller
func New(store Store, params Params) *Controller {
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Controller{store: store, loc: loc}
}

// MayAdmit checks whether a post for the given scope is allowed at now.
// Checks short-circuit in order: kill switch, quiet hours, global window, account window, cooldown.
func (c *Controller) MayAdmit(ctx context.Context, scope domain.PostScope, now time.Time) (domain.Decision, error) {
	settings, err := c.store.LoadSettings(ctx)
	if err != nil {
		return domain.Decision{}, fmt.Errorf("load settings: %w", err)
	}

	if d := c.gate(settings, now); !d.Allowed {
		return d, nil
	}

	global, err := c.store.WindowStats(ctx, domain.ScopeGlobal, domain.GlobalIdentifier, now.Add(-globalWindow))
	if err != nil {
		return domain.Decision{}, fmt.Errorf("global window: %w", err)
	}
	if global.Count >= settings.GlobalMaxPostsPerHour {
		return domain.Deny(domain.ReasonGlobalRateLimit, expiresIn(global.Oldest, globalWindow, now)), nil
	}

	account, err := c.store.WindowStats(ctx, domain.ScopeAccount, scope.Account, now.Add(-accountWindow))
	if err != nil {
		return domain.Decision{}, fmt.Errorf("account window for %s: %w", scope.Account, err)
	}
	if account.Count >= settings.MaxPostsPerAccountPerDay {
		return domain.Deny(domain.ReasonAccountDailyLimit, expiresIn(account.Oldest, accountWindow, now)), nil
	}

	if settings.Cooldown > 0 {
		cooldown, err := c.store.WindowStats(ctx, domain.ScopePlatform, scope.CooldownIdentifier(), now.Add(-settings.Cooldown))
		if err != nil {
			return domain.Decision{}, fmt.Errorf("cooldown window for %s: %w", scope.CooldownIdentifier(), err)
		}
		if cooldown.Count > 0 {
			return domain.Deny(domain.ReasonCooldownActive, expiresIn(cooldown.Newest, settings.Cooldown, now)), nil
		}
	}

	return domain.Allow(), nil
}

// Gate checks only the conditions that apply to every item: kill switch and quiet hours
func (c *Controller) Gate(ctx context.Context, now time.Time) (domain.Decision, error) {
	settings, err := c.store.LoadSettings(ctx)
	if err != nil {
		return domain.Decision{}, fmt.Errorf("load settings: %w", err)
	}
	return c.gate(settings, now), nil
}

// RecordAction consumes one unit of every budget the scope belongs to.
// Called only after a successful publish, all three entries are written in one transaction.
func (c *Controller) RecordAction(ctx context.Context, scope domain.PostScope, itemID int64, now time.Time) error {
	settings, err := c.store.LoadSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	windows := []domain.RateWindow{
		{Scope: domain.ScopeGlobal, Identifier: domain.GlobalIdentifier, WindowStart: now,
			WindowEnd: now.Add(globalWindow), MaxActions: settings.GlobalMaxPostsPerHour, ActionCount: 1, ItemID: itemID},
		{Scope: domain.ScopeAccount, Identifier: scope.Account, WindowStart: now,
			WindowEnd: now.Add(accountWindow), MaxActions: settings.MaxPostsPerAccountPerDay, ActionCount: 1, ItemID: itemID},
		{Scope: domain.ScopePlatform, Identifier: scope.CooldownIdentifier(), WindowStart: now,
			WindowEnd: now.Add(settings.Cooldown), MaxActions: 1, ActionCount: 1, ItemID: itemID},
	}
	if err := c.store.RecordAction(ctx, windows); err != nil {
		return fmt.Errorf("record action for item %d: %w", itemID, err)
	}
	lgr.Printf("[DEBUG] recorded action for item %d, account %s, cooldown %s", itemID, scope.Account, scope.CooldownIdentifier())
	return nil
}

// Budget reports global budget usage at now
func (c *Controller) Budget(ctx context.Context, now time.Time) (Budget, error) {
	settings, err := c.store.LoadSettings(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("load settings: %w", err)
	}
	global, err := c.store.WindowStats(ctx, domain.ScopeGlobal, domain.GlobalIdentifier, now.Add(-globalWindow))
	if err != nil {
		return Budget{}, fmt.Errorf("global window: %w", err)
	}
	return Budget{
		PostedLastHour:   global.Count,
		HourlyRemaining:  max(0, settings.GlobalMaxPostsPerHour-global.Count),
		KillSwitch:       settings.KillSwitch,
		QuietHoursActive: settings.QuietHours.Contains(now.In(c.loc).Hour()),
	}, nil
}

func (c *Controller) gate(settings domain.Settings, now time.Time) domain.Decision {
	if settings.KillSwitch {
		return domain.Deny(domain.ReasonKillSwitch, 0)
	}
	local := now.In(c.loc)
	if settings.QuietHours.Contains(local.Hour()) {
		return domain.Deny(domain.ReasonQuietHours, settings.QuietHours.Until(local))
	}
	return domain.Allow()
}

// expiresIn returns time left until an entry started at ts leaves a window of size w
func expiresIn(ts time.Time, w time.Duration, now time.Time) time.Duration {
	if ts.IsZero() {
		return 0
	}
	return ts.Add(w).Sub(now)
}
