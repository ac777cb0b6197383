package domain

import (
	"fmt"
	"time"
)

// RateScope is the kind of budget a rate window entry counts against
type RateScope string

// rate scopes
const (
	ScopeGlobal   RateScope = "global"
	ScopeAccount  RateScope = "account"
	ScopePlatform RateScope = "platform"
)

// GlobalIdentifier is the identifier used for the single global window
const GlobalIdentifier = "global"

// RateWindow is one recorded action. Rows with WindowEnd before now are inert.
type RateWindow struct {
	ID          int64     `json:"id"`
	Scope       RateScope `json:"scope"`
	Identifier  string    `json:"identifier"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	MaxActions  int       `json:"max_actions"`
	ActionCount int       `json:"action_count"`
	ItemID      int64     `json:"item_id,omitempty"`
}

// WindowStats summarizes actions recorded for a scope within a trailing interval
type WindowStats struct {
	Count  int
	Oldest time.Time
	Newest time.Time
}

// PostScope identifies the budgets a single post consumes
type PostScope struct {
	Platform Platform
	Account  string
}

// CooldownIdentifier returns the identifier of the per-channel cooldown window
func (s PostScope) CooldownIdentifier() string {
	return fmt.Sprintf("%s:%s", s.Platform, s.Account)
}

// DenyReason explains why admission was denied
type DenyReason string

// deny reasons, in evaluation order
const (
	ReasonNone              DenyReason = ""
	ReasonKillSwitch        DenyReason = "kill_switch"
	ReasonQuietHours        DenyReason = "quiet_hours"
	ReasonGlobalRateLimit   DenyReason = "global_rate_limit"
	ReasonAccountDailyLimit DenyReason = "account_daily_limit"
	ReasonCooldownActive    DenyReason = "cooldown_active"
)

// Decision is the admission controller answer. RetryAfter is zero when unknown.
type Decision struct {
	Allowed    bool          `json:"allowed"`
	Reason     DenyReason    `json:"reason,omitempty"`
	RetryAfter time.Duration `json:"retry_after,omitempty"`
}

// Allow returns a positive decision
func Allow() Decision { return Decision{Allowed: true} }

// Deny returns a negative decision with reason and retry hint
func Deny(reason DenyReason, retryAfter time.Duration) Decision {
	if retryAfter < 0 {
		retryAfter = 0
	}
	return Decision{Reason: reason, RetryAfter: retryAfter}
}

// StopsCycle reports whether the denial applies to every item, not only the checked one
func (d Decision) StopsCycle() bool {
	switch d.Reason {
	case ReasonKillSwitch, ReasonQuietHours, ReasonGlobalRateLimit:
		return !d.Allowed
	default:
		return false
	}
}

// String returns a log-friendly representation
func (d Decision) String() string {
	if d.Allowed {
		return "allowed"
	}
	if d.RetryAfter > 0 {
		return fmt.Sprintf("denied: %s, retry after %v", d.Reason, d.RetryAfter.Round(time.Second))
	}
	return fmt.Sprintf("denied: %s", d.Reason)
}
