package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform(" Bluesky ")
	require.NoError(t, err)
	assert.Equal(t, PlatformBluesky, p)

	_, err = ParsePlatform("myspace")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "myspace")
}

func TestCanTransition(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusDraft, StatusApproved}:  true,
		{StatusDraft, StatusRejected}:  true,
		{StatusApproved, StatusPosted}: true,
		{StatusApproved, StatusFailed}: true,
	}
	for _, from := range Statuses {
		for _, to := range Statuses {
			assert.Equal(t, allowed[[2]Status{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.True(t, StatusPosted.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.False(t, StatusDraft.Terminal())
}

func TestContentItem_Due(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Hour)

	assert.True(t, (&ContentItem{Status: StatusApproved}).Due(now))
	assert.True(t, (&ContentItem{Status: StatusApproved, ScheduledAt: &earlier}).Due(now))
	assert.True(t, (&ContentItem{Status: StatusApproved, ScheduledAt: &now}).Due(now))
	assert.False(t, (&ContentItem{Status: StatusApproved, ScheduledAt: &later}).Due(now))
	assert.False(t, (&ContentItem{Status: StatusDraft}).Due(now))
}

func TestTransitionError(t *testing.T) {
	err := fmt.Errorf("approve: %w", &TransitionError{ItemID: 7, From: StatusApproved, To: StatusApproved})
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Contains(t, err.Error(), "item 7 is approved")
}

func TestDecision(t *testing.T) {
	assert.True(t, Allow().Allowed)
	assert.False(t, Allow().StopsCycle())
	assert.True(t, Deny(ReasonGlobalRateLimit, time.Minute).StopsCycle())
	assert.True(t, Deny(ReasonKillSwitch, 0).StopsCycle())
	assert.False(t, Deny(ReasonCooldownActive, time.Minute).StopsCycle())
	assert.False(t, Deny(ReasonAccountDailyLimit, time.Minute).StopsCycle())
	assert.Equal(t, time.Duration(0), Deny(ReasonCooldownActive, -time.Second).RetryAfter)
	assert.Equal(t, "denied: cooldown_active, retry after 1m0s", Deny(ReasonCooldownActive, time.Minute).String())
}

func TestRiskForScore(t *testing.T) {
	assert.Equal(t, RiskLow, RiskForScore(90))
	assert.Equal(t, RiskMedium, RiskForScore(89))
	assert.Equal(t, RiskMedium, RiskForScore(70))
	assert.Equal(t, RiskHigh, RiskForScore(50))
	assert.Equal(t, RiskCritical, RiskForScore(49))
}
