package admission

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/postguard/pkg/admission/mocks"
	"github.com/umputun/postguard/pkg/domain"
)

// memStore is an in-memory Store
type memStore struct {
	mu       sync.Mutex
	settings domain.Settings
	windows  []domain.RateWindow
}

func newMemStore(s domain.Settings) *memStore { return &memStore{settings: s} }

func (m *memStore) LoadSettings(context.Context) (domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings, nil
}

func (m *memStore) WindowStats(_ context.Context, scope domain.RateScope, identifier string, since time.Time) (domain.WindowStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res domain.WindowStats
	for _, w := range m.windows {
		if w.Scope != scope || w.Identifier != identifier || !w.WindowStart.After(since) {
			continue
		}
		res.Count += w.ActionCount
		if res.Oldest.IsZero() || w.WindowStart.Before(res.Oldest) {
			res.Oldest = w.WindowStart
		}
		if w.WindowStart.After(res.Newest) {
			res.Newest = w.WindowStart
		}
	}
	return res, nil
}

func (m *memStore) RecordAction(_ context.Context, windows []domain.RateWindow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows = append(m.windows, windows...)
	return nil
}

func (m *memStore) setKillSwitch(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.KillSwitch = on
}

func defaultSettings() domain.Settings {
	return domain.Settings{
		QuietHours:               domain.QuietHours{Start: 23, End: 6},
		GlobalMaxPostsPerHour:    10,
		MaxPostsPerAccountPerDay: 5,
		Cooldown:                 12 * time.Hour,
	}
}

var noon = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestController_KillSwitch(t *testing.T) {
	store := newMemStore(defaultSettings())
	c := New(store, Params{})
	ctx := context.Background()
	scope := domain.PostScope{Platform: domain.PlatformReddit, Account: "a"}

	d, err := c.MayAdmit(ctx, scope, noon)
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	store.setKillSwitch(true)
	for _, ts := range []time.Time{noon, noon.Add(11 * time.Hour), noon.Add(-10 * time.Hour)} {
		d, err := c.MayAdmit(ctx, scope, ts)
		require.NoError(t, err)
		assert.Equal(t, domain.Deny(domain.ReasonKillSwitch, 0), d, "at %v", ts)
	}

	// kill switch wins over exhausted windows too
	for i := 0; i < 10; i++ {
		require.NoError(t, c.RecordAction(ctx, domain.PostScope{Platform: domain.PlatformReddit, Account: fmt.Sprintf("acc%d", i)},
			int64(i), noon.Add(-time.Duration(i)*time.Minute)))
	}
	d, err = c.MayAdmit(ctx, scope, noon)
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonKillSwitch, d.Reason)

	d, err = c.Gate(ctx, noon)
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonKillSwitch, d.Reason)

	store.setKillSwitch(false)
	d, err = c.MayAdmit(ctx, scope, noon)
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonGlobalRateLimit, d.Reason, "fresh settings on every call")
}

func TestController_QuietHours(t *testing.T) {
	ctx := context.Background()
	scope := domain.PostScope{Platform: domain.PlatformBluesky, Account: "a"}

	tbl := []struct {
		hour, minute int
		quiet        bool
		retry        time.Duration
	}{
		{23, 0, true, 7 * time.Hour},
		{23, 30, true, 6*time.Hour + 30*time.Minute},
		{0, 0, true, 6 * time.Hour},
		{5, 59, true, time.Minute},
		{6, 0, false, 0},
		{12, 0, false, 0},
		{22, 59, false, 0},
	}
	c := New(newMemStore(defaultSettings()), Params{})
	for _, tt := range tbl {
		t.Run(fmt.Sprintf("%02d:%02d", tt.hour, tt.minute), func(t *testing.T) {
			now := time.Date(2025, 3, 1, tt.hour, tt.minute, 0, 0, time.UTC)
			d, err := c.MayAdmit(ctx, scope, now)
			require.NoError(t, err)
			if !tt.quiet {
				assert.True(t, d.Allowed)
				return
			}
			assert.Equal(t, domain.Deny(domain.ReasonQuietHours, tt.retry), d)
			assert.True(t, d.StopsCycle())
		})
	}

	t.Run("evaluated in configured location", func(t *testing.T) {
		loc := time.FixedZone("UTC+3", 3*3600)
		c := New(newMemStore(defaultSettings()), Params{Location: loc})
		d, err := c.MayAdmit(ctx, scope, time.Date(2025, 3, 1, 20, 30, 0, 0, time.UTC)) // 23:30 local
		require.NoError(t, err)
		assert.Equal(t, domain.Deny(domain.ReasonQuietHours, 6*time.Hour+30*time.Minute), d)

		d, err = c.MayAdmit(ctx, scope, time.Date(2025, 3, 1, 23, 30, 0, 0, time.UTC)) // 02:30 local
		require.NoError(t, err)
		assert.Equal(t, domain.ReasonQuietHours, d.Reason)

		d, err = c.MayAdmit(ctx, scope, time.Date(2025, 3, 1, 3, 0, 0, 0, time.UTC)) // 06:00 local
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	})

	t.Run("disabled", func(t *testing.T) {
		s := defaultSettings()
		s.QuietHours = domain.QuietHours{}
		c := New(newMemStore(s), Params{})
		d, err := c.MayAdmit(ctx, scope, time.Date(2025, 3, 1, 2, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	})
}

func TestController_GlobalWindow(t *testing.T) {
	store := newMemStore(defaultSettings())
	c := New(store, Params{})
	ctx := context.Background()

	// ten posts from different accounts, one per minute starting at noon
	for i := 0; i < 10; i++ {
		scope := domain.PostScope{Platform: domain.PlatformReddit, Account: fmt.Sprintf("acc%d", i)}
		d, err := c.MayAdmit(ctx, scope, noon.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.True(t, d.Allowed, "post %d", i)
		require.NoError(t, c.RecordAction(ctx, scope, int64(i), noon.Add(time.Duration(i)*time.Minute)))
	}

	fresh := domain.PostScope{Platform: domain.PlatformReddit, Account: "fresh"}
	d, err := c.MayAdmit(ctx, fresh, noon.Add(10*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, domain.Deny(domain.ReasonGlobalRateLimit, 50*time.Minute), d)
	assert.True(t, d.StopsCycle())

	budget, err := c.Budget(ctx, noon.Add(10*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, Budget{PostedLastHour: 10, HourlyRemaining: 0}, budget)

	// the first entry leaves the window exactly one hour after it was recorded
	d, err = c.MayAdmit(ctx, fresh, noon.Add(time.Hour-time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonGlobalRateLimit, d.Reason)

	d, err = c.MayAdmit(ctx, fresh, noon.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	budget, err = c.Budget(ctx, noon.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 9, budget.PostedLastHour)
	assert.Equal(t, 1, budget.HourlyRemaining)

	// gate ignores rate windows
	d, err = c.Gate(ctx, noon.Add(10*time.Minute))
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestController_AccountWindow(t *testing.T) {
	s := defaultSettings()
	s.MaxPostsPerAccountPerDay = 2
	s.Cooldown = 0
	store := newMemStore(s)
	c := New(store, Params{})
	ctx := context.Background()

	a := domain.PostScope{Platform: domain.PlatformReddit, Account: "a"}
	require.NoError(t, c.RecordAction(ctx, a, 1, noon.Add(-20*time.Hour)))
	require.NoError(t, c.RecordAction(ctx, a, 2, noon.Add(-2*time.Hour)))

	d, err := c.MayAdmit(ctx, a, noon)
	require.NoError(t, err)
	assert.Equal(t, domain.Deny(domain.ReasonAccountDailyLimit, 4*time.Hour), d)
	assert.False(t, d.StopsCycle())

	// same account on another platform shares the daily budget
	d, err = c.MayAdmit(ctx, domain.PostScope{Platform: domain.PlatformBluesky, Account: "a"}, noon)
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonAccountDailyLimit, d.Reason)

	d, err = c.MayAdmit(ctx, domain.PostScope{Platform: domain.PlatformReddit, Account: "b"}, noon)
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = c.MayAdmit(ctx, a, noon.Add(4*time.Hour))
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestController_Cooldown(t *testing.T) {
	s := defaultSettings()
	s.QuietHours = domain.QuietHours{}
	store := newMemStore(s)
	c := New(store, Params{})
	ctx := context.Background()

	a := domain.PostScope{Platform: domain.PlatformReddit, Account: "a"}
	require.NoError(t, c.RecordAction(ctx, a, 1, noon.Add(-3*time.Hour)))
	require.NoError(t, c.RecordAction(ctx, a, 2, noon.Add(-time.Hour)))

	d, err := c.MayAdmit(ctx, a, noon)
	require.NoError(t, err)
	assert.Equal(t, domain.Deny(domain.ReasonCooldownActive, 11*time.Hour), d)

	d, err = c.MayAdmit(ctx, domain.PostScope{Platform: domain.PlatformBluesky, Account: "a"}, noon)
	require.NoError(t, err)
	assert.True(t, d.Allowed, "cooldown is per platform and account")

	d, err = c.MayAdmit(ctx, domain.PostScope{Platform: domain.PlatformReddit, Account: "b"}, noon)
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = c.MayAdmit(ctx, a, noon.Add(11*time.Hour))
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestController_RecordAction(t *testing.T) {
	store := &mocks.StoreMock{
		LoadSettingsFunc: func(context.Context) (domain.Settings, error) { return defaultSettings(), nil },
		RecordActionFunc: func(context.Context, []domain.RateWindow) error { return nil },
	}
	c := New(store, Params{})
	scope := domain.PostScope{Platform: domain.PlatformTwitter, Account: "acme"}
	require.NoError(t, c.RecordAction(context.Background(), scope, 42, noon))

	require.Len(t, store.RecordActionCalls(), 1)
	windows := store.RecordActionCalls()[0].Windows
	require.Len(t, windows, 3)
	assert.Equal(t, domain.RateWindow{Scope: domain.ScopeGlobal, Identifier: domain.GlobalIdentifier, WindowStart: noon,
		WindowEnd: noon.Add(time.Hour), MaxActions: 10, ActionCount: 1, ItemID: 42}, windows[0])
	assert.Equal(t, domain.RateWindow{Scope: domain.ScopeAccount, Identifier: "acme", WindowStart: noon,
		WindowEnd: noon.Add(24 * time.Hour), MaxActions: 5, ActionCount: 1, ItemID: 42}, windows[1])
	assert.Equal(t, domain.RateWindow{Scope: domain.ScopePlatform, Identifier: "twitter:acme", WindowStart: noon,
		WindowEnd: noon.Add(12 * time.Hour), MaxActions: 1, ActionCount: 1, ItemID: 42}, windows[2])

	store.RecordActionFunc = func(context.Context, []domain.RateWindow) error { return errors.New("disk full") }
	err := c.RecordAction(context.Background(), scope, 43, noon)
	require.EqualError(t, err, "record action for item 43: disk full")
}

func TestController_StoreErrors(t *testing.T) {
	ctx := context.Background()
	scope := domain.PostScope{Platform: domain.PlatformReddit, Account: "a"}

	c := New(&mocks.StoreMock{LoadSettingsFunc: func(context.Context) (domain.Settings, error) {
		return domain.Settings{}, errors.New("db closed")
	}}, Params{})
	_, err := c.MayAdmit(ctx, scope, noon)
	require.EqualError(t, err, "load settings: db closed")
	_, err = c.Gate(ctx, noon)
	require.Error(t, err)
	_, err = c.Budget(ctx, noon)
	require.Error(t, err)

	store := &mocks.StoreMock{
		LoadSettingsFunc: func(context.Context) (domain.Settings, error) { return defaultSettings(), nil },
		WindowStatsFunc: func(_ context.Context, scope domain.RateScope, _ string, _ time.Time) (domain.WindowStats, error) {
			if scope == domain.ScopeAccount {
				return domain.WindowStats{}, errors.New("locked")
			}
			return domain.WindowStats{}, nil
		},
	}
	_, err = New(store, Params{}).MayAdmit(ctx, scope, noon)
	require.EqualError(t, err, "account window for a: locked")
	assert.Len(t, store.WindowStatsCalls(), 2)
}
