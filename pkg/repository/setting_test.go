package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/postguard/pkg/domain"
)

func TestSettingRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	defaults := domain.Settings{
		QuietHours:               domain.QuietHours{Start: 23, End: 6},
		GlobalMaxPostsPerHour:    10,
		MaxPostsPerAccountPerDay: 5,
		Cooldown:                 12 * time.Hour,
	}
	require.NoError(t, repos.Setting.SeedDefaults(ctx, defaults))

	s, err := repos.Setting.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaults, s)

	t.Run("seeding keeps existing values", func(t *testing.T) {
		require.NoError(t, repos.Setting.SetSetting(ctx, domain.SettingGlobalMaxPostsPerHour, "3"))
		require.NoError(t, repos.Setting.SeedDefaults(ctx, defaults))
		s, err := repos.Setting.LoadSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, s.GlobalMaxPostsPerHour)
	})

	t.Run("toggle kill switch", func(t *testing.T) {
		on, err := repos.Setting.ToggleKillSwitch(ctx)
		require.NoError(t, err)
		assert.True(t, on)
		s, err := repos.Setting.LoadSettings(ctx)
		require.NoError(t, err)
		assert.True(t, s.KillSwitch)

		on, err = repos.Setting.ToggleKillSwitch(ctx)
		require.NoError(t, err)
		assert.False(t, on)
	})

	t.Run("update", func(t *testing.T) {
		qh, daily := "22-7", 2
		s, err := repos.Setting.UpdateSettings(ctx, domain.SettingsUpdate{QuietHours: &qh, MaxPostsPerAccountPerDay: &daily})
		require.NoError(t, err)
		assert.Equal(t, domain.QuietHours{Start: 22, End: 7}, s.QuietHours)
		assert.Equal(t, 2, s.MaxPostsPerAccountPerDay)

		loaded, err := repos.Setting.LoadSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, s, loaded)
	})

	t.Run("invalid update leaves settings unchanged", func(t *testing.T) {
		before, err := repos.Setting.LoadSettings(ctx)
		require.NoError(t, err)
		bad := "30-2"
		_, err = repos.Setting.UpdateSettings(ctx, domain.SettingsUpdate{QuietHours: &bad})
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
		after, err := repos.Setting.LoadSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("raw get", func(t *testing.T) {
		v, err := repos.Setting.GetSetting(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, v)
	})
}

func TestAuditAndSeenRepositories(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	old := time.Now().Add(-48 * time.Hour)

	require.NoError(t, repos.Audit.Log(ctx, domain.AuditEntry{Level: "INFO", Message: "old", CreatedAt: old}))
	require.NoError(t, repos.Audit.Log(ctx, domain.AuditEntry{Level: "ERROR", Message: "publish failed",
		Meta: map[string]any{"item_id": float64(3), "platform": "reddit"}}))

	entries, err := repos.Audit.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "publish failed", entries[0].Message)
	assert.Equal(t, map[string]any{"item_id": float64(3), "platform": "reddit"}, entries[0].Meta)
	assert.Nil(t, entries[1].Meta)

	deleted, err := repos.Audit.Purge(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	isNew, err := repos.Seen.MarkSeen(ctx, "feed1", "guid1")
	require.NoError(t, err)
	assert.True(t, isNew)
	isNew, err = repos.Seen.MarkSeen(ctx, "feed1", "guid1")
	require.NoError(t, err)
	assert.False(t, isNew)
	isNew, err = repos.Seen.MarkSeen(ctx, "feed2", "guid1")
	require.NoError(t, err)
	assert.True(t, isNew)

	deleted, err = repos.Seen.Purge(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}

func TestWithRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("non-lock error stops at once", func(t *testing.T) {
		calls := 0
		err := withRetry(ctx, "op", func() error {
			calls++
			if calls < 3 {
				return assert.AnError
			}
			return nil
		})
		// assert.AnError is not a lock error, so it stops at once
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("busy then success", func(t *testing.T) {
		calls := 0
		err := withRetry(ctx, "op", func() error {
			calls++
			if calls < 3 {
				return errString("SQLITE_BUSY: database is locked")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("critical error keeps cause", func(t *testing.T) {
		err := withRetry(ctx, "do thing", func() error { return domain.ErrNotFound })
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, "do thing: not found", err.Error())
	})
}

type errString string

func (e errString) Error() string { return string(e) }
