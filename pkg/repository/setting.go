package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/postguard/pkg/domain"
)

// SettingRepository handles setting-related database operations
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a setting value
func (r *SettingRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

// SetSetting stores a setting value
func (r *SettingRepository) SetSetting(ctx context.Context, key, value string) error {
	return withRetry(ctx, "set setting", func() error {
		return setSetting(ctx, r.db, key, value)
	})
}

// SeedDefaults writes settings that are not stored yet, existing values are kept
func (r *SettingRepository) SeedDefaults(ctx context.Context, s domain.Settings) error {
	now := toMillis(time.Now())
	return withRetry(ctx, "seed settings", func() error {
		return inTx(ctx, r.db, func(tx *sqlx.Tx) error {
			for key, value := range settingValues(s) {
				_, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO settings (key, value, updated_at) VALUES (?, ?, ?)", key, value, now)
				if err != nil {
					return fmt.Errorf("seed %s: %w", key, err)
				}
			}
			return nil
		})
	})
}

// LoadSettings reads all admission settings
func (r *SettingRepository) LoadSettings(ctx context.Context) (domain.Settings, error) {
	return loadSettings(ctx, r.db)
}

// UpdateSettings applies an update atomically and returns the resulting settings
func (r *SettingRepository) UpdateSettings(ctx context.Context, upd domain.SettingsUpdate) (domain.Settings, error) {
	var result domain.Settings
	err := withRetry(ctx, "update settings", func() error {
		return inTx(ctx, r.db, func(tx *sqlx.Tx) error {
			current, err := loadSettings(ctx, tx)
			if err != nil {
				return err
			}
			next, err := upd.Apply(current)
			if err != nil {
				return err
			}
			for key, value := range settingValues(next) {
				if err := setSetting(ctx, tx, key, value); err != nil {
					return err
				}
			}
			result = next
			return nil
		})
	})
	return result, err
}

// ToggleKillSwitch flips the kill switch in a single statement and returns the new state
func (r *SettingRepository) ToggleKillSwitch(ctx context.Context) (bool, error) {
	var value string
	err := withRetry(ctx, "toggle kill switch", func() error {
		return r.db.GetContext(ctx, &value, `
			INSERT INTO settings (key, value, updated_at) VALUES (?, 'true', ?)
			ON CONFLICT(key) DO UPDATE SET
				value = CASE settings.value WHEN 'true' THEN 'false' ELSE 'true' END,
				updated_at = excluded.updated_at
			RETURNING value`, domain.SettingKillSwitch, toMillis(time.Now()))
	})
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

func setSetting(ctx context.Context, ex sqlx.ExecerContext, key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := ex.ExecContext(ctx, query, key, value, toMillis(time.Now())); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

func loadSettings(ctx context.Context, q sqlx.QueryerContext) (domain.Settings, error) {
	var rows []struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}
	if err := sqlx.SelectContext(ctx, q, &rows, "SELECT key, value FROM settings"); err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	var res domain.Settings
	for _, row := range rows {
		var err error
		switch row.Key {
		case domain.SettingKillSwitch:
			res.KillSwitch, err = strconv.ParseBool(row.Value)
		case domain.SettingQuietHours:
			res.QuietHours, err = domain.ParseQuietHours(row.Value)
		case domain.SettingGlobalMaxPostsPerHour:
			res.GlobalMaxPostsPerHour, err = strconv.Atoi(row.Value)
		case domain.SettingMaxPostsPerAccountPerDay:
			res.MaxPostsPerAccountPerDay, err = strconv.Atoi(row.Value)
		case domain.SettingCooldown:
			res.Cooldown, err = time.ParseDuration(row.Value)
		}
		if err != nil {
			return domain.Settings{}, fmt.Errorf("parse setting %s=%q: %w", row.Key, row.Value, err)
		}
	}
	return res, nil
}

func settingValues(s domain.Settings) map[string]string {
	return map[string]string{
		domain.SettingKillSwitch:               strconv.FormatBool(s.KillSwitch),
		domain.SettingQuietHours:               s.QuietHours.String(),
		domain.SettingGlobalMaxPostsPerHour:    strconv.Itoa(s.GlobalMaxPostsPerHour),
		domain.SettingMaxPostsPerAccountPerDay: strconv.Itoa(s.MaxPostsPerAccountPerDay),
		domain.SettingCooldown:                 s.Cooldown.String(),
	}
}
