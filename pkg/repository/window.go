package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/postguard/pkg/domain"
)

// RateWindowRepository stores recorded posting actions used by sliding window checks
type RateWindowRepository struct {
	db *sqlx.DB
}

// NewRateWindowRepository creates a new rate window repository
func NewRateWindowRepository(db *sqlx.DB) *RateWindowRepository {
	return &RateWindowRepository{db: db}
}

type windowRow struct {
	ID          int64         `db:"id"`
	Scope       string        `db:"scope"`
	Identifier  string        `db:"identifier"`
	WindowStart int64         `db:"window_start"`
	WindowEnd   int64         `db:"window_end"`
	MaxActions  int           `db:"max_actions"`
	ActionCount int           `db:"action_count"`
	ItemID      sql.NullInt64 `db:"item_id"`
}

// RecordAction stores all window entries of one action atomically
func (r *RateWindowRepository) RecordAction(ctx context.Context, windows []domain.RateWindow) error {
	if len(windows) == 0 {
		return nil
	}
	return withRetry(ctx, "record action", func() error {
		return inTx(ctx, r.db, func(tx *sqlx.Tx) error {
			for _, w := range windows {
				count := w.ActionCount
				if count <= 0 {
					count = 1
				}
				_, err := tx.ExecContext(ctx, `
					INSERT INTO rate_windows (scope, identifier, window_start, window_end, max_actions, action_count, item_id)
					VALUES (?, ?, ?, ?, ?, ?, ?)`,
					w.Scope, w.Identifier, toMillis(w.WindowStart), toMillis(w.WindowEnd), w.MaxActions, count,
					sql.NullInt64{Int64: w.ItemID, Valid: w.ItemID > 0})
				if err != nil {
					return fmt.Errorf("insert %s window %s: %w", w.Scope, w.Identifier, err)
				}
			}
			return nil
		})
	})
}

// WindowStats counts actions of scope/identifier that started after since
func (r *RateWindowRepository) WindowStats(ctx context.Context, scope domain.RateScope, identifier string, since time.Time) (domain.WindowStats, error) {
	var row struct {
		Count  int           `db:"cnt"`
		Oldest sql.NullInt64 `db:"oldest"`
		Newest sql.NullInt64 `db:"newest"`
	}
	query := `
		SELECT COALESCE(SUM(action_count), 0) AS cnt, MIN(window_start) AS oldest, MAX(window_start) AS newest
		FROM rate_windows
		WHERE scope = ? AND identifier = ? AND window_start > ?`
	if err := r.db.GetContext(ctx, &row, query, scope, identifier, toMillis(since)); err != nil {
		return domain.WindowStats{}, fmt.Errorf("get %s window stats for %s: %w", scope, identifier, err)
	}
	res := domain.WindowStats{Count: row.Count}
	if row.Oldest.Valid {
		res.Oldest = fromMillis(row.Oldest.Int64)
	}
	if row.Newest.Valid {
		res.Newest = fromMillis(row.Newest.Int64)
	}
	return res, nil
}

// ActiveWindows lists entries whose window has not ended at now
func (r *RateWindowRepository) ActiveWindows(ctx context.Context, now time.Time) ([]domain.RateWindow, error) {
	var rows []windowRow
	query := "SELECT * FROM rate_windows WHERE window_end >= ? ORDER BY window_start DESC, id DESC"
	if err := r.db.SelectContext(ctx, &rows, query, toMillis(now)); err != nil {
		return nil, fmt.Errorf("list active windows: %w", err)
	}
	res := make([]domain.RateWindow, 0, len(rows))
	for _, row := range rows {
		res = append(res, domain.RateWindow{
			ID:          row.ID,
			Scope:       domain.RateScope(row.Scope),
			Identifier:  row.Identifier,
			WindowStart: fromMillis(row.WindowStart),
			WindowEnd:   fromMillis(row.WindowEnd),
			MaxActions:  row.MaxActions,
			ActionCount: row.ActionCount,
			ItemID:      row.ItemID.Int64,
		})
	}
	return res, nil
}

// PurgeExpired deletes entries whose window ended before now. Cooldown entries are also kept
// while they started within the current cooldown, raising the cooldown extends their lifetime.
func (r *RateWindowRepository) PurgeExpired(ctx context.Context, now time.Time, cooldown time.Duration) (int64, error) {
	var deleted int64
	err := withRetry(ctx, "purge expired windows", func() error {
		res, err := r.db.ExecContext(ctx, `
			DELETE FROM rate_windows
			WHERE window_end < ? AND (scope != ? OR window_start < ?)`,
			toMillis(now), domain.ScopePlatform, toMillis(now.Add(-cooldown)))
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	return deleted, err
}
