package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SeenRepository remembers feed entries already handled by the keyword monitor
type SeenRepository struct {
	db *sqlx.DB
}

// NewSeenRepository creates a new seen-entries repository
func NewSeenRepository(db *sqlx.DB) *SeenRepository {
	return &SeenRepository{db: db}
}

// MarkSeen records the entry and reports whether it was new
func (r *SeenRepository) MarkSeen(ctx context.Context, source, guid string) (bool, error) {
	var inserted int64
	err := withRetry(ctx, fmt.Sprintf("mark %s seen", guid), func() error {
		res, err := r.db.ExecContext(ctx, "INSERT OR IGNORE INTO monitor_seen (guid, source, seen_at) VALUES (?, ?, ?)",
			guid, source, toMillis(time.Now()))
		if err != nil {
			return err
		}
		inserted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, err
	}
	return inserted > 0, nil
}

// Purge forgets entries seen before the given time
func (r *SeenRepository) Purge(ctx context.Context, before time.Time) (int64, error) {
	return purgeBefore(ctx, r.db, "monitor_seen", "seen_at", before)
}
