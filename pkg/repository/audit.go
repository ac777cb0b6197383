package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/postguard/pkg/domain"
)

// AuditRepository stores business events such as publish failures and kill switch toggles
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Log appends an audit entry
func (r *AuditRepository) Log(ctx context.Context, entry domain.AuditEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	meta := []byte("{}")
	if len(entry.Meta) > 0 {
		var err error
		if meta, err = json.Marshal(entry.Meta); err != nil {
			return fmt.Errorf("marshal audit meta: %w", err)
		}
	}
	return withRetry(ctx, "write audit entry", func() error {
		_, err := r.db.ExecContext(ctx, "INSERT INTO audit_log (level, message, meta, created_at) VALUES (?, ?, ?, ?)",
			entry.Level, entry.Message, string(meta), toMillis(entry.CreatedAt))
		return err
	})
}

// Recent returns the latest audit entries, newest first
func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	var rows []struct {
		ID        int64  `db:"id"`
		Level     string `db:"level"`
		Message   string `db:"message"`
		Meta      string `db:"meta"`
		CreatedAt int64  `db:"created_at"`
	}
	query := "SELECT id, level, message, meta, created_at FROM audit_log ORDER BY created_at DESC, id DESC LIMIT ?"
	if err := r.db.SelectContext(ctx, &rows, query, listLimit(limit)); err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	res := make([]domain.AuditEntry, 0, len(rows))
	for _, row := range rows {
		entry := domain.AuditEntry{ID: row.ID, Level: row.Level, Message: row.Message, CreatedAt: fromMillis(row.CreatedAt)}
		if row.Meta != "" && row.Meta != "{}" {
			if err := json.Unmarshal([]byte(row.Meta), &entry.Meta); err != nil {
				return nil, fmt.Errorf("unmarshal meta of audit entry %d: %w", row.ID, err)
			}
		}
		res = append(res, entry)
	}
	return res, nil
}

// Purge deletes entries created before the given time
func (r *AuditRepository) Purge(ctx context.Context, before time.Time) (int64, error) {
	return purgeBefore(ctx, r.db, "audit_log", "created_at", before)
}

func purgeBefore(ctx context.Context, db *sqlx.DB, table, column string, before time.Time) (int64, error) {
	var deleted int64
	query := fmt.Sprintf("DELETE FROM %s WHERE %s < ?", table, column) //nolint:gosec // table and column are constants
	err := withRetry(ctx, "purge "+table, func() error {
		res, err := db.ExecContext(ctx, query, toMillis(before))
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	return deleted, err
}
