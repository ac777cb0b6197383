package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/postguard/pkg/domain"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// ItemRepository handles content item storage and status transitions
type ItemRepository struct {
	db *sqlx.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// itemRow is the items table representation
type itemRow struct {
	ID              int64          `db:"id"`
	Platform        string         `db:"platform"`
	AccountScope    string         `db:"account_scope"`
	Channel         string         `db:"channel"`
	Flair           string         `db:"flair"`
	NoSelfPromotion bool           `db:"no_self_promotion"`
	Title           string         `db:"title"`
	Body            string         `db:"body"`
	MediaRef        string         `db:"media_ref"`
	Status          string         `db:"status"`
	Verdict         string         `db:"verdict"`
	ComplianceScore int            `db:"compliance_score"`
	IsCompliant     bool           `db:"is_compliant"`
	SimilarityScore float64        `db:"similarity_score"`
	ScheduledAt     sql.NullInt64  `db:"scheduled_at"`
	ExternalRef     sql.NullString `db:"external_ref"`
	FailureReason   string         `db:"failure_reason"`
	SourceRef       string         `db:"source_ref"`
	ResubmittedFrom sql.NullInt64  `db:"resubmitted_from"`
	CreatedAt       int64          `db:"created_at"`
	UpdatedAt       int64          `db:"updated_at"`
}

// CreateItem inserts a new item and sets its ID and timestamps
func (r *ItemRepository) CreateItem(ctx context.Context, item *domain.ContentItem) error {
	if item.Status == "" {
		item.Status = domain.StatusDraft
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = item.CreatedAt
	}
	verdict, err := json.Marshal(item.Verdict)
	if err != nil {
		return fmt.Errorf("marshal verdict: %w", err)
	}

	query := `
		INSERT INTO items (platform, account_scope, channel, flair, no_self_promotion, title, body, media_ref, status,
			verdict, compliance_score, is_compliant, similarity_score, scheduled_at, external_ref,
			failure_reason, source_ref, resubmitted_from, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	resubmitted := sql.NullInt64{Int64: item.ResubmittedFrom, Valid: item.ResubmittedFrom > 0}

	return withRetry(ctx, "create item", func() error {
		res, err := r.db.ExecContext(ctx, query, item.Platform, item.AccountScope, item.Channel, item.Flair,
			item.NoSelfPromotion, item.Title, item.Body, item.MediaRef, item.Status, string(verdict), item.Verdict.Score,
			item.Verdict.IsCompliant, item.SimilarityScore, nullMillis(item.ScheduledAt), nullString(item.ExternalRef),
			item.FailureReason, item.SourceRef, resubmitted, toMillis(item.CreatedAt), toMillis(item.UpdatedAt))
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}
		item.ID = id
		return nil
	})
}

// GetItem retrieves an item by ID, returns domain.ErrNotFound if missing
func (r *ItemRepository) GetItem(ctx context.Context, id int64) (*domain.ContentItem, error) {
	return getItem(ctx, r.db, id)
}

func getItem(ctx context.Context, q sqlx.QueryerContext, id int64) (*domain.ContentItem, error) {
	var row itemRow
	err := sqlx.GetContext(ctx, q, &row, "SELECT * FROM items WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}
	return row.toDomain()
}

// ListItems returns items matching the filter, newest first
func (r *ItemRepository) ListItems(ctx context.Context, f domain.ItemFilter) ([]domain.ContentItem, error) {
	var conds []string
	var args []any

	if len(f.Statuses) > 0 {
		query, inArgs, err := sqlx.In("status IN (?)", f.Statuses)
		if err != nil {
			return nil, fmt.Errorf("build status filter: %w", err)
		}
		conds = append(conds, query)
		args = append(args, inArgs...)
	}
	if f.Platform != "" {
		conds = append(conds, "platform = ?")
		args = append(args, f.Platform)
	}
	if text := strings.TrimSpace(f.Text); text != "" {
		conds = append(conds, "(title LIKE ? ESCAPE '\\' OR body LIKE ? ESCAPE '\\')")
		pattern := "%" + escapeLike(text) + "%"
		args = append(args, pattern, pattern)
	}
	if f.MinScore != nil {
		conds = append(conds, "compliance_score >= ?")
		args = append(args, *f.MinScore)
	}
	if f.MaxScore != nil {
		conds = append(conds, "compliance_score <= ?")
		args = append(args, *f.MaxScore)
	}
	if f.From != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, toMillis(*f.From))
	}
	if f.To != nil {
		conds = append(conds, "created_at <= ?")
		args = append(args, toMillis(*f.To))
	}

	query := "SELECT * FROM items"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, listLimit(f.Limit), max(0, f.Offset))

	return r.selectItems(ctx, query, args...)
}

// ListDue returns a page of approved items whose schedule allows posting at now, oldest first
func (r *ItemRepository) ListDue(ctx context.Context, now time.Time, limit, offset int) ([]domain.ContentItem, error) {
	query := `
		SELECT * FROM items
		WHERE status = ? AND (scheduled_at IS NULL OR scheduled_at <= ?)
		ORDER BY created_at ASC, id ASC
		LIMIT ? OFFSET ?`
	return r.selectItems(ctx, query, domain.StatusApproved, toMillis(now), listLimit(limit), max(0, offset))
}

// RecentPostedBodies returns bodies of the latest posted items on the platform
func (r *ItemRepository) RecentPostedBodies(ctx context.Context, platform domain.Platform, limit int) ([]string, error) {
	var bodies []string
	query := `SELECT body FROM items WHERE status = ? AND platform = ? ORDER BY updated_at DESC, id DESC LIMIT ?`
	if err := r.db.SelectContext(ctx, &bodies, query, domain.StatusPosted, platform, listLimit(limit)); err != nil {
		return nil, fmt.Errorf("get recent posted bodies: %w", err)
	}
	return bodies, nil
}

// Transition moves an item between statuses and appends its review in one transaction.
// The update is conditional on the current status, so concurrent transitions can't both succeed.
func (r *ItemRepository) Transition(ctx context.Context, tr domain.Transition) (*domain.ContentItem, error) {
	if !domain.CanTransition(tr.From, tr.To) {
		return nil, &domain.TransitionError{ItemID: tr.ItemID, From: tr.From, To: tr.To}
	}
	if tr.At.IsZero() {
		tr.At = time.Now()
	}
	externalRef := sql.NullString{}
	if tr.To == domain.StatusPosted {
		if tr.ExternalRef == "" {
			return nil, &domain.ValidationError{Field: "external_ref", Message: "required for posted items"}
		}
		externalRef = nullString(tr.ExternalRef)
	}

	var result *domain.ContentItem
	err := withRetry(ctx, fmt.Sprintf("transition item %d to %s", tr.ItemID, tr.To), func() error {
		return inTx(ctx, r.db, func(tx *sqlx.Tx) error {
			res, err := tx.ExecContext(ctx, `
				UPDATE items SET status = ?, external_ref = ?, failure_reason = ?,
					scheduled_at = COALESCE(?, scheduled_at), updated_at = ?
				WHERE id = ? AND status = ? AND (? = 0 OR is_compliant = 1)`,
				tr.To, externalRef, tr.FailureReason, nullMillis(tr.ScheduledAt), toMillis(tr.At), tr.ItemID, tr.From,
				tr.RequireCompliant)
			if err != nil {
				return fmt.Errorf("update status: %w", err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected: %w", err)
			}
			if affected == 0 {
				return transitionFailure(ctx, tx, tr)
			}

			review := tr.Review
			review.ItemID = tr.ItemID
			review.CreatedAt = tr.At
			if _, err := insertReview(ctx, tx, review); err != nil {
				return err
			}

			result, err = getItem(ctx, tx, tr.ItemID)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// transitionFailure explains why a conditional status update matched nothing
func transitionFailure(ctx context.Context, tx *sqlx.Tx, tr domain.Transition) error {
	var current struct {
		Status      string `db:"status"`
		IsCompliant bool   `db:"is_compliant"`
	}
	err := tx.GetContext(ctx, &current, "SELECT status, is_compliant FROM items WHERE id = ?", tr.ItemID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("item %d: %w", tr.ItemID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("get current status: %w", err)
	}
	if domain.Status(current.Status) == tr.From && tr.RequireCompliant && !current.IsCompliant {
		return fmt.Errorf("item %d is no longer compliant: %w", tr.ItemID, domain.ErrOverrideRequired)
	}
	return &domain.TransitionError{ItemID: tr.ItemID, From: domain.Status(current.Status), To: tr.To}
}

// UpdateDraft rewrites content and verdict of an item that is still a draft
func (r *ItemRepository) UpdateDraft(ctx context.Context, id int64, upd domain.DraftUpdate) (*domain.ContentItem, error) {
	verdict, err := json.Marshal(upd.Verdict)
	if err != nil {
		return nil, fmt.Errorf("marshal verdict: %w", err)
	}
	if upd.At.IsZero() {
		upd.At = time.Now()
	}

	var result *domain.ContentItem
	err = withRetry(ctx, fmt.Sprintf("update draft %d", id), func() error {
		return inTx(ctx, r.db, func(tx *sqlx.Tx) error {
			res, err := tx.ExecContext(ctx, `
				UPDATE items SET title = ?, body = ?, verdict = ?, compliance_score = ?, is_compliant = ?,
					similarity_score = ?, updated_at = ?
				WHERE id = ? AND status = ?`,
				upd.Title, upd.Body, string(verdict), upd.Verdict.Score, upd.Verdict.IsCompliant,
				upd.SimilarityScore, toMillis(upd.At), id, domain.StatusDraft)
			if err != nil {
				return fmt.Errorf("update item: %w", err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected: %w", err)
			}
			if affected == 0 {
				return transitionFailure(ctx, tx, domain.Transition{ItemID: id, To: domain.StatusDraft})
			}
			result, err = getItem(ctx, tx, id)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CountByStatus returns number of items per status, every status present
func (r *ItemRepository) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	var rows []struct {
		Key   string `db:"k"`
		Count int    `db:"cnt"`
	}
	if err := r.db.SelectContext(ctx, &rows, "SELECT status AS k, COUNT(*) AS cnt FROM items GROUP BY status"); err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	res := make(map[domain.Status]int, len(domain.Statuses))
	for _, s := range domain.Statuses {
		res[s] = 0
	}
	for _, row := range rows {
		res[domain.Status(row.Key)] = row.Count
	}
	return res, nil
}

// CountByPlatform returns number of items per platform, every platform present
func (r *ItemRepository) CountByPlatform(ctx context.Context) (map[domain.Platform]int, error) {
	var rows []struct {
		Key   string `db:"k"`
		Count int    `db:"cnt"`
	}
	if err := r.db.SelectContext(ctx, &rows, "SELECT platform AS k, COUNT(*) AS cnt FROM items GROUP BY platform"); err != nil {
		return nil, fmt.Errorf("count by platform: %w", err)
	}
	res := make(map[domain.Platform]int, len(domain.Platforms))
	for _, p := range domain.Platforms {
		res[p] = 0
	}
	for _, row := range rows {
		res[domain.Platform(row.Key)] = row.Count
	}
	return res, nil
}

func (r *ItemRepository) selectItems(ctx context.Context, query string, args ...any) ([]domain.ContentItem, error) {
	var rows []itemRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	items := make([]domain.ContentItem, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

func (row *itemRow) toDomain() (*domain.ContentItem, error) {
	item := &domain.ContentItem{
		ID:              row.ID,
		Platform:        domain.Platform(row.Platform),
		AccountScope:    row.AccountScope,
		Channel:         row.Channel,
		Flair:           row.Flair,
		NoSelfPromotion: row.NoSelfPromotion,
		Title:           row.Title,
		Body:            row.Body,
		MediaRef:        row.MediaRef,
		Status:          domain.Status(row.Status),
		SimilarityScore: row.SimilarityScore,
		ScheduledAt:     fromNullMillis(row.ScheduledAt),
		ExternalRef:     row.ExternalRef.String,
		FailureReason:   row.FailureReason,
		SourceRef:       row.SourceRef,
		ResubmittedFrom: row.ResubmittedFrom.Int64,
		CreatedAt:       fromMillis(row.CreatedAt),
		UpdatedAt:       fromMillis(row.UpdatedAt),
	}
	if row.Verdict != "" {
		if err := json.Unmarshal([]byte(row.Verdict), &item.Verdict); err != nil {
			return nil, fmt.Errorf("unmarshal verdict of item %d: %w", row.ID, err)
		}
	}
	if item.Verdict.Violations == nil {
		item.Verdict.Violations = []domain.Violation{}
	}
	return item, nil
}

func listLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return min(limit, maxListLimit)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// CreateResubmission inserts a new draft copied from an earlier item together with its first review
func (r *ItemRepository) CreateResubmission(ctx context.Context, item *domain.ContentItem, review domain.Review) error {
	if item.ResubmittedFrom == 0 {
		return &domain.ValidationError{Field: "resubmitted_from", Message: "source item is required"}
	}
	verdict, err := json.Marshal(item.Verdict)
	if err != nil {
		return fmt.Errorf("marshal verdict: %w", err)
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	item.UpdatedAt = item.CreatedAt
	item.Status = domain.StatusDraft

	return withRetry(ctx, "create resubmission", func() error {
		return inTx(ctx, r.db, func(tx *sqlx.Tx) error {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO items (platform, account_scope, channel, flair, no_self_promotion, title, body, media_ref,
					status, verdict, compliance_score, is_compliant, similarity_score, source_ref, resubmitted_from,
					created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				item.Platform, item.AccountScope, item.Channel, item.Flair, item.NoSelfPromotion, item.Title, item.Body, item.MediaRef,
				item.Status, string(verdict), item.Verdict.Score, item.Verdict.IsCompliant, item.SimilarityScore,
				item.SourceRef, item.ResubmittedFrom, toMillis(item.CreatedAt), toMillis(item.UpdatedAt))
			if err != nil {
				return fmt.Errorf("insert item: %w", err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("get last insert id: %w", err)
			}
			review.ItemID = id
			review.CreatedAt = item.CreatedAt
			if _, err := insertReview(ctx, tx, review); err != nil {
				return err
			}
			item.ID = id
			return nil
		})
	})
}
