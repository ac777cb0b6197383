package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/postguard/pkg/domain"
)

// ReviewRepository reads the append-only review trail. Reviews are written only by ItemRepository.Transition.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewRow struct {
	ID        int64  `db:"id"`
	ItemID    int64  `db:"item_id"`
	Reviewer  string `db:"reviewer"`
	Action    string `db:"action"`
	Notes     string `db:"notes"`
	Override  bool   `db:"override"`
	CreatedAt int64  `db:"created_at"`
}

// ListReviews returns reviews of an item in chronological order
func (r *ReviewRepository) ListReviews(ctx context.Context, itemID int64) ([]domain.Review, error) {
	var rows []reviewRow
	query := "SELECT * FROM reviews WHERE item_id = ? ORDER BY created_at ASC, id ASC"
	if err := r.db.SelectContext(ctx, &rows, query, itemID); err != nil {
		return nil, fmt.Errorf("list reviews of item %d: %w", itemID, err)
	}
	res := make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		res = append(res, domain.Review{
			ID:        row.ID,
			ItemID:    row.ItemID,
			Reviewer:  row.Reviewer,
			Action:    domain.ReviewAction(row.Action),
			Notes:     row.Notes,
			Override:  row.Override,
			CreatedAt: fromMillis(row.CreatedAt),
		})
	}
	return res, nil
}

func insertReview(ctx context.Context, ex sqlx.ExecerContext, rv domain.Review) (int64, error) {
	res, err := ex.ExecContext(ctx,
		"INSERT INTO reviews (item_id, reviewer, action, notes, override, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		rv.ItemID, rv.Reviewer, rv.Action, rv.Notes, rv.Override, toMillis(rv.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("insert review: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get review id: %w", err)
	}
	return id, nil
}
