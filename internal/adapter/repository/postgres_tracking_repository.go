package repository

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vyzioads/internal/domain/entity"
	"vyzioads/internal/domain/repository"
	"vyzioads/pkg/errors"
)

type postgresTrackingRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresTrackingRepository(pool *pgxpool.Pool) repository.TrackingRepository {
	return &postgresTrackingRepository{pool: pool}
}

func (r *postgresTrackingRepository) HasRecentView(ctx context.Context, userID, adID int64, since time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM view_history WHERE user_id = $1 AND ad_id = $2 AND viewed_at >= $3)`,
		userID, adID, since,
	).Scan(&exists)
	if err != nil {
		return false, errors.Internal("Failed to check recent views", err)
	}
	return exists, nil
}

func (r *postgresTrackingRepository) CreateView(ctx context.Context, v *entity.ViewHistory) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO view_history (user_id, ad_id) VALUES ($1, $2) RETURNING id, viewed_at`,
		v.UserID, v.AdID,
	).Scan(&v.ID, &v.ViewedAt)
	if err != nil {
		return errors.Internal("Failed to record view", err)
	}
	return nil
}

func (r *postgresTrackingRepository) ListViewsByUser(ctx context.Context, userID int64, limit int) ([]*entity.ViewHistory, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, ad_id, viewed_at FROM view_history
		 WHERE user_id = $1 ORDER BY viewed_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, errors.Internal("Failed to list view history", err)
	}
	defer rows.Close()
	return collectViews(rows)
}

func (r *postgresTrackingRepository) ListViewsByAd(ctx context.Context, adID int64, limit int) ([]*entity.ViewHistory, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, ad_id, viewed_at FROM view_history
		 WHERE ad_id = $1 ORDER BY viewed_at DESC LIMIT $2`, adID, limit)
	if err != nil {
		return nil, errors.Internal("Failed to list ad views", err)
	}
	defer rows.Close()
	return collectViews(rows)
}

func collectViews(rows pgx.Rows) ([]*entity.ViewHistory, error) {
	var views []*entity.ViewHistory
	for rows.Next() {
		var v entity.ViewHistory
		if err := rows.Scan(&v.ID, &v.UserID, &v.AdID, &v.ViewedAt); err != nil {
			return nil, errors.Internal("Failed to scan view", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal("Failed to iterate views", err)
	}
	return views, nil
}

// SaveAd lets the unique constraint arbitrate concurrent duplicate saves:
// ON CONFLICT DO NOTHING means the loser sees created=false, not an error.
func (r *postgresTrackingRepository) SaveAd(ctx context.Context, s *entity.SavedAd) (bool, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO saved_ads (user_id, ad_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, ad_id) DO NOTHING
		 RETURNING id, saved_at`,
		s.UserID, s.AdID,
	).Scan(&s.ID, &s.SavedAt)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, errors.Internal("Failed to save ad", err)
	}
	return true, nil
}

func (r *postgresTrackingRepository) UnsaveAd(ctx context.Context, userID, adID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM saved_ads WHERE user_id = $1 AND ad_id = $2`, userID, adID)
	if err != nil {
		return false, errors.Internal("Failed to unsave ad", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresTrackingRepository) ListSavedByUser(ctx context.Context, userID int64) ([]*entity.SavedAd, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, ad_id, saved_at FROM saved_ads
		 WHERE user_id = $1 ORDER BY saved_at DESC`, userID)
	if err != nil {
		return nil, errors.Internal("Failed to list saved ads", err)
	}
	defer rows.Close()

	var saved []*entity.SavedAd
	for rows.Next() {
		var s entity.SavedAd
		if err := rows.Scan(&s.ID, &s.UserID, &s.AdID, &s.SavedAt); err != nil {
			return nil, errors.Internal("Failed to scan saved ad", err)
		}
		saved = append(saved, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal("Failed to iterate saved ads", err)
	}
	return saved, nil
}

func (r *postgresTrackingRepository) DashboardCounts(ctx context.Context, userID int64) (*repository.DashboardCounts, error) {
	var counts repository.DashboardCounts
	err := r.pool.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM saved_ads WHERE user_id = $1),
		   (SELECT COUNT(DISTINCT ad_id) FROM view_history WHERE user_id = $1),
		   (SELECT COUNT(*) FROM chats WHERE buyer_id = $1),
		   (SELECT COUNT(*) FROM messages m JOIN chats c ON c.id = m.chat_id
		    WHERE c.buyer_id = $1 AND m.is_read = FALSE AND m.sender_id <> $1)`,
		userID,
	).Scan(&counts.SavedAds, &counts.ViewedAds, &counts.ActiveChats, &counts.UnreadMessages)
	if err != nil {
		return nil, errors.Internal("Failed to load dashboard counts", err)
	}
	return &counts, nil
}
