package repository

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vyzioads/internal/domain/entity"
	"vyzioads/internal/domain/repository"
	"vyzioads/pkg/errors"
)

type postgresAdRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresAdRepository(pool *pgxpool.Pool) repository.AdRepository {
	return &postgresAdRepository{pool: pool}
}

const adColumns = `id, user_id, title, description, city, price, currency, status, header_image_url, created_at`

func scanAd(row pgx.Row) (*entity.Ad, error) {
	var ad entity.Ad
	err := row.Scan(&ad.ID, &ad.UserID, &ad.Title, &ad.Description, &ad.City,
		&ad.Price, &ad.Currency, &ad.Status, &ad.HeaderImageURL, &ad.CreatedAt)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NotFound("Ad", err)
		}
		return nil, errors.Internal("Failed to scan ad", err)
	}
	return &ad, nil
}

func (r *postgresAdRepository) Create(ctx context.Context, ad *entity.Ad) error {
	if ad.Status == "" {
		ad.Status = entity.AdStatusDraft
	}
	if ad.Currency == "" {
		ad.Currency = "USD"
	}

	err := r.pool.QueryRow(ctx,
		`INSERT INTO ads (user_id, title, description, city, price, currency, status, header_image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		ad.UserID, ad.Title, ad.Description, ad.City, ad.Price, ad.Currency, ad.Status, ad.HeaderImageURL,
	).Scan(&ad.ID, &ad.CreatedAt)
	if err != nil {
		return errors.Internal("Failed to create ad", err)
	}
	return nil
}

func (r *postgresAdRepository) GetByID(ctx context.Context, id int64) (*entity.Ad, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+adColumns+` FROM ads WHERE id = $1`, id)
	return scanAd(row)
}

func (r *postgresAdRepository) ListActive(ctx context.Context, limit, offset int) ([]*entity.Ad, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM ads WHERE status = 'active'`).Scan(&total); err != nil {
		return nil, 0, errors.Internal("Failed to count ads", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+adColumns+` FROM ads WHERE status = 'active'
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list ads", err)
	}
	defer rows.Close()

	ads, err := collectAds(rows)
	if err != nil {
		return nil, 0, err
	}
	return ads, total, nil
}

func (r *postgresAdRepository) ListBySeller(ctx context.Context, sellerID int64) ([]*entity.Ad, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+adColumns+` FROM ads WHERE user_id = $1 ORDER BY created_at DESC`, sellerID)
	if err != nil {
		return nil, errors.Internal("Failed to list seller ads", err)
	}
	defer rows.Close()

	return collectAds(rows)
}

func collectAds(rows pgx.Rows) ([]*entity.Ad, error) {
	var ads []*entity.Ad
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, err
		}
		ads = append(ads, ad)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal("Failed to iterate ads", err)
	}
	return ads, nil
}

func (r *postgresAdRepository) UpdateStatus(ctx context.Context, id int64, from, to entity.AdStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE ads SET status = $1 WHERE id = $2 AND status = $3`, to, id, from)
	if err != nil {
		return false, errors.Internal("Failed to update ad status", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresAdRepository) SetHeaderImageURL(ctx context.Context, id int64, url string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE ads SET header_image_url = $1 WHERE id = $2`, url, id)
	if err != nil {
		return errors.Internal("Failed to set header image", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound("Ad", nil)
	}
	return nil
}
