package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"vyzioads/pkg/errors"
)

// NewPostgresPool connects to the primary store.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, errors.Internal("Failed to create Postgres pool", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Internal("Failed to ping Postgres", err)
	}

	return pool, nil
}

// EnsureSchema creates the tables and constraints this core depends on. The
// unique index on (ad_id, buyer_id, seller_id) arbitrates concurrent chat
// creates; messages cascade with their chat so a conversation reset can never
// leave orphans.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			firebase_uid TEXT UNIQUE,
			username TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			avatar_url TEXT NOT NULL DEFAULT '',
			is_buyer BOOLEAN NOT NULL DEFAULT FALSE,
			is_seller BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS ads (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			price NUMERIC(10,2) NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT 'USD',
			status TEXT NOT NULL DEFAULT 'draft'
				CHECK (status IN ('draft','pending','active','paused','sold','archived')),
			header_image_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS chats (
			id BIGSERIAL PRIMARY KEY,
			ad_id BIGINT NOT NULL REFERENCES ads(id) ON DELETE CASCADE,
			buyer_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			seller_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (ad_id, buyer_id, seller_id)
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id BIGSERIAL PRIMARY KEY,
			chat_id BIGINT NOT NULL REFERENCES chats(id) ON DELETE CASCADE,
			sender_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			text TEXT NOT NULL DEFAULT '',
			attachment_url TEXT NOT NULL DEFAULT '',
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_chat_created ON messages(chat_id, created_at, id)`,
		`CREATE TABLE IF NOT EXISTS buyer_notifications (
			id BIGSERIAL PRIMARY KEY,
			buyer_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			notification_type TEXT NOT NULL DEFAULT 'message',
			header TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			ad_id BIGINT NOT NULL DEFAULT 0,
			seller_id BIGINT NOT NULL DEFAULT 0,
			seller_name TEXT NOT NULL DEFAULT '',
			seller_avatar_url TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_buyer_notifications_buyer ON buyer_notifications(buyer_id, timestamp)`,
		`CREATE TABLE IF NOT EXISTS seller_notifications (
			id BIGSERIAL PRIMARY KEY,
			seller_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			notification_type TEXT NOT NULL DEFAULT 'message',
			header TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			ad_id BIGINT NOT NULL DEFAULT 0,
			order_id BIGINT NOT NULL DEFAULT 0,
			order_status TEXT NOT NULL DEFAULT '',
			order_total NUMERIC(10,2) NOT NULL DEFAULT 0,
			buyer_id BIGINT NOT NULL DEFAULT 0,
			buyer_name TEXT NOT NULL DEFAULT '',
			buyer_avatar_url TEXT NOT NULL DEFAULT '',
			currency TEXT NOT NULL DEFAULT 'USD'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_seller_notifications_seller ON seller_notifications(seller_id, timestamp)`,
		`CREATE TABLE IF NOT EXISTS view_history (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			ad_id BIGINT NOT NULL REFERENCES ads(id) ON DELETE CASCADE,
			viewed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_view_history_user_ad ON view_history(user_id, ad_id, viewed_at)`,
		`CREATE TABLE IF NOT EXISTS saved_ads (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			ad_id BIGINT NOT NULL REFERENCES ads(id) ON DELETE CASCADE,
			saved_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, ad_id)
		)`,
	}

	for _, stmt := range ddl {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return errors.Internal("Failed to ensure schema", err)
		}
	}

	return nil
}
