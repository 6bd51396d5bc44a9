package repository

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"vyzioads/internal/domain/entity"
	"vyzioads/internal/domain/repository"
	"vyzioads/pkg/errors"
)

const uniqueViolation = "23505"

type postgresChatRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresChatRepository(pool *pgxpool.Pool) repository.ChatRepository {
	return &postgresChatRepository{pool: pool}
}

const chatColumns = `id, ad_id, buyer_id, seller_id, created_at, updated_at`

func scanChat(row pgx.Row) (*entity.Chat, error) {
	var c entity.Chat
	err := row.Scan(&c.ID, &c.AdID, &c.BuyerID, &c.SellerID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NotFound("Chat", err)
		}
		return nil, errors.Internal("Failed to scan chat", err)
	}
	return &c, nil
}

// ResetAndCreate wraps the destructive reset in one transaction: either the
// old chat and all its messages go and the new chat lands, or nothing
// changes. Messages cascade with the chat row at the schema level.
func (r *postgresChatRepository) ResetAndCreate(ctx context.Context, adID, buyerID, sellerID int64) (*entity.Chat, int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, 0, errors.Internal("Failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	var oldID int64
	err = tx.QueryRow(ctx,
		`DELETE FROM chats WHERE ad_id = $1 AND buyer_id = $2 AND seller_id = $3 RETURNING id`,
		adID, buyerID, sellerID,
	).Scan(&oldID)
	if err != nil && !stderrors.Is(err, pgx.ErrNoRows) {
		return nil, 0, errors.Internal("Failed to delete previous chat", err)
	}

	chat := &entity.Chat{AdID: adID, BuyerID: buyerID, SellerID: sellerID}
	err = tx.QueryRow(ctx,
		`INSERT INTO chats (ad_id, buyer_id, seller_id) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		adID, buyerID, sellerID,
	).Scan(&chat.ID, &chat.CreatedAt, &chat.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost the race against a concurrent reset for the same triple.
			// The surviving row is the conversation; adopt it.
			survivor, gerr := r.getByTriple(ctx, adID, buyerID, sellerID)
			if gerr != nil {
				return nil, 0, gerr
			}
			return survivor, 0, nil
		}
		return nil, 0, errors.Internal("Failed to create chat", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, errors.Internal("Failed to commit chat reset", err)
	}

	return chat, oldID, nil
}

func (r *postgresChatRepository) getByTriple(ctx context.Context, adID, buyerID, sellerID int64) (*entity.Chat, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+chatColumns+` FROM chats WHERE ad_id = $1 AND buyer_id = $2 AND seller_id = $3`,
		adID, buyerID, sellerID)
	return scanChat(row)
}

func (r *postgresChatRepository) GetByID(ctx context.Context, id int64) (*entity.Chat, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+chatColumns+` FROM chats WHERE id = $1`, id)
	return scanChat(row)
}

func (r *postgresChatRepository) ListByBuyer(ctx context.Context, buyerID int64) ([]*repository.ChatSummary, error) {
	return r.listSummaries(ctx, `buyer_id`, buyerID)
}

func (r *postgresChatRepository) ListBySeller(ctx context.Context, sellerID int64) ([]*repository.ChatSummary, error) {
	return r.listSummaries(ctx, `seller_id`, sellerID)
}

func (r *postgresChatRepository) listSummaries(ctx context.Context, column string, userID int64) ([]*repository.ChatSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.ad_id, c.buyer_id, c.seller_id, c.created_at, c.updated_at,
		        COALESCE((SELECT m.text FROM messages m WHERE m.chat_id = c.id
		                  ORDER BY m.created_at DESC, m.id DESC LIMIT 1), ''),
		        (SELECT COUNT(*) FROM messages m WHERE m.chat_id = c.id
		         AND m.is_read = FALSE AND m.sender_id <> $1)
		 FROM chats c WHERE c.`+column+` = $1
		 ORDER BY c.created_at DESC`, userID)
	if err != nil {
		return nil, errors.Internal("Failed to list chats", err)
	}
	defer rows.Close()

	var summaries []*repository.ChatSummary
	for rows.Next() {
		var c entity.Chat
		var s repository.ChatSummary
		if err := rows.Scan(&c.ID, &c.AdID, &c.BuyerID, &c.SellerID, &c.CreatedAt, &c.UpdatedAt,
			&s.LastMessage, &s.UnreadCount); err != nil {
			return nil, errors.Internal("Failed to scan chat summary", err)
		}
		s.Chat = &c
		summaries = append(summaries, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal("Failed to iterate chats", err)
	}
	return summaries, nil
}

func (r *postgresChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO messages (chat_id, sender_id, text, attachment_url, is_read)
		 VALUES ($1, $2, $3, $4, FALSE)
		 RETURNING id, created_at`,
		message.ChatID, message.SenderID, message.Text, message.AttachmentURL,
	).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}
	message.IsRead = false

	_, err = r.pool.Exec(ctx, `UPDATE chats SET updated_at = NOW() WHERE id = $1`, message.ChatID)
	if err != nil {
		return errors.Internal("Failed to touch chat", err)
	}
	return nil
}

func (r *postgresChatRepository) ListMessages(ctx context.Context, chatID int64) ([]*entity.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, chat_id, sender_id, text, attachment_url, is_read, created_at
		 FROM messages WHERE chat_id = $1
		 ORDER BY created_at ASC, id ASC`, chatID)
	if err != nil {
		return nil, errors.Internal("Failed to list messages", err)
	}
	defer rows.Close()

	var messages []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Text, &m.AttachmentURL,
			&m.IsRead, &m.CreatedAt); err != nil {
			return nil, errors.Internal("Failed to scan message", err)
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal("Failed to iterate messages", err)
	}
	return messages, nil
}

func (r *postgresChatRepository) MarkRead(ctx context.Context, chatID, readerID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE messages SET is_read = TRUE
		 WHERE chat_id = $1 AND is_read = FALSE AND sender_id <> $2`,
		chatID, readerID)
	if err != nil {
		return 0, errors.Internal("Failed to mark chat read", err)
	}
	return tag.RowsAffected(), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
