package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"messenger/internal/domain"
	apperrors "messenger/pkg/errors"
	"messenger/pkg/logger"
)

type MessageRepository interface {
	Send(ctx context.Context, senderID, receiverID int64, content string) (*domain.Message, error)
	List(ctx context.Context, userID int64, unreadOnly bool, page domain.Page) (*domain.MessageList, error)
	GetConversation(ctx context.Context, userID, peerID int64, page domain.Page) (*domain.Conversation, error)
	MarkAsRead(ctx context.Context, selector domain.ReadSelector) (int64, error)
	Delete(ctx context.Context, messageID int64) (bool, error)
}

type messageRepository struct {
	db  DB
	log logger.Logger
}

func NewMessageRepository(db DB, log logger.Logger) MessageRepository {
	return &messageRepository{db: db, log: log}
}

const messageColumns = `id, sender_id, receiver_id, content, is_read, created_at, updated_at, deleted_at`

func scanMessage(row pgx.Row) (*domain.Message, error) {
	m := &domain.Message{}
	err := row.Scan(
		&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.IsRead,
		&m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func collectMessages(rows pgx.Rows) ([]*domain.Message, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Message, error) {
		return scanMessage(row)
	})
}

func (r *messageRepository) Send(ctx context.Context, senderID, receiverID int64, content string) (*domain.Message, error) {
	query := `
		INSERT INTO messages (sender_id, receiver_id, content, is_read, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, NOW(), NOW())
		RETURNING ` + messageColumns

	message, err := scanMessage(r.db.QueryRow(ctx, query, senderID, receiverID, content))
	if err != nil {
		r.log.Error("Failed to send message", "sender_id", senderID, "receiver_id", receiverID, "error", err)
		return nil, refine(classifyErr("send message", err), apperrors.KindNotFound, apperrors.ErrUserNotFound)
	}

	return message, nil
}

func (r *messageRepository) List(ctx context.Context, userID int64, unreadOnly bool, page domain.Page) (*domain.MessageList, error) {
	pageQuery := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE receiver_id = $1 AND ` + liveRow + ` AND ($2::boolean = FALSE OR is_read = FALSE)
		ORDER BY id ASC
		LIMIT $3 OFFSET $4
	`
	totalQuery := `
		SELECT COUNT(*)
		FROM messages
		WHERE receiver_id = $1 AND ` + liveRow + ` AND ($2::boolean = FALSE OR is_read = FALSE)
	`
	unreadQuery := `
		SELECT COUNT(*)
		FROM messages
		WHERE receiver_id = $1 AND ` + liveRow + ` AND is_read = FALSE
	`

	result := &domain.MessageList{}
	err := pgx.BeginTxFunc(ctx, r.db, readSnapshot, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, pageQuery, userID, unreadOnly, page.Limit(), page.Offset())
		if err != nil {
			return err
		}
		if result.Messages, err = collectMessages(rows); err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, totalQuery, userID, unreadOnly).Scan(&result.TotalCount); err != nil {
			return err
		}
		return tx.QueryRow(ctx, unreadQuery, userID).Scan(&result.UnreadCount)
	})
	if err != nil {
		r.log.Error("Failed to list messages", "user_id", userID, "error", err)
		return nil, classifyErr("list messages", err)
	}

	return result, nil
}

func (r *messageRepository) GetConversation(ctx context.Context, userID, peerID int64, page domain.Page) (*domain.Conversation, error) {
	pairFilter := `((sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)) AND ` + liveRow
	pageQuery := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE ` + pairFilter + `
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`
	totalQuery := `SELECT COUNT(*) FROM messages WHERE ` + pairFilter

	result := &domain.Conversation{}
	err := pgx.BeginTxFunc(ctx, r.db, readSnapshot, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, pageQuery, userID, peerID, page.Limit(), page.Offset())
		if err != nil {
			return err
		}
		if result.Messages, err = collectMessages(rows); err != nil {
			return err
		}
		return tx.QueryRow(ctx, totalQuery, userID, peerID).Scan(&result.TotalCount)
	})
	if err != nil {
		r.log.Error("Failed to get conversation", "user_id", userID, "peer_id", peerID, "error", err)
		return nil, classifyErr("get conversation", err)
	}

	return result, nil
}

// MarkAsRead returns every live row the selector matched, including rows
// that were already read.
func (r *messageRepository) MarkAsRead(ctx context.Context, selector domain.ReadSelector) (int64, error) {
	var (
		query string
		args  []any
	)

	switch sel := selector.(type) {
	case domain.ReadByIDs:
		if len(sel.IDs) == 0 {
			return 0, apperrors.ErrNoReadSelector
		}
		query = `
			UPDATE messages
			SET is_read = TRUE, updated_at = NOW()
			WHERE id = ANY($1) AND ` + liveRow
		args = []any{sel.IDs}
	case domain.ReadByUserPair:
		query = `
			UPDATE messages
			SET is_read = TRUE, updated_at = NOW()
			WHERE sender_id = $1 AND receiver_id = $2 AND ` + liveRow
		args = []any{sel.FromUserID, sel.ToUserID}
	default:
		return 0, apperrors.ErrNoReadSelector
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to mark messages as read", "error", err)
		return 0, classifyErr("mark messages as read", err)
	}

	return tag.RowsAffected(), nil
}

func (r *messageRepository) Delete(ctx context.Context, messageID int64) (bool, error) {
	query := `
		UPDATE messages
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND ` + liveRow

	tag, err := r.db.Exec(ctx, query, messageID)
	if err != nil {
		r.log.Error("Failed to delete message", "message_id", messageID, "error", err)
		return false, classifyErr("delete message", err)
	}

	return tag.RowsAffected() > 0, nil
}
