package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"messenger/internal/domain"
	apperrors "messenger/pkg/errors"
	"messenger/pkg/logger"
)

type ReactionRepository interface {
	Add(ctx context.Context, userID, messageID, reactionTypeID int64) (*domain.Reaction, error)
	Remove(ctx context.Context, userID, messageID int64, reactionTypeID *int64) (int64, error)
	ListForMessage(ctx context.Context, messageID int64) ([]*domain.Reaction, error)
	CountByType(ctx context.Context, messageID int64) ([]*domain.ReactionCount, error)
	ListTypes(ctx context.Context) ([]*domain.ReactionType, error)
	GetType(ctx context.Context, id int64) (*domain.ReactionType, error)
}

type reactionRepository struct {
	db  DB
	log logger.Logger
}

func NewReactionRepository(db DB, log logger.Logger) ReactionRepository {
	return &reactionRepository{db: db, log: log}
}

const (
	reactionColumns     = `id, user_id, message_id, reaction_type_id, created_at, updated_at, deleted_at`
	reactionTypeColumns = `id, name, emoji, created_at, updated_at`
)

func scanReaction(row pgx.Row) (*domain.Reaction, error) {
	r := &domain.Reaction{}
	err := row.Scan(&r.ID, &r.UserID, &r.MessageID, &r.ReactionTypeID, &r.CreatedAt, &r.UpdatedAt, &r.DeletedAt)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func scanReactionType(row pgx.Row) (*domain.ReactionType, error) {
	t := &domain.ReactionType{}
	if err := row.Scan(&t.ID, &t.Name, &t.Emoji, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

// Add inserts a live reaction for the triple. The existence check only
// produces the early error; the partial unique index is what guarantees
// uniqueness when two writers race past it.
func (r *reactionRepository) Add(ctx context.Context, userID, messageID, reactionTypeID int64) (*domain.Reaction, error) {
	existsQuery := `
		SELECT EXISTS (
			SELECT 1 FROM reactions
			WHERE user_id = $1 AND message_id = $2 AND reaction_type_id = $3 AND ` + liveRow + `
		)
	`
	insertQuery := `
		INSERT INTO reactions (user_id, message_id, reaction_type_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING ` + reactionColumns

	var reaction *domain.Reaction
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, existsQuery, userID, messageID, reactionTypeID).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return apperrors.ErrReactionExists
		}

		var err error
		reaction, err = scanReaction(tx.QueryRow(ctx, insertQuery, userID, messageID, reactionTypeID))
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrReactionExists) {
			r.log.Warn("Reaction already exists",
				"user_id", userID, "message_id", messageID, "reaction_type_id", reactionTypeID)
			return nil, err
		}
		r.log.Error("Failed to add reaction", "message_id", messageID, "error", err)
		classified := refine(classifyErr("add reaction", err), apperrors.KindAlreadyExists, apperrors.ErrReactionExists)
		switch violatedConstraint(err) {
		case "reactions_message_id_fkey":
			return nil, refine(classified, apperrors.KindNotFound, apperrors.ErrMessageNotFound)
		case "reactions_reaction_type_id_fkey":
			return nil, refine(classified, apperrors.KindNotFound, apperrors.ErrReactionTypeNotFound)
		case "reactions_user_id_fkey":
			return nil, refine(classified, apperrors.KindNotFound, apperrors.ErrUserNotFound)
		}
		return nil, classified
	}

	return reaction, nil
}

// Remove soft-deletes the user's live reactions on the message, narrowed to
// one type when reactionTypeID is set.
func (r *reactionRepository) Remove(ctx context.Context, userID, messageID int64, reactionTypeID *int64) (int64, error) {
	query := `
		UPDATE reactions
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE user_id = $1 AND message_id = $2
			AND ($3::bigint IS NULL OR reaction_type_id = $3)
			AND ` + liveRow

	tag, err := r.db.Exec(ctx, query, userID, messageID, reactionTypeID)
	if err != nil {
		r.log.Error("Failed to remove reaction", "message_id", messageID, "error", err)
		return 0, classifyErr("remove reaction", err)
	}

	return tag.RowsAffected(), nil
}

func (r *reactionRepository) ListForMessage(ctx context.Context, messageID int64) ([]*domain.Reaction, error) {
	query := `
		SELECT ` + reactionColumns + `
		FROM reactions
		WHERE message_id = $1 AND ` + liveRow + `
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, messageID)
	if err != nil {
		r.log.Error("Failed to get reactions", "message_id", messageID, "error", err)
		return nil, classifyErr("list reactions", err)
	}

	reactions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Reaction, error) {
		return scanReaction(row)
	})
	if err != nil {
		r.log.Error("Failed to scan reaction", "error", err)
		return nil, classifyErr("scan reactions", err)
	}

	return reactions, nil
}

func (r *reactionRepository) CountByType(ctx context.Context, messageID int64) ([]*domain.ReactionCount, error) {
	query := `
		SELECT rt.id, rt.name, rt.emoji, rt.created_at, rt.updated_at, COUNT(r.id)
		FROM reactions r
		JOIN reaction_types rt ON rt.id = r.reaction_type_id
		WHERE r.message_id = $1 AND r.` + liveRow + `
		GROUP BY rt.id, rt.name, rt.emoji, rt.created_at, rt.updated_at
		ORDER BY rt.id ASC
	`

	rows, err := r.db.Query(ctx, query, messageID)
	if err != nil {
		r.log.Error("Failed to count reactions", "message_id", messageID, "error", err)
		return nil, classifyErr("count reactions", err)
	}

	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.ReactionCount, error) {
		t := &domain.ReactionType{}
		c := &domain.ReactionCount{ReactionType: t}
		if err := row.Scan(&t.ID, &t.Name, &t.Emoji, &t.CreatedAt, &t.UpdatedAt, &c.Count); err != nil {
			return nil, err
		}
		return c, nil
	})
	if err != nil {
		r.log.Error("Failed to scan reaction count", "error", err)
		return nil, classifyErr("scan reaction counts", err)
	}

	return counts, nil
}

func (r *reactionRepository) ListTypes(ctx context.Context) ([]*domain.ReactionType, error) {
	query := `SELECT ` + reactionTypeColumns + ` FROM reaction_types ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list reaction types", "error", err)
		return nil, classifyErr("list reaction types", err)
	}

	types, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.ReactionType, error) {
		return scanReactionType(row)
	})
	if err != nil {
		r.log.Error("Failed to scan reaction type", "error", err)
		return nil, classifyErr("scan reaction types", err)
	}

	return types, nil
}

// GetType returns nil, nil when the catalog has no such type.
func (r *reactionRepository) GetType(ctx context.Context, id int64) (*domain.ReactionType, error) {
	query := `SELECT ` + reactionTypeColumns + ` FROM reaction_types WHERE id = $1`

	reactionType, err := scanReactionType(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to get reaction type", "id", id, "error", err)
		return nil, classifyErr("get reaction type", err)
	}

	return reactionType, nil
}
