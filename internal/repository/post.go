package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"messenger/internal/domain"
	apperrors "messenger/pkg/errors"
	"messenger/pkg/logger"
)

type PostRepository interface {
	Create(ctx context.Context, userID int64, body string) (*domain.Post, error)
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	List(ctx context.Context, page domain.Page) (*domain.PostList, error)
	ListByUser(ctx context.Context, userID int64, page domain.Page) (*domain.PostList, error)
	Update(ctx context.Context, id int64, body string) (*domain.Post, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type postRepository struct {
	db  DB
	log logger.Logger
}

func NewPostRepository(db DB, log logger.Logger) PostRepository {
	return &postRepository{db: db, log: log}
}

const postColumns = `id, user_id, body, created_at, updated_at, deleted_at`

func scanPost(row pgx.Row) (*domain.Post, error) {
	p := &domain.Post{}
	if err := row.Scan(&p.ID, &p.UserID, &p.Body, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// Create refuses authors that are missing or soft-deleted.
func (r *postRepository) Create(ctx context.Context, userID int64, body string) (*domain.Post, error) {
	query := `
		INSERT INTO posts (user_id, body, created_at, updated_at)
		SELECT $1, $2, NOW(), NOW()
		WHERE EXISTS (SELECT 1 FROM users WHERE id = $1 AND ` + liveRow + `)
		RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRow(ctx, query, userID, body))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		r.log.Error("Failed to create post", "user_id", userID, "error", err)
		return nil, refine(classifyErr("create post", err), apperrors.KindNotFound, apperrors.ErrUserNotFound)
	}

	return post, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1 AND ` + liveRow

	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		r.log.Error("Failed to get post", "id", id, "error", err)
		return nil, classifyErr("get post", err)
	}

	return post, nil
}

func (r *postRepository) List(ctx context.Context, page domain.Page) (*domain.PostList, error) {
	return r.list(ctx, "list posts", liveRow, page)
}

func (r *postRepository) ListByUser(ctx context.Context, userID int64, page domain.Page) (*domain.PostList, error) {
	return r.list(ctx, "list posts by user", `user_id = $1 AND `+liveRow, page, userID)
}

// list pages through posts matching filter, whose placeholders are numbered
// from $1 in the order of filterArgs.
func (r *postRepository) list(ctx context.Context, op, filter string, page domain.Page, filterArgs ...any) (*domain.PostList, error) {
	n := len(filterArgs)
	pageQuery := fmt.Sprintf(`
		SELECT %s
		FROM posts
		WHERE %s
		ORDER BY id ASC
		LIMIT $%d OFFSET $%d
	`, postColumns, filter, n+1, n+2)
	totalQuery := `SELECT COUNT(*) FROM posts WHERE ` + filter

	pageArgs := append(append([]any{}, filterArgs...), page.Limit(), page.Offset())

	result := &domain.PostList{}
	err := pgx.BeginTxFunc(ctx, r.db, readSnapshot, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, pageQuery, pageArgs...)
		if err != nil {
			return err
		}
		result.Posts, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Post, error) {
			return scanPost(row)
		})
		if err != nil {
			return err
		}
		return tx.QueryRow(ctx, totalQuery, filterArgs...).Scan(&result.TotalCount)
	})
	if err != nil {
		r.log.Error("Failed to list posts", "error", err)
		return nil, classifyErr(op, err)
	}

	return result, nil
}

func (r *postRepository) Update(ctx context.Context, id int64, body string) (*domain.Post, error) {
	query := `
		UPDATE posts
		SET body = $2, updated_at = NOW()
		WHERE id = $1 AND ` + liveRow + `
		RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRow(ctx, query, id, body))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		r.log.Error("Failed to update post", "id", id, "error", err)
		return nil, classifyErr("update post", err)
	}

	return post, nil
}

func (r *postRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE posts
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND ` + liveRow

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete post", "id", id, "error", err)
		return false, classifyErr("delete post", err)
	}

	return tag.RowsAffected() > 0, nil
}
