package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"messenger/internal/domain"
	apperrors "messenger/pkg/errors"
	"messenger/pkg/logger"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, page domain.Page) (*domain.UserList, error)
	Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type userRepository struct {
	db  DB
	log logger.Logger
}

func NewUserRepository(db DB, log logger.Logger) UserRepository {
	return &userRepository{db: db, log: log}
}

const userColumns = `id, name, email, description, age, gender, address, created_at, updated_at, deleted_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Description, &u.Age, &u.Gender, &u.Address,
		&u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (name, email, description, age, gender, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.Name, user.Email, user.Description, user.Age, user.Gender, user.Address,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		classified := refine(classifyErr("create user", err), apperrors.KindAlreadyExists, apperrors.ErrEmailTaken)
		if errors.Is(classified, apperrors.ErrEmailTaken) {
			r.log.Warn("User already exists (unique violation)", "email", user.Email)
		} else {
			r.log.Error("Failed to create user", "email", user.Email, "error", err)
		}
		return classified
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND ` + liveRow

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		r.log.Error("Failed to get user", "id", id, "error", err)
		return nil, classifyErr("get user", err)
	}

	return user, nil
}

func (r *userRepository) List(ctx context.Context, page domain.Page) (*domain.UserList, error) {
	pageQuery := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ` + liveRow + `
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`
	totalQuery := `SELECT COUNT(*) FROM users WHERE ` + liveRow

	result := &domain.UserList{}
	err := pgx.BeginTxFunc(ctx, r.db, readSnapshot, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, pageQuery, page.Limit(), page.Offset())
		if err != nil {
			return err
		}
		result.Users, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.User, error) {
			return scanUser(row)
		})
		if err != nil {
			return err
		}
		return tx.QueryRow(ctx, totalQuery).Scan(&result.TotalCount)
	})
	if err != nil {
		r.log.Error("Failed to list users", "error", err)
		return nil, classifyErr("list users", err)
	}

	return result, nil
}

// Update changes only the non-nil fields of update.
func (r *userRepository) Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($2, name),
			email = COALESCE($3, email),
			description = COALESCE($4, description),
			age = COALESCE($5, age),
			gender = COALESCE($6, gender),
			address = COALESCE($7, address),
			updated_at = NOW()
		WHERE id = $1 AND ` + liveRow + `
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query,
		id, update.Name, update.Email, update.Description, update.Age, update.Gender, update.Address,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		r.log.Error("Failed to update user", "id", id, "error", err)
		return nil, refine(classifyErr("update user", err), apperrors.KindAlreadyExists, apperrors.ErrEmailTaken)
	}

	return user, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE users
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND ` + liveRow

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete user", "id", id, "error", err)
		return false, classifyErr("delete user", err)
	}

	return tag.RowsAffected() > 0, nil
}
