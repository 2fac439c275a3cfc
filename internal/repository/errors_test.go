package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	apperrors "messenger/pkg/errors"
)

func TestErrors_ClassifyErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.Kind
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: apperrors.KindAlreadyExists},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: apperrors.KindNotFound},
		{name: "not null violation", err: &pgconn.PgError{Code: "23502"}, want: apperrors.KindInvalidArgument},
		{name: "invalid text representation", err: &pgconn.PgError{Code: "22P02"}, want: apperrors.KindInvalidArgument},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, want: apperrors.KindUnavailable},
		{name: "admin shutdown", err: &pgconn.PgError{Code: "57P01"}, want: apperrors.KindUnavailable},
		{name: "syntax error", err: &pgconn.PgError{Code: "42601"}, want: apperrors.KindInternal},
		{name: "canceled", err: fmt.Errorf("acquire: %w", context.Canceled), want: apperrors.KindUnavailable},
		{name: "deadline", err: context.DeadlineExceeded, want: apperrors.KindUnavailable},
		{name: "unknown", err: errors.New("boom"), want: apperrors.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyErr("op", tt.err)
			assert.Equal(t, tt.want, apperrors.KindOf(got))
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassifyErr_PassesThroughAppErrors(t *testing.T) {
	assert.Nil(t, classifyErr("op", nil))
	assert.Same(t, apperrors.ErrReactionExists, classifyErr("op", apperrors.ErrReactionExists))
}

func TestErrors_Refine(t *testing.T) {
	cause := &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email_live"}
	err := refine(classifyErr("create user", cause), apperrors.KindAlreadyExists, apperrors.ErrEmailTaken)

	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	assert.Equal(t, "email already in use", apperrors.PublicMessage(err))
	assert.Equal(t, "idx_users_email_live", violatedConstraint(err))

	// other kinds are left alone
	internal := classifyErr("op", errors.New("boom"))
	assert.Same(t, internal, refine(internal, apperrors.KindAlreadyExists, apperrors.ErrEmailTaken))
}
