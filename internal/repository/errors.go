package repository

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
	apperrors "messenger/pkg/errors"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgTooManyConnections  = "53300"
)

// classifyErr turns a pgx/pgconn failure into an AppError. Errors that
// already carry a Kind pass through untouched.
func classifyErr(op string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	cause := pkgerrors.Wrap(err, op)

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Unavailable("request canceled before the database answered", cause)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return apperrors.Wrap(apperrors.KindAlreadyExists, "record already exists", cause)
		case pgErr.Code == pgForeignKeyViolation:
			return apperrors.Wrap(apperrors.KindNotFound, "referenced record not found", cause)
		case pgErr.Code == pgNotNullViolation, pgErr.Code == pgCheckViolation, strings.HasPrefix(pgErr.Code, "22"):
			return apperrors.Wrap(apperrors.KindInvalidArgument, "invalid value", cause)
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "57P"), pgErr.Code == pgTooManyConnections:
			return apperrors.Unavailable("database unavailable", cause)
		}
		return apperrors.Internal("database error", cause)
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connectErr) || errors.As(err, &netErr) || pgconn.Timeout(err) {
		return apperrors.Unavailable("database unavailable", cause)
	}

	return apperrors.Internal("database error", cause)
}

// refine replaces the generic message of a classified error of the given
// kind with the sentinel's message, keeping the cause.
func refine(err error, kind apperrors.Kind, sentinel error) error {
	if err == nil || apperrors.KindOf(err) != kind {
		return err
	}
	return apperrors.Wrap(kind, apperrors.PublicMessage(sentinel), errors.Unwrap(err))
}

// violatedConstraint returns the constraint named by an underlying
// PostgreSQL error, or "" when there is none.
func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
