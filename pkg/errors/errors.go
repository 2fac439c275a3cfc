package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindNotFound        Kind = "NOT_FOUND"
	KindAlreadyExists   Kind = "ALREADY_EXISTS"
	KindUnavailable     Kind = "UNAVAILABLE"
	KindInternal        Kind = "INTERNAL"
)

var (
	ErrNoReadSelector       = InvalidArgument("message_id, message_ids or from_user_id/to_user_id must be provided")
	ErrInvalidPage          = InvalidArgument("page must be greater than zero")
	ErrInvalidPerPage       = InvalidArgument("per_page must be between 1 and 100")
	ErrMessageNotFound      = NotFound("message not found")
	ErrUserNotFound         = NotFound("user not found")
	ErrPostNotFound         = NotFound("post not found")
	ErrReactionTypeNotFound = NotFound("reaction type not found")
	ErrReactionExists       = AlreadyExists("reaction already exists")
	ErrEmailTaken           = AlreadyExists("email already in use")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("caller may not act for this user")
	ErrRateLimitReached     = errors.New("rate limit exceeded")
)

// AppError carries a Kind so callers can map failures to transport codes
// without inspecting driver errors.
type AppError struct {
	Kind    Kind   `json:"code"`
	Message string `json:"error"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches two AppErrors of the same kind and message, so sentinel
// values still match after being wrapped with a cause.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func New(kind Kind, message string) error {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) error {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

func InvalidArgument(msg string) error {
	return New(KindInvalidArgument, msg)
}

func NotFound(msg string) error {
	return New(KindNotFound, msg)
}

func AlreadyExists(msg string) error {
	return New(KindAlreadyExists, msg)
}

func Unavailable(msg string, cause error) error {
	return Wrap(KindUnavailable, msg, cause)
}

func Internal(msg string, cause error) error {
	return Wrap(KindInternal, msg, cause)
}

// KindOf returns the Kind of the first AppError in err's chain.
// Errors without one are Internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// PublicMessage is the message safe to return to a caller. Causes of
// internal and unavailable errors are not exposed.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrRateLimitReached) {
		return err.Error()
	}
	return "internal server error"
}

func HTTPStatusFromError(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrRateLimitReached):
		return http.StatusTooManyRequests
	}

	switch KindOf(err) {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAlreadyExists:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Is and As mirror the standard library so callers need a single errors import.
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }
