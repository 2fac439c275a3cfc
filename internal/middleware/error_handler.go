package middleware

import (
	"github.com/gin-gonic/gin"
	"messenger/pkg/errors"
	"messenger/pkg/logger"
)

// ErrorHandler renders the last error pushed with c.Error as
// {"error": msg, "code": kind}, unless a handler already wrote a body.
// A string set as the error's Meta replaces the public message.
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		last := c.Errors.Last()
		err := last.Err
		statusCode := errors.HTTPStatusFromError(err)

		if statusCode >= 500 {
			log.Error("Request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"request_id", c.GetString(RequestIDKey),
				"error", err,
			)
		}

		if c.Writer.Written() {
			return
		}

		message := errors.PublicMessage(err)
		if reason, ok := last.Meta.(string); ok && reason != "" {
			message = reason
		}

		c.JSON(statusCode, gin.H{
			"error": message,
			"code":  codeOf(err),
		})
	}
}

func codeOf(err error) string {
	switch {
	case errors.Is(err, errors.ErrUnauthorized):
		return "UNAUTHENTICATED"
	case errors.Is(err, errors.ErrForbidden):
		return "PERMISSION_DENIED"
	case errors.Is(err, errors.ErrRateLimitReached):
		return "RESOURCE_EXHAUSTED"
	}
	return string(errors.KindOf(err))
}
