package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"messenger/pkg/errors"
	"messenger/pkg/jwt"
	"messenger/pkg/logger"
)

const UserIDKey = "user_id"

type AuthMiddleware struct {
	secret string
	issuer string
	log    logger.Logger
}

func NewAuthMiddleware(secret, issuer string, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		secret: secret,
		issuer: issuer,
		log:    log,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.reject(c, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.reject(c, "Invalid authorization header format")
			return
		}

		claims, err := jwt.ValidateToken(parts[1], m.secret, m.issuer)
		if err != nil {
			m.log.Debug("Token rejected", "error", err, "request_id", c.GetString(RequestIDKey))
			m.reject(c, "Invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

func (m *AuthMiddleware) reject(c *gin.Context, reason string) {
	_ = c.Error(errors.ErrUnauthorized).SetMeta(reason)
	c.Abort()
}
