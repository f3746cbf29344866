package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/umeshkhanal/rumooz/internal/logger"
	appErrors "github.com/umeshkhanal/rumooz/pkg/errors"
	"github.com/umeshkhanal/rumooz/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	AdminIDKey  = "adminID"
	UsernameKey = "username"
)

// Authenticator resolves a raw bearer token to the admin it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (adminID uint, username string, err error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, rawToken string) (uint, string, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, rawToken string) (uint, string, error) {
	return f(ctx, rawToken)
}

func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		adminID, username, err := auth.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			if !errors.Is(err, appErrors.ErrInvalidToken) {
				logger.WithRequestID(GetRequestID(c)).Error("Token authentication failed", zap.Error(err))
				utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
				c.Abort()
				return
			}
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(AdminIDKey, adminID)
		c.Set(UsernameKey, username)

		c.Next()
	}
}

// GetAdminID returns the authenticated admin set by AuthMiddleware.
func GetAdminID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(AdminIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
