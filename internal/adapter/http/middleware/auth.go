package middleware

import (
	"context"
	"strings"

	"tasknotes/internal/adapter/http/helper"
	"tasknotes/internal/core/port"

	"github.com/gin-gonic/gin"
)

const UserIDKey = "x-user-id"

type userIDContextKey struct{}

// Authenticate verifies the bearer token and stores the caller id on both the
// gin context and the request context. It never touches the user store.
func Authenticate(tokens port.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" {
			helper.SendUnauthenticatedError(c, "authorization header is required")
			return
		}

		scheme, token, found := strings.Cut(bearer, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			helper.SendUnauthenticatedError(c, "invalid authorization format")
			return
		}

		userID, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			helper.SendUnauthenticatedError(c, "invalid or expired token")
			return
		}

		c.Set(UserIDKey, userID)
		c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), userID))

		c.Next()
	}
}

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDContextKey{}, userID)
}

func UserIDFrom(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDContextKey{}).(int)
	return userID, ok && userID > 0
}

// CurrentUserID reads the id set by Authenticate.
func CurrentUserID(c *gin.Context) (int, bool) {
	if userID := c.GetInt(UserIDKey); userID > 0 {
		return userID, true
	}

	return UserIDFrom(c.Request.Context())
}
