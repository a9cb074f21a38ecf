// internal/auth/context.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VitaminP8/yatube/internal/apperr"
	"github.com/VitaminP8/yatube/internal/permission"
)

type contextKey string

const userIDKey = contextKey("userID")

// Сохраняет userID в контексте
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Достает userID из контекста
func GetUserIDFromContext(ctx context.Context) (uint, error) {
	val := ctx.Value(userIDKey)
	id, ok := val.(uint)
	if !ok {
		return 0, errors.New("user ID not found in context")
	}
	return id, nil
}

// ActorFromContext returns the authenticated caller, or permission.Anonymous.
func ActorFromContext(ctx context.Context) permission.Actor {
	id, err := GetUserIDFromContext(ctx)
	if err != nil {
		return permission.Anonymous
	}
	return permission.Actor{ID: id, Authenticated: true}
}

// Middleware resolves the Bearer access token into a userID in the request context.
// Requests without a token pass through as anonymous; a bad token is rejected.
func Middleware(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		tokenStr := extractTokenFromHeader(header)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperr.Unauthenticated(apperr.MsgInvalidToken).Fields)
			return
		}

		claims, err := tokens.Parse(tokenStr, AccessToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperr.Unauthenticated(apperr.MsgInvalidToken).Fields)
			return
		}

		c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

func extractTokenFromHeader(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// RequireAuth rejects anonymous callers before the body is read. With readsOpen
// safe methods pass through and are left to the object policy.
func RequireAuth(readsOpen bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if readsOpen && isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}
		if !ActorFromContext(c.Request.Context()).Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperr.Unauthenticated(apperr.MsgNotAuthenticated).Fields)
			return
		}
		c.Next()
	}
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}
