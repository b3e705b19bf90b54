package middleware

import (
	"Pinwall/internal/pkg/consts"
	"Pinwall/internal/pkg/response"
	"context"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionAuthenticator 根据会话 ID 解析用户
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, sid string) (string, error)
}

// AuthMiddleware 校验会话 Cookie 并将用户ID注入 Context
func AuthMiddleware(auth SessionAuthenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := resolveSession(c, auth, cookieName)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		c.Set(consts.UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID 当前登录用户, 未登录时为空串
func CurrentUserID(c *gin.Context) string {
	return c.GetString(consts.UserIDKey)
}

func resolveSession(c *gin.Context, auth SessionAuthenticator, cookieName string) (string, bool) {
	sid, err := c.Cookie(cookieName)
	if err != nil || sid == "" {
		return "", false
	}
	userID, err := auth.Authenticate(c.Request.Context(), sid)
	if err != nil {
		log.DebugContext(c.Request.Context(), "session rejected", "err", err)
		return "", false
	}
	return userID, true
}
