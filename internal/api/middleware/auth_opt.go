package middleware

import (
	"Pinwall/internal/pkg/consts"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：会话有效时注入用户ID, 否则以匿名身份继续
func AuthOptionalMiddleware(auth SessionAuthenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := resolveSession(c, auth, cookieName); ok {
			c.Set(consts.UserIDKey, userID)
		}
		c.Next()
	}
}
