package middleware

import (
	"github.com/gin-gonic/gin"
)

// CacheControl 为静态资源设置缓存头
func CacheControl(value string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}
