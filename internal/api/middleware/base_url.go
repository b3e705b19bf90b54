package middleware

import (
	"Pinwall/internal/pkg/consts"
	"strings"

	"github.com/gin-gonic/gin"
)

// BaseURLMiddleware 确定站点根地址, 优先使用配置的公开地址
func BaseURLMiddleware(publicURL string) gin.HandlerFunc {
	publicURL = strings.TrimRight(publicURL, "/")
	return func(c *gin.Context) {
		baseURL := publicURL
		if baseURL == "" {
			scheme := "http"
			if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
				scheme = "https"
			}
			host := c.GetHeader("X-Forwarded-Host")
			if host == "" {
				host = c.Request.Host
			}
			baseURL = scheme + "://" + host
		}

		c.Set(consts.BaseURL, baseURL)
		c.Next()
	}
}

func BaseURL(c *gin.Context) string {
	return c.GetString(consts.BaseURL)
}
