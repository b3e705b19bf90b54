package api

import (
	"Pinwall/internal/api/handler"
	"Pinwall/internal/api/middleware"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	PostHandler         *handler.PostHandler
	PostActionHandler   *handler.PostActionHandler
	HashtagHandler      *handler.HashtagHandler
	AuthHandler         *handler.AuthHandler
	NotificationHandler *handler.NotificationHandler
}

// RouterOptions 路由层依赖的会话与静态资源设置
type RouterOptions struct {
	Authenticator  middleware.SessionAuthenticator
	SessionCookie  string
	PublicURL      string
	TrustedProxies []string
	// UploadDir 非空时以 UploadURLPrefix 提供本地图片静态访问
	UploadDir       string
	UploadURLPrefix string
}
