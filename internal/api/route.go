package api

import (
	"Pinwall/internal/api/dto"
	"Pinwall/internal/api/middleware"
	"Pinwall/internal/pkg/consts"
	"Pinwall/internal/pkg/logger"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, opts RouterOptions) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		log.Warn("invalid trusted proxies", "err", err)
	}

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	if opts.UploadDir != "" {
		r.Use(middleware.AuditMiddleware(opts.UploadURLPrefix))
	} else {
		r.Use(middleware.AuditMiddleware())
	}
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)
	r.Use(middleware.BaseURLMiddleware(opts.PublicURL))

	if opts.UploadDir != "" {
		static := r.Group(opts.UploadURLPrefix)
		static.Use(middleware.CacheControl(consts.UploadCacheControl))
		static.Static("/", opts.UploadDir)
	}

	authRequired := middleware.AuthMiddleware(opts.Authenticator, opts.SessionCookie)
	authOptional := middleware.AuthOptionalMiddleware(opts.Authenticator, opts.SessionCookie)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, dto.Response{
				Code:    http.StatusOK,
				Message: "pong",
			})
		})

		// 登录流程
		apiGroup.GET("/login", group.AuthHandler.Login)
		apiGroup.GET("/callback", group.AuthHandler.Callback)
		apiGroup.GET("/logout", group.AuthHandler.Logout)
		apiGroup.GET("/auth/user", authRequired, group.AuthHandler.GetCurrentUser)

		apiGroup.GET("/trending_hashtags", group.HashtagHandler.GetTrending)

		authOptGroup := apiGroup.Group("")
		authOptGroup.Use(authOptional)
		{
			authOptGroup.GET("/posts", group.PostHandler.GetPosts)
			authOptGroup.GET("/posts/:id", group.PostHandler.GetPost)
			authOptGroup.GET("/my_post", group.PostHandler.GetMyPosts)
			authOptGroup.GET("/shared/:token", group.PostHandler.GetSharedPost)
			authOptGroup.POST("/posts/:id/share", group.PostActionHandler.SharePost)
		}

		authGroup := apiGroup.Group("")
		authGroup.Use(authRequired)
		{
			authGroup.POST("/posts", group.PostHandler.CreatePost)
			authGroup.DELETE("/posts/:id", group.PostHandler.DeletePost)
			authGroup.POST("/posts/:id/like", group.PostActionHandler.ToggleLike)
		}

		notificationGroup := apiGroup.Group("/notifications")
		notificationGroup.Use(authRequired)
		{
			notificationGroup.GET("", group.NotificationHandler.GetNotifications)
			notificationGroup.GET("/unread_count", group.NotificationHandler.GetUnreadCount)
			notificationGroup.POST("/:id/read", group.NotificationHandler.MarkRead)
			notificationGroup.POST("/read_all", group.NotificationHandler.MarkAllRead)
		}
	}

	return r
}
