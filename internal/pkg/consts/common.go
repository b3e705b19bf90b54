package consts

const (
	// UserIDKey gin.Context 与请求 Context 中保存当前登录用户的 key
	UserIDKey = "user_id"
	// BaseURL 请求 Context 中保存站点根地址的 key
	BaseURL = "base_url"
)

const (
	// TrendingCacheSize 缓存中保留的热门话题数量
	TrendingCacheSize = 100
)

const (
	UploadCacheControl = "public, max-age=31536000"
)
