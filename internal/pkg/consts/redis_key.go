package consts

const (
	SessionKey         = "session:"
	TrendingHashtagKey = "hashtag:trending"
)

const (
	TrendingRefreshLock = "lock:hashtag:trending"
)
