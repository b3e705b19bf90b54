package dto

// LikeToggleDTO 点赞切换结果
type LikeToggleDTO struct {
	IsLiked    bool  `json:"isLiked"`
	LikesCount int64 `json:"likesCount"`
}

// ShareReq 分享请求体, 字段均可省略
type ShareReq struct {
	ShareType string `json:"shareType" binding:"max=50"`
	Referrer  string `json:"referrer" binding:"max=2048"`
}

// ShareDTO 分享结果
type ShareDTO struct {
	ShareURL string `json:"shareUrl"`
}

// HashtagCountDTO 热门话题
type HashtagCountDTO struct {
	Hashtag string `json:"hashtag"`
	Count   int64  `json:"count"`
}
