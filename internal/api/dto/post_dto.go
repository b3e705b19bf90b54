package dto

import "time"

// PostDTO 帖子详情, 附带作者信息与点赞聚合
type PostDTO struct {
	ID          uint64    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Hashtags    *string   `json:"hashtags"`
	ImageURL    string    `json:"imageUrl"`
	ImageWidth  *int      `json:"imageWidth,omitempty"`
	ImageHeight *int      `json:"imageHeight,omitempty"`
	Link        *string   `json:"link"`
	NotifyEmail *string   `json:"notifyEmail,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`

	User       *UserDTO `json:"user"`
	LikesCount int64    `json:"likesCount"`
	IsLiked    bool     `json:"isLiked"`
}

// CreatePostDTO 发帖表单字段, 图片通过 multipart 的 image 字段上传
type CreatePostDTO struct {
	Title       string `form:"title" binding:"required,max=255"`
	Description string `form:"description" binding:"max=10000"`
	Hashtags    string `form:"hashtags" binding:"max=2048"`
	Link        string `form:"link" binding:"max=2048"`
	NotifyEmail string `form:"notifyEmail" binding:"omitempty,email,max=255"`
}

// MyPostQuery 我的帖子查询参数
type MyPostQuery struct {
	PageQuery
	UserID string `form:"userId"`
}

// ImageUpload 上传的图片文件
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}

