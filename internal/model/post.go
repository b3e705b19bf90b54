package model

import (
	"time"
)

type Post struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      string    `gorm:"type:varchar(255);not null;index:idx_posts_user_id"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description *string   `gorm:"type:text"`
	Hashtags    *string   `gorm:"type:text"` // 原始逗号分隔字符串, 归一化结果见 post_tags
	ImageURL    string    `gorm:"type:varchar(512);not null"`
	ImageWidth  *int      `gorm:"type:integer"`
	ImageHeight *int      `gorm:"type:integer"`
	Link        *string   `gorm:"type:text"`
	NotifyEmail *string   `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"index:idx_posts_created_at"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (Post) TableName() string {
	return "posts"
}

// PostWithStats 列表查询的聚合结果行
type PostWithStats struct {
	Post       `gorm:"embedded"`
	LikesCount int64 `gorm:"column:likes_count"`
}
