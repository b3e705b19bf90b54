package model

import (
	"time"
)

// Like 同一用户对同一帖子至多一条, 由唯一索引保证
type Like struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_likes_user_post,priority:1"`
	PostID    uint64    `gorm:"not null;uniqueIndex:idx_likes_user_post,priority:2;index:idx_likes_post_id"`
	CreatedAt time.Time

	Post *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Like) TableName() string {
	return "likes"
}
