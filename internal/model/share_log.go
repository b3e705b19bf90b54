package model

import "time"

// ShareLog 只追加的分享记录, post_id 不设外键, 帖子删除后记录仍保留
type ShareLog struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement"`
	PostID    uint64  `gorm:"not null;index:idx_share_logs_post_id"`
	UserID    *string `gorm:"type:varchar(255)"`
	ShareType string  `gorm:"type:varchar(50);not null;default:copy_link"`
	Referrer  *string `gorm:"type:text"`
	CreatedAt time.Time
}

func (ShareLog) TableName() string {
	return "share_logs"
}
