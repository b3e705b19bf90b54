package model

import "time"

// Session 服务端会话, sid 保存在 HttpOnly Cookie 中
type Session struct {
	SID       string    `gorm:"primaryKey;type:varchar(64)"`
	UserID    string    `gorm:"type:varchar(255);not null;index:idx_sessions_user_id"`
	ExpiresAt time.Time `gorm:"not null;index:idx_sessions_expires_at"`
	CreatedAt time.Time
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
