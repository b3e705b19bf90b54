package dto

import "time"

// NotificationDTO 通知返回对象
type NotificationDTO struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	PostID     uint64    `json:"postId"`
	FromUserID string    `json:"fromUserId"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UnreadCountDTO 未读数返回
type UnreadCountDTO struct {
	UnreadCount int64 `json:"unreadCount"`
}
