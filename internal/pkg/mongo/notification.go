package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const NotificationCollection = "notifications"

// NotificationModel 互动通知
type NotificationModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ReceiverID string             `bson:"user_id"`      // 帖子作者
	SenderID   string             `bson:"from_user_id"` // 匿名分享时为空
	Type       string             `bson:"type"`         // like | share
	PostID     uint64             `bson:"post_id"`
	Title      string             `bson:"title"`
	Message    string             `bson:"message"`
	IsRead     bool               `bson:"is_read"`
	CreatedAt  time.Time          `bson:"created_at"`
}
