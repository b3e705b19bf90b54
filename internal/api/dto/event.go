package dto

import "time"

const (
	EventLike  = "like"
	EventShare = "share"
)

// EngagementEvent 点赞与分享事件, 经 Kafka 或进程内投递给通知服务
type EngagementEvent struct {
	Type       string    `json:"type" validate:"oneof=like share"`
	PostID     uint64    `json:"postId" validate:"required"`
	ActorID    string    `json:"actorId,omitempty"`
	ShareType  string    `json:"shareType,omitempty" validate:"max=50"`
	OccurredAt time.Time `json:"occurredAt"`
}
