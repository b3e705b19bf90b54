package service

import (
	"Pinwall/internal/api/dto"
	"context"
	log "log/slog"
	"time"
)

const inlineEventTimeout = 5 * time.Second

// EventPublisher 互动事件投递, Kafka 关闭时使用进程内实现
type EventPublisher interface {
	Publish(ctx context.Context, event dto.EngagementEvent) error
}

type EventHandler interface {
	HandleEvent(ctx context.Context, event dto.EngagementEvent) error
}

type inlinePublisher struct {
	handler EventHandler
}

func NewInlinePublisher(handler EventHandler) EventPublisher {
	return &inlinePublisher{handler: handler}
}

// Publish 脱离请求生命周期异步处理, 不阻塞接口响应
func (p *inlinePublisher) Publish(ctx context.Context, event dto.EngagementEvent) error {
	bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), inlineEventTimeout)
	go func() {
		defer cancel()
		if err := p.handler.HandleEvent(bg, event); err != nil {
			log.WarnContext(bg, "inline event handling failed", "type", event.Type, "post_id", event.PostID, "err", err)
		}
	}()
	return nil
}

// publishQuietly 事件投递失败只记录日志, 不影响主流程
func publishQuietly(ctx context.Context, publisher EventPublisher, event dto.EngagementEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.WarnContext(ctx, "publish engagement event failed", "type", event.Type, "post_id", event.PostID, "err", err)
	}
}
