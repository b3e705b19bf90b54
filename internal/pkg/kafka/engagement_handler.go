package kafka

import (
	"Pinwall/internal/api/dto"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// EventHandler 消费到的事件交给通知服务处理
type EventHandler interface {
	HandleEvent(ctx context.Context, event dto.EngagementEvent) error
}

type EngagementHandler struct {
	handler EventHandler
}

func NewEngagementHandler(handler EventHandler) *EngagementHandler {
	return &EngagementHandler{handler: handler}
}

func (s *EngagementHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("engagement consumer setup")
	return nil
}

func (s *EngagementHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("engagement consumer cleanup")
	return nil
}

func (s *EngagementHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("engagement consume claim", "topic", claim.Topic(), "partition", claim.Partition())
	return pullMessageBatch(session, claim, s.logic)
}

func (s *EngagementHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := ToEngagementEvent(msg)
	if err != nil {
		return err
	}
	return s.handler.HandleEvent(ctx, *event)
}
