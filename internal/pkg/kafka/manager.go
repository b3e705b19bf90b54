package kafka

import (
	"Pinwall/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理互动事件消费者
type ConsumerManager struct {
	consumer sarama.ConsumerGroup
	handler  sarama.ConsumerGroupHandler
	topic    string
}

func NewConsumerManager(cfg config.KafkaConfig, handler EventHandler) (*ConsumerManager, error) {
	consumer, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, newSaramaConfig(cfg))
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		consumer: consumer,
		handler:  NewEngagementHandler(handler),
		topic:    cfg.Topic,
	}, nil
}

// Start 阻塞消费直到 ctx 取消
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		for err := range m.consumer.Errors() {
			log.Error("Kafka consumer error", "err", err)
		}
	}()

	go func() {
		log.Info("Engagement consumer started", "topic", m.topic)
		for {
			if err := m.consumer.Consume(ctx, []string{m.topic}, m.handler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.consumer.Close(); err != nil {
		log.Error("Failed to close engagement consumer", "err", err)
	}
	return nil
}
