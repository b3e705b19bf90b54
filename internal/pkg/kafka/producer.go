package kafka

import (
	"Pinwall/internal/api/config"
	"Pinwall/internal/api/dto"
	"context"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// EventProducer 将互动事件写入 Kafka
type EventProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewEventProducer(cfg config.KafkaConfig) (*EventProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, err
	}
	return NewEventProducerWith(producer, cfg.Topic), nil
}

func NewEventProducerWith(producer sarama.SyncProducer, topic string) *EventProducer {
	return &EventProducer{producer: producer, topic: topic}
}

// Publish 以帖子ID为 key, 同一帖子的事件落在同一分区
func (p *EventProducer) Publish(ctx context.Context, event dto.EngagementEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(event.PostID, 10)),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "engagement event published",
		"type", event.Type, "post_id", event.PostID, "partition", partition, "offset", offset)
	return nil
}

func (p *EventProducer) Close() error {
	return p.producer.Close()
}
