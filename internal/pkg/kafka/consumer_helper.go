package kafka

import (
	"Pinwall/internal/api/dto"
	"Pinwall/internal/pkg/util"
	"context"
	"errors"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

const (
	batchSize     = 32
	batchTimeout  = 1 * time.Second
	maxRetries    = 5
	maxRetryDelay = 5 * time.Second
)

// ErrBadEvent 消息无法解析, 不再重试
var ErrBadEvent = errors.New("malformed engagement event")

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch 拉取一批消息并执行业务逻辑
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					processBatch(session, batch, logic)
				}
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 并发处理一批消息, 全部结束后提交最后一条的位移
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	var wg sync.WaitGroup

	for _, msg := range messages {
		wg.Add(1)

		go func(m *sarama.ConsumerMessage) {
			defer wg.Done()
			runWithRetry(session.Context(), m, logic)
		}(msg)
	}

	wg.Wait()

	if len(messages) > 0 {
		session.MarkMessage(messages[len(messages)-1], "")
	}
}

// runWithRetry 指数退避重试, 达到上限或遇到不可恢复错误时放弃该消息
func runWithRetry(ctx context.Context, m *sarama.ConsumerMessage, logic LogicFunc) {
	retryInterval := 100 * time.Millisecond

	for attempt := 1; ; attempt++ {
		err := logic(ctx, m)
		if err == nil {
			return
		}
		if errors.Is(err, ErrBadEvent) || attempt >= maxRetries {
			log.ErrorContext(ctx, "drop kafka message",
				"topic", m.Topic, "partition", m.Partition, "offset", m.Offset, "attempts", attempt, "err", err)
			return
		}

		log.WarnContext(ctx, "process message error", "attempt", attempt, "err", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(retryInterval):
		}

		retryInterval *= 2
		if retryInterval > maxRetryDelay {
			retryInterval = maxRetryDelay
		}
	}
}

// ToEngagementEvent 将 kafka 消息转换为互动事件
func ToEngagementEvent(msg *sarama.ConsumerMessage) (*dto.EngagementEvent, error) {
	var event dto.EngagementEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return nil, errors.Join(ErrBadEvent, err)
	}
	if err := util.ValidateDTO(&event); err != nil {
		return nil, errors.Join(ErrBadEvent, err)
	}
	return &event, nil
}
