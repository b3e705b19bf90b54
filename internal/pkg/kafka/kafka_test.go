package kafka

import (
	"Pinwall/internal/api/dto"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	events []dto.EngagementEvent
	err    error
}

func (r *recordingHandler) HandleEvent(_ context.Context, event dto.EngagementEvent) error {
	r.events = append(r.events, event)
	return r.err
}

func TestEventProducerPublish(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got dto.EngagementEvent
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.Type != dto.EventLike || got.PostID != 7 || got.ActorID != "u1" {
			return errors.New("unexpected payload")
		}
		return nil
	})

	p := NewEventProducerWith(sp, "pinwall.engagement")
	err := p.Publish(context.Background(), dto.EngagementEvent{
		Type: dto.EventLike, PostID: 7, ActorID: "u1", OccurredAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestEventProducerPublishFailure(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewEventProducerWith(sp, "pinwall.engagement")
	err := p.Publish(context.Background(), dto.EngagementEvent{Type: dto.EventShare, PostID: 1})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestToEngagementEvent(t *testing.T) {
	msg := &sarama.ConsumerMessage{Value: []byte(`{"type":"share","postId":3,"shareType":"copy_link"}`)}
	event, err := ToEngagementEvent(msg)
	require.NoError(t, err)
	assert.Equal(t, dto.EventShare, event.Type)
	assert.Equal(t, uint64(3), event.PostID)
	assert.Equal(t, "copy_link", event.ShareType)

	for _, raw := range []string{`not json`, `{"type":"like"}`, `{"type":"view","postId":3}`} {
		_, err = ToEngagementEvent(&sarama.ConsumerMessage{Value: []byte(raw)})
		assert.ErrorIs(t, err, ErrBadEvent, raw)
	}
}

func TestEngagementHandlerLogic(t *testing.T) {
	rec := &recordingHandler{}
	h := NewEngagementHandler(rec)

	err := h.logic(context.Background(), &sarama.ConsumerMessage{Value: []byte(`{"type":"like","postId":9,"actorId":"a"}`)})
	require.NoError(t, err)
	require.Len(t, rec.events, 1)
	assert.Equal(t, uint64(9), rec.events[0].PostID)

	err = h.logic(context.Background(), &sarama.ConsumerMessage{Value: []byte(`{}`)})
	assert.ErrorIs(t, err, ErrBadEvent)
	assert.Len(t, rec.events, 1)
}

func TestRunWithRetry(t *testing.T) {
	msg := &sarama.ConsumerMessage{Topic: "t"}

	calls := 0
	runWithRetry(context.Background(), msg, func(context.Context, *sarama.ConsumerMessage) error {
		calls++
		return ErrBadEvent
	})
	assert.Equal(t, 1, calls)

	calls = 0
	runWithRetry(context.Background(), msg, func(context.Context, *sarama.ConsumerMessage) error {
		calls++
		if calls < 3 {
			return errors.New("mongo down")
		}
		return nil
	})
	assert.Equal(t, 3, calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls = 0
	runWithRetry(ctx, msg, func(context.Context, *sarama.ConsumerMessage) error {
		calls++
		return errors.New("still down")
	})
	assert.Equal(t, 1, calls)
}
