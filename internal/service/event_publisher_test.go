package service

import (
	"Pinwall/internal/api/dto"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanHandler struct {
	got chan dto.EngagementEvent
}

func (h *chanHandler) HandleEvent(ctx context.Context, event dto.EngagementEvent) error {
	h.got <- event
	return ctx.Err()
}

func TestInlinePublisherOutlivesRequest(t *testing.T) {
	h := &chanHandler{got: make(chan dto.EngagementEvent, 1)}
	pub := NewInlinePublisher(h)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, pub.Publish(ctx, dto.EngagementEvent{Type: dto.EventLike, PostID: 8}))
	cancel()

	select {
	case event := <-h.got:
		assert.Equal(t, uint64(8), event.PostID)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not handled")
	}
}

func TestStatusOf(t *testing.T) {
	code, ok := StatusOf(ErrPostForbidden)
	assert.True(t, ok)
	assert.Equal(t, 403, code)

	code, ok = StatusOf(errors.Join(ErrPostNotFound, context.Canceled))
	assert.True(t, ok)
	assert.Equal(t, 404, code)

	_, ok = StatusOf(context.DeadlineExceeded)
	assert.False(t, ok)
}
