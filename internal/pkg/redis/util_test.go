package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHelpersWithoutClient(t *testing.T) {
	Rdb = nil
	ctx := context.Background()

	assert.ErrorIs(t, SetWithExpiration(ctx, "k", "v", time.Minute), ErrNotReady)

	_, err := GetValue(ctx, "k")
	assert.ErrorIs(t, err, ErrNotReady)

	_, exists, err := ZRevRangeWithScores(ctx, "k", 0, 10)
	assert.False(t, exists)
	assert.ErrorIs(t, err, ErrNotReady)

	assert.ErrorIs(t, ReplaceZSet(ctx, "k", []ScoredMember{{Member: "a", Score: 1}}, time.Minute), ErrNotReady)
	assert.ErrorIs(t, DeleteKey(ctx, "k"), ErrNotReady)

	ok, err := TryLock(ctx, "lock", "1", time.Second, 1)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrNotReady)

	assert.NoError(t, Close())
}
