package service

import (
	"Pinwall/internal/model"
	"Pinwall/internal/pkg/consts"
	"Pinwall/internal/pkg/redis"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTrendingFallsBackToDatabase(t *testing.T) {
	tags := &mockTagRepo{}
	svc := NewHashtagService(tags)
	ctx := context.Background()

	tags.On("TrendingHashtags", ctx, consts.TrendingCacheSize).Return([]*model.HashtagCount{
		{Name: "a", Count: 3},
		{Name: "b", Count: 1},
		{Name: "c", Count: 1},
	}, nil)

	rows, err := svc.GetTrending(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].Hashtag)
	assert.Equal(t, int64(3), rows[0].Count)
	assert.Equal(t, "b", rows[1].Hashtag)

	all, err := svc.GetTrending(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRefreshTrendingWithoutRedis(t *testing.T) {
	tags := &mockTagRepo{}
	svc := NewHashtagService(tags)
	ctx := context.Background()

	tags.On("TrendingHashtags", ctx, consts.TrendingCacheSize).Return([]*model.HashtagCount{}, nil)
	assert.ErrorIs(t, svc.RefreshTrending(ctx), redis.ErrNotReady)
	svc.InvalidateTrending(ctx)
}

func TestFromCacheOrdersTiesByName(t *testing.T) {
	members := []redis.ScoredMember{
		{Member: "z", Score: 2},
		{Member: "m", Score: 2},
		{Member: "top", Score: 5},
		{Member: "b", Score: 2},
	}
	rows := fromCache(members, 3)
	require.Len(t, rows, 3)
	assert.Equal(t, "top", rows[0].Hashtag)
	assert.Equal(t, "b", rows[1].Hashtag)
	assert.Equal(t, "m", rows[2].Hashtag)
	assert.Equal(t, int64(2), rows[2].Count)
}
