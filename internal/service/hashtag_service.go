package service

import (
	"Pinwall/internal/api/dto"
	"Pinwall/internal/model"
	"Pinwall/internal/pkg/consts"
	"Pinwall/internal/pkg/redis"
	"Pinwall/internal/pkg/util"
	"Pinwall/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"sort"
	"time"
)

// trendingCacheTTL 略长于刷新周期, 刷新任务失败时缓存自然过期
const trendingCacheTTL = 15 * time.Minute

type HashtagService interface {
	GetTrending(ctx context.Context, limit int) ([]*dto.HashtagCountDTO, error)
	RefreshTrending(ctx context.Context) error
	InvalidateTrending(ctx context.Context)
}

type hashtagServiceImpl struct {
	tagRepo repository.TagRepo
}

func NewHashtagService(tagRepo repository.TagRepo) HashtagService {
	return &hashtagServiceImpl{tagRepo: tagRepo}
}

// GetTrending 优先读 Redis 有序集合, 未命中或 Redis 不可用时查库并回填
func (s *hashtagServiceImpl) GetTrending(ctx context.Context, limit int) ([]*dto.HashtagCountDTO, error) {
	limit, _ = util.NormalizePage(limit, 0)

	members, exists, err := redis.ZRevRangeWithScores(ctx, consts.TrendingHashtagKey, 0, -1)
	if err == nil && exists {
		return fromCache(members, limit), nil
	}
	if err != nil && !errors.Is(err, redis.ErrNotReady) {
		log.WarnContext(ctx, "read trending cache failed", "err", err)
	}

	rows, err := s.tagRepo.TrendingHashtags(ctx, consts.TrendingCacheSize)
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, rows)

	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]*dto.HashtagCountDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, &dto.HashtagCountDTO{Hashtag: r.Name, Count: r.Count})
	}
	return out, nil
}

// RefreshTrending 定时任务调用, 重新计算并整体替换缓存
func (s *hashtagServiceImpl) RefreshTrending(ctx context.Context) error {
	rows, err := s.tagRepo.TrendingHashtags(ctx, consts.TrendingCacheSize)
	if err != nil {
		return err
	}
	return redis.ReplaceZSet(ctx, consts.TrendingHashtagKey, toMembers(rows), trendingCacheTTL)
}

func (s *hashtagServiceImpl) InvalidateTrending(ctx context.Context) {
	if err := redis.DeleteKey(ctx, consts.TrendingHashtagKey); err != nil && !errors.Is(err, redis.ErrNotReady) {
		log.WarnContext(ctx, "invalidate trending cache failed", "err", err)
	}
}

func (s *hashtagServiceImpl) writeCache(ctx context.Context, rows []*model.HashtagCount) {
	if len(rows) == 0 {
		return
	}
	err := redis.ReplaceZSet(ctx, consts.TrendingHashtagKey, toMembers(rows), trendingCacheTTL)
	if err != nil && !errors.Is(err, redis.ErrNotReady) {
		log.WarnContext(ctx, "write trending cache failed", "err", err)
	}
}

func toMembers(rows []*model.HashtagCount) []redis.ScoredMember {
	members := make([]redis.ScoredMember, 0, len(rows))
	for _, r := range rows {
		members = append(members, redis.ScoredMember{Member: r.Name, Score: float64(r.Count)})
	}
	return members
}

// fromCache ZREVRANGE 对同分成员按字典序倒排, 这里改回数量倒序、名称升序
func fromCache(members []redis.ScoredMember, limit int) []*dto.HashtagCountDTO {
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Score != members[j].Score {
			return members[i].Score > members[j].Score
		}
		return members[i].Member < members[j].Member
	})
	if len(members) > limit {
		members = members[:limit]
	}
	out := make([]*dto.HashtagCountDTO, 0, len(members))
	for _, m := range members {
		out = append(out, &dto.HashtagCountDTO{Hashtag: m.Member, Count: int64(m.Score)})
	}
	return out
}
