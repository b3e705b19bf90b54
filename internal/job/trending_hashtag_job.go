package job

import (
	"Pinwall/internal/pkg/consts"
	"Pinwall/internal/pkg/logger"
	"Pinwall/internal/pkg/redis"
	"Pinwall/internal/service"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const trendingJobTimeout = time.Minute

type TrendingHashtagJob struct {
	hashtagService service.HashtagService
}

func NewTrendingHashtagJob(hashtagService service.HashtagService) *TrendingHashtagJob {
	return &TrendingHashtagJob{
		hashtagService: hashtagService,
	}
}

func (s *TrendingHashtagJob) Run() {
	ctx := logger.WithTraceID(context.Background(), "job-trending-"+uuid.NewString())
	ctx, cancel := context.WithTimeout(ctx, trendingJobTimeout)
	defer cancel()

	if err := s.run(ctx); err != nil {
		log.ErrorContext(ctx, "TrendingHashtagJob failed", "err", err)
	}
}

// run 多实例部署时只有拿到锁的实例执行刷新
func (s *TrendingHashtagJob) run(ctx context.Context) error {
	lockValue := uuid.NewString()
	locked, err := redis.TryLock(ctx, consts.TrendingRefreshLock, lockValue, trendingJobTimeout, 1)
	if err != nil {
		if errors.Is(err, redis.ErrNotReady) {
			log.DebugContext(ctx, "redis not ready, skip trending refresh")
			return nil
		}
		return err
	}
	if !locked {
		log.InfoContext(ctx, "trending refresh running elsewhere, skip")
		return nil
	}
	defer redis.UnLock(ctx, consts.TrendingRefreshLock, lockValue)

	start := time.Now()
	if err = s.hashtagService.RefreshTrending(ctx); err != nil {
		return err
	}
	log.InfoContext(ctx, "TrendingHashtagJob finished", "cost", time.Since(start))
	return nil
}
