package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ScoredMember 有序集合成员与分数
type ScoredMember struct {
	Member string
	Score  float64
}

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if Rdb == nil {
		return ErrNotReady
	}
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// GetValue 获取字符串类型的值, key 不存在时返回空串
func GetValue(ctx context.Context, key string) (string, error) {
	if Rdb == nil {
		return "", ErrNotReady
	}
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// TryLock 设置键值对并设置过期时间
func TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	if Rdb == nil {
		return false, ErrNotReady
	}
	for i := 0; i < retryTimes || retryTimes == -1; i++ {
		success, err := Rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
	return false, nil
}

// UnLock 释放锁
func UnLock(ctx context.Context, key string, value interface{}) {
	if Rdb == nil {
		return
	}
	Rdb.Eval(ctx, "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end", []string{key}, value)
}

// ReplaceZSet 原子地用新成员替换整个有序集合并设置过期时间
func ReplaceZSet(ctx context.Context, key string, members []ScoredMember, expiration time.Duration) error {
	if Rdb == nil {
		return ErrNotReady
	}
	zs := make([]redis.Z, 0, len(members))
	for _, m := range members {
		zs = append(zs, redis.Z{Score: m.Score, Member: m.Member})
	}

	pipe := Rdb.TxPipeline()
	pipe.Del(ctx, key)
	if len(zs) > 0 {
		pipe.ZAdd(ctx, key, zs...)
		pipe.Expire(ctx, key, expiration)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// ZRevRangeWithScores 分数从高到低获取成员, key 不存在时 exists 为 false
func ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) (members []ScoredMember, exists bool, err error) {
	if Rdb == nil {
		return nil, false, ErrNotReady
	}
	pipe := Rdb.TxPipeline()
	existsCmd := pipe.Exists(ctx, key)
	rangeCmd := pipe.ZRevRangeWithScores(ctx, key, start, stop)
	if _, err = pipe.Exec(ctx); err != nil {
		return nil, false, err
	}
	if existsCmd.Val() == 0 {
		return nil, false, nil
	}

	zs := rangeCmd.Val()
	members = make([]ScoredMember, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		members = append(members, ScoredMember{Member: member, Score: z.Score})
	}
	return members, true, nil
}

// DeleteKey 删除一个或多个键
func DeleteKey(ctx context.Context, keys ...string) error {
	if Rdb == nil {
		return ErrNotReady
	}
	return Rdb.Del(ctx, keys...).Err()
}
