package redis

import (
	"context"
	"time"
)

// Locker 基于 Redis SETNX 的互斥锁，刷新入口用它抑制同一用户的并发抓取
type Locker struct{}

func NewLocker() *Locker {
	return &Locker{}
}

func (s *Locker) TryLock(ctx context.Context, key string, token string, ttl time.Duration) (bool, error) {
	return TryLock(ctx, key, token, ttl, 3)
}

func (s *Locker) Unlock(ctx context.Context, key string, token string) {
	UnLock(ctx, key, token)
}
