package cache

import (
	"context"
	"sync"
	"time"

	"Linkstone/internal/model"
)

// MemoryStore 纯内存实现
// 本地存储打不开时的降级方案，也是测试里控制时间的入口
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]envelope
	ttl     time.Duration
	now     Clock
}

func NewMemoryStore(ttl time.Duration, clock Clock) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = time.Now
	}
	return &MemoryStore{
		entries: make(map[string]envelope),
		ttl:     ttl,
		now:     clock,
	}
}

func (s *MemoryStore) Get(ctx context.Context, platform string, handle string) (*model.PlatformAnalytics, bool) {
	key := cacheKey(platform, handle)

	s.mu.RLock()
	env, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !s.now().Before(env.ExpiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}

	return env.Record, true
}

func (s *MemoryStore) Has(ctx context.Context, platform string, handle string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	env, ok := s.entries[cacheKey(platform, handle)]
	if !ok {
		return false
	}
	return s.now().Before(env.ExpiresAt)
}

func (s *MemoryStore) Set(ctx context.Context, platform string, handle string, record *model.PlatformAnalytics) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[cacheKey(platform, handle)] = envelope{
		Record:    record,
		CachedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
}

func (s *MemoryStore) Delete(ctx context.Context, platform string, handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, cacheKey(platform, handle))
}

func (s *MemoryStore) Close() error {
	return nil
}
