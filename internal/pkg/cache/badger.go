package cache

import (
	"context"
	"errors"
	log "log/slog"
	"time"

	"Linkstone/internal/model"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// BadgerStore 基于 Badger 的持久化新鲜度缓存
// 进程重启后快照仍然有效，启动时会主动清掉已过期的条目
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
	now Clock
}

func NewBadgerStore(dir string, ttl time.Duration, clock Clock) (*BadgerStore, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = time.Now
	}

	opts := badger.DefaultOptions(dir).
		WithLogger(nil).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	s := &BadgerStore{db: db, ttl: ttl, now: clock}
	s.evictExpired()
	return s, nil
}

// evictExpired 启动时全量扫描，淘汰快照里已过期的条目
// Badger 自身的条目 TTL 只是兜底，快照可能是在很久以前写入的
func (s *BadgerStore) evictExpired() {
	var stale [][]byte
	now := s.now()

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			expired := false
			err := item.Value(func(val []byte) error {
				var env envelope
				if err := json.Unmarshal(val, &env); err != nil {
					expired = true
					return nil
				}
				expired = !now.Before(env.ExpiresAt)
				return nil
			})
			if err != nil {
				continue
			}
			if expired {
				stale = append(stale, item.KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		log.Warn("cache snapshot scan failed", "err", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Warn("cache snapshot eviction failed", "err", err)
		return
	}
	log.Info("cache snapshot loaded", "evicted", len(stale))
}

func (s *BadgerStore) Get(ctx context.Context, platform string, handle string) (*model.PlatformAnalytics, bool) {
	key := []byte(cacheKey(platform, handle))

	var env envelope
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &env)
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			log.WarnContext(ctx, "cache get degraded to miss", "key", string(key), "err", err)
		}
		return nil, false
	}

	// 惰性淘汰
	if !s.now().Before(env.ExpiresAt) {
		s.Delete(ctx, platform, handle)
		return nil, false
	}

	return env.Record, true
}

func (s *BadgerStore) Has(ctx context.Context, platform string, handle string) bool {
	key := []byte(cacheKey(platform, handle))

	var env envelope
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &env)
		})
	})
	if err != nil {
		return false
	}
	return s.now().Before(env.ExpiresAt)
}

func (s *BadgerStore) Set(ctx context.Context, platform string, handle string, record *model.PlatformAnalytics) {
	now := s.now()
	env := envelope{
		Record:    record,
		CachedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	data, err := json.Marshal(&env)
	if err != nil {
		log.WarnContext(ctx, "cache set skipped", "err", err)
		return
	}

	key := []byte(cacheKey(platform, handle))
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(key, data).WithTTL(s.ttl))
	})
	if err != nil {
		log.WarnContext(ctx, "cache set failed", "key", string(key), "err", err)
	}
}

func (s *BadgerStore) Delete(ctx context.Context, platform string, handle string) {
	key := []byte(cacheKey(platform, handle))
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		log.WarnContext(ctx, "cache delete failed", "key", string(key), "err", err)
	}
}

// RunGC 触发一次 value log 垃圾回收，由定时任务调用
func (s *BadgerStore) RunGC() {
	for {
		if err := s.db.RunValueLogGC(0.5); err != nil {
			return
		}
	}
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
