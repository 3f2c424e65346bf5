package job

import (
	"Linkstone/internal/pkg/logger"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// GarbageCollector 缓存存储的空间回收能力，Badger 实现有，内存实现没有
type GarbageCollector interface {
	RunGC()
}

// CacheGCJob 定期触发缓存存储的垃圾回收
type CacheGCJob struct {
	collector GarbageCollector
}

func NewCacheGCJob(collector GarbageCollector) *CacheGCJob {
	return &CacheGCJob{collector: collector}
}

func (s *CacheGCJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	log.InfoContext(ctx, "cache gc start")
	s.collector.RunGC()
	log.InfoContext(ctx, "cache gc done")
}
