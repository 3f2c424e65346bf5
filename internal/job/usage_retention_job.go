package job

import (
	"Linkstone/internal/pkg/logger"
	"Linkstone/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// UsageRetentionJob 每日清理过期的刷新计数行
// 配额判断只看当日行，历史行留着只占空间
type UsageRetentionJob struct {
	counterRepo   repository.UsageCounterRepo
	retentionDays int
}

func NewUsageRetentionJob(counterRepo repository.UsageCounterRepo, retentionDays int) *UsageRetentionJob {
	if retentionDays <= 0 {
		retentionDays = 7
	}
	return &UsageRetentionJob{
		counterRepo:   counterRepo,
		retentionDays: retentionDays,
	}
}

func (s *UsageRetentionJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	deleted, err := s.counterRepo.DeleteBefore(ctx, cutoff)
	if err != nil {
		log.ErrorContext(ctx, "usage counter retention error", "err", err)
		return
	}
	log.InfoContext(ctx, "usage counter retention done", "deleted", deleted, "cutoff", cutoff.Format(time.DateOnly))
}
