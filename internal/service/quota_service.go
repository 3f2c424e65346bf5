package service

import (
	"Linkstone/internal/pkg/consts"
	"Linkstone/internal/repository"
	"context"
	"time"
)

// QuotaService 每日刷新配额守卫
// 约定的调用顺序由编排层保证：先 Check，上游调用成功后再 Consume，
// 失败的上游调用不消耗配额。Check 与 Status 永远不会产生写入。
type QuotaService interface {
	Check(ctx context.Context, userID uint64, platform string) error
	Consume(ctx context.Context, userID uint64, platform string) error
	Status(ctx context.Context, userID uint64, platform string) (used int, limit int, err error)
}

type quotaServiceImpl struct {
	counterRepo repository.UsageCounterRepo
	limit       int
	now         func() time.Time
}

func NewQuotaService(counterRepo repository.UsageCounterRepo) QuotaService {
	return &quotaServiceImpl{
		counterRepo: counterRepo,
		limit:       consts.DailyRefreshLimit,
		now:         time.Now,
	}
}

// Check 当日计数达到上限时拒绝，日期按服务器本地时区取
// 跨天后查不到当日行，自然从 0 重新开始，不需要重置任务
func (s *quotaServiceImpl) Check(ctx context.Context, userID uint64, platform string) error {
	count, err := s.counterRepo.GetCount(ctx, userID, platform, s.now())
	if err != nil {
		return ErrPersistenceFailure
	}
	if count >= s.limit {
		return ErrQuotaExceeded
	}
	return nil
}

// Consume 原子加一。查读与加一是两次独立往返，并发刷新可能轻微超限，
// 这是已接受的松弛，不用锁去硬保证
func (s *quotaServiceImpl) Consume(ctx context.Context, userID uint64, platform string) error {
	return s.counterRepo.Increment(ctx, userID, platform, s.now())
}

func (s *quotaServiceImpl) Status(ctx context.Context, userID uint64, platform string) (int, int, error) {
	count, err := s.counterRepo.GetCount(ctx, userID, platform, s.now())
	if err != nil {
		return 0, s.limit, ErrPersistenceFailure
	}
	return count, s.limit, nil
}
