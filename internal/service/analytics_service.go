package service

import (
	"Linkstone/internal/model"
	"Linkstone/internal/pkg/cache"
	"Linkstone/internal/pkg/consts"
	"Linkstone/internal/pkg/kafka"
	"Linkstone/internal/pkg/mongo"
	"Linkstone/internal/pkg/provider"
	"Linkstone/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// AnalyticsService 社交分析流水线的编排入口
// View 是无限制的纯读路径，Refresh/SaveHandle 走配额和缓存，
// 两者绝不能合并，否则浏览也会消耗配额
type AnalyticsService interface {
	View(ctx context.Context, userID uint64, platform string) (*model.PlatformAnalytics, error)
	Refresh(ctx context.Context, userID uint64, platform string) (*model.PlatformAnalytics, error)
	SaveHandle(ctx context.Context, userID uint64, platform string, handle string) (*model.PlatformAnalytics, error)
	DeleteHandle(ctx context.Context, userID uint64, platform string) error
	QuotaStatus(ctx context.Context, userID uint64, platform string) (used int, limit int, err error)
}

// Locker 刷新临界区的互斥抽象，生产实现基于 Redis SETNX
type Locker interface {
	TryLock(ctx context.Context, key string, token string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string, token string)
}

type analyticsServiceImpl struct {
	analyticsRepo repository.AnalyticsRepo
	linkRepo      repository.SocialLinkRepo
	quotaSvc      QuotaService
	cacheStore    cache.Store
	instagram     provider.InstagramAPI
	tiktok        provider.TikTokAPI
	locker        Locker
	snapshotRepo  mongo.SnapshotRepo
	producer      *kafka.EventProducer
	now           func() time.Time
}

func NewAnalyticsService(
	analyticsRepo repository.AnalyticsRepo,
	linkRepo repository.SocialLinkRepo,
	quotaSvc QuotaService,
	cacheStore cache.Store,
	instagram provider.InstagramAPI,
	tiktok provider.TikTokAPI,
	locker Locker,
	snapshotRepo mongo.SnapshotRepo,
	producer *kafka.EventProducer,
) AnalyticsService {
	return &analyticsServiceImpl{
		analyticsRepo: analyticsRepo,
		linkRepo:      linkRepo,
		quotaSvc:      quotaSvc,
		cacheStore:    cacheStore,
		instagram:     instagram,
		tiktok:        tiktok,
		locker:        locker,
		snapshotRepo:  snapshotRepo,
		producer:      producer,
		now:           time.Now,
	}
}

// View 直接读库，不查配额也不碰缓存；未绑定时返回 nil
func (s *analyticsServiceImpl) View(ctx context.Context, userID uint64, platform string) (*model.PlatformAnalytics, error) {
	record, err := s.analyticsRepo.GetByUserPlatform(ctx, userID, platform)
	if err != nil {
		return nil, ErrPersistenceFailure
	}
	return record, nil
}

// Refresh 对已绑定的 handle 重新抓取
func (s *analyticsServiceImpl) Refresh(ctx context.Context, userID uint64, platform string) (*model.PlatformAnalytics, error) {
	existing, err := s.analyticsRepo.GetByUserPlatform(ctx, userID, platform)
	if err != nil {
		return nil, ErrPersistenceFailure
	}
	if existing == nil {
		return nil, ErrNotBound
	}
	return s.refresh(ctx, userID, platform, existing.Handle, false)
}

// SaveHandle 首次绑定。已有绑定时拒绝，换绑必须先显式删除
func (s *analyticsServiceImpl) SaveHandle(ctx context.Context, userID uint64, platform string, handle string) (*model.PlatformAnalytics, error) {
	existing, err := s.analyticsRepo.GetByUserPlatform(ctx, userID, platform)
	if err != nil {
		return nil, ErrPersistenceFailure
	}
	if existing != nil {
		return nil, ErrAlreadyBound
	}
	return s.refresh(ctx, userID, platform, handle, true)
}

// DeleteHandle 删除记录即解绑，同时清掉对应缓存条目
// 缓存不会随库删除自动失效，这里必须显式清理，否则重新绑定会被陈旧数据短路
func (s *analyticsServiceImpl) DeleteHandle(ctx context.Context, userID uint64, platform string) error {
	existing, err := s.analyticsRepo.GetByUserPlatform(ctx, userID, platform)
	if err != nil {
		return ErrPersistenceFailure
	}
	if existing == nil {
		return ErrNotBound
	}

	if err = s.analyticsRepo.DeleteByUserPlatform(ctx, userID, platform); err != nil {
		log.ErrorContext(ctx, "delete analytics error", "user_id", userID, "platform", platform, "err", err)
		return ErrPersistenceFailure
	}

	s.cacheStore.Delete(ctx, platform, existing.Handle)
	return nil
}

func (s *analyticsServiceImpl) QuotaStatus(ctx context.Context, userID uint64, platform string) (int, int, error) {
	return s.quotaSvc.Status(ctx, userID, platform)
}

// refresh 单次刷新的完整状态机：
// 配额检查 → 缓存检查 → 上游抓取 → 归一化 → 落库 → 缓存更新 → 配额加一
// bind 为 true 表示首次绑定，缓存命中时也要落库把绑定关系建立起来；
// 普通刷新命中缓存则完全无副作用
func (s *analyticsServiceImpl) refresh(ctx context.Context, userID uint64, platform string, handle string, bind bool) (*model.PlatformAnalytics, error) {
	// 配额耗尽时在任何网络调用之前拒绝
	if err := s.quotaSvc.Check(ctx, userID, platform); err != nil {
		return nil, err
	}

	// 30 分钟内抓过同一个 handle 就直接复用，不消耗配额
	if cached, ok := s.cacheStore.Get(ctx, platform, handle); ok {
		record := *cached
		record.ID = 0
		record.UserID = userID
		record.Handle = handle

		if bind {
			if err := s.persist(ctx, &record); err != nil {
				return nil, err
			}
		}
		return &record, nil
	}

	// 并发刷新抑制：拿不到锁说明同一用户的刷新正在进行
	lockKey := consts.RefreshLock + platform + ":" + strconv.FormatUint(userID, 10)
	token := uuid.NewString()
	locked, err := s.locker.TryLock(ctx, lockKey, token, time.Minute)
	if err != nil {
		// 锁只是竞态缓解手段，锁服务故障时继续走主流程
		log.WarnContext(ctx, "refresh lock degraded", "key", lockKey, "err", err)
	} else if !locked {
		return nil, UnExpectedError
	} else {
		defer s.locker.Unlock(ctx, lockKey, token)
	}

	record, rawPayload, err := s.fetch(ctx, userID, platform, handle)
	if err != nil {
		return nil, err
	}

	if err = s.persist(ctx, record); err != nil {
		return nil, err
	}

	s.archiveSnapshot(ctx, record, rawPayload)
	s.publishRefresh(ctx, record)

	s.cacheStore.Set(ctx, platform, handle, record)

	// 只有成功的上游调用才消耗配额；这里失败只记日志，落库结果不回滚
	if err = s.quotaSvc.Consume(ctx, userID, platform); err != nil {
		log.ErrorContext(ctx, "quota consume error", "user_id", userID, "platform", platform, "err", err)
	}

	return record, nil
}

// fetch 调用对应平台的提供方并归一化，返回归一化记录和原始报文
func (s *analyticsServiceImpl) fetch(ctx context.Context, userID uint64, platform string, handle string) (*model.PlatformAnalytics, []byte, error) {
	fetchedAt := s.now()

	switch platform {
	case consts.PlatformInstagram:
		report, err := s.instagram.FetchReport(ctx, handle)
		if err != nil {
			return nil, nil, mapProviderErr(err)
		}
		raw, _ := json.Marshal(report)
		return NormalizeInstagram(userID, handle, report, fetchedAt), raw, nil

	case consts.PlatformTikTok:
		// 三步链路：第一步失败整个操作失败，后两步失败降级为空数据继续
		basic, err := s.tiktok.FindUser(ctx, handle)
		if err != nil {
			return nil, nil, mapProviderErr(err)
		}

		info, err := s.tiktok.FetchUserInfo(ctx, basic.UID)
		if err != nil {
			log.WarnContext(ctx, "tiktok user info degraded", "uid", basic.UID, "err", err)
			info = nil
		}

		metrics, err := s.tiktok.FetchUserMetrics(ctx, basic.UID)
		if err != nil {
			log.WarnContext(ctx, "tiktok user metrics degraded", "uid", basic.UID, "err", err)
			metrics = nil
		}

		raw, _ := json.Marshal(map[string]interface{}{
			"basic":   basic,
			"info":    info,
			"metrics": metrics,
		})
		return NormalizeTikTok(userID, handle, basic, info, metrics, fetchedAt), raw, nil

	default:
		return nil, nil, ErrPlatformInvalid
	}
}

// persist 主写入，单条 Upsert，要么整行生效要么不生效
// 链接卡片的摘要冗余是尽力而为的二次写入，失败不回滚主记录
func (s *analyticsServiceImpl) persist(ctx context.Context, record *model.PlatformAnalytics) error {
	if err := s.analyticsRepo.SaveOrUpdate(ctx, record); err != nil {
		log.ErrorContext(ctx, "save analytics error", "user_id", record.UserID, "platform", record.Platform, "err", err)
		return ErrPersistenceFailure
	}

	summary := &repository.LinkSummary{
		FollowerCount:  record.FollowerCount,
		MediaCount:     record.PostCount,
		EngagementRate: record.EngagementRate,
		IsVerified:     record.IsVerified,
		LastScrapedAt:  record.FetchedAt,
	}
	if err := s.linkRepo.UpdateSummary(ctx, record.UserID, record.Platform, summary); err != nil {
		log.WarnContext(ctx, "link summary update skipped", "user_id", record.UserID, "platform", record.Platform, "err", err)
	}

	return nil
}

func (s *analyticsServiceImpl) archiveSnapshot(ctx context.Context, record *model.PlatformAnalytics, rawPayload []byte) {
	if s.snapshotRepo == nil || len(rawPayload) == 0 {
		return
	}
	err := s.snapshotRepo.SaveSnapshot(ctx, &mongo.RawSnapshot{
		UserID:    record.UserID,
		Platform:  record.Platform,
		Handle:    record.Handle,
		Payload:   string(rawPayload),
		FetchedAt: record.FetchedAt,
	})
	if err != nil {
		log.WarnContext(ctx, "raw snapshot archive skipped", "user_id", record.UserID, "err", err)
	}
}

func (s *analyticsServiceImpl) publishRefresh(ctx context.Context, record *model.PlatformAnalytics) {
	if s.producer == nil {
		return
	}
	s.producer.PublishRefresh(ctx, &kafka.RefreshEvent{
		UserID:        record.UserID,
		Platform:      record.Platform,
		Handle:        record.Handle,
		FollowerCount: record.FollowerCount,
		FetchedAt:     record.FetchedAt,
	})
}

func mapProviderErr(err error) error {
	switch {
	case errors.Is(err, provider.ErrHandleNotFound):
		return ErrHandleNotFound
	case errors.Is(err, provider.ErrProviderUnavailable):
		return ErrProviderUnavailable
	default:
		return ErrProviderUnavailable
	}
}
