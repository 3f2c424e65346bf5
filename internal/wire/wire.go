package wire

import (
	"Linkstone/internal/api"
	"Linkstone/internal/api/config"
	"Linkstone/internal/api/handler"
	"Linkstone/internal/job"
	"Linkstone/internal/pkg/cache"
	"Linkstone/internal/pkg/cron"
	"Linkstone/internal/pkg/kafka"
	pkgmongo "Linkstone/internal/pkg/mongo"
	"Linkstone/internal/pkg/provider"
	pkgredis "Linkstone/internal/pkg/redis"
	"Linkstone/internal/repository"
	"Linkstone/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router     *gin.Engine
	DB         *gorm.DB
	CronMgr    *cron.Manager
	CacheStore cache.Store
	Producer   *kafka.EventProducer
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cacheStore cache.Store, producer *kafka.EventProducer, cfg *config.Config) (*ApplicationContainer, error) {
	analyticsRepo := repository.NewAnalyticsRepository(db)
	linkRepo := repository.NewSocialLinkRepository(db)
	counterRepo := repository.NewUsageCounterRepository(db)
	snapshotRepo := pkgmongo.NewSnapshotRepo(mongoDB)

	instagramClient := provider.NewInstagramClient(cfg.Providers.Instagram)
	tiktokClient := provider.NewTikTokClient(cfg.Providers.TikTok)

	quotaService := service.NewQuotaService(counterRepo)
	analyticsService := service.NewAnalyticsService(
		analyticsRepo,
		linkRepo,
		quotaService,
		cacheStore,
		instagramClient,
		tiktokClient,
		pkgredis.NewLocker(),
		snapshotRepo,
		producer,
	)

	handlers := &api.HandlersGroup{
		AnalyticsHandler: handler.NewAnalyticsHandler(analyticsService),
	}

	router := api.SetupRouter(handlers)

	retentionJob := job.NewUsageRetentionJob(counterRepo, cfg.Quota.RetentionDays)
	var gcJob *job.CacheGCJob
	if collector, ok := cacheStore.(job.GarbageCollector); ok {
		gcJob = job.NewCacheGCJob(collector)
	}
	cronMgr := cron.NewCronManager(retentionJob, gcJob)

	return &ApplicationContainer{
		Router:     router,
		DB:         db,
		CronMgr:    cronMgr,
		CacheStore: cacheStore,
		Producer:   producer,
	}, nil
}
