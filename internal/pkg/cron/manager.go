package cron

import (
	"Linkstone/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine           *cron.Cron
	usageRetention   *job.UsageRetentionJob
	cacheGC          *job.CacheGCJob
}

func NewCronManager(usageRetention *job.UsageRetentionJob, cacheGC *job.CacheGCJob) *Manager {
	return &Manager{
		engine:         cron.New(cron.WithSeconds()),
		usageRetention: usageRetention,
		cacheGC:        cacheGC,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@daily", s.usageRetention); err != nil {
		return err
	}
	// 内存缓存没有 GC 任务
	if s.cacheGC != nil {
		if _, err := s.engine.AddJob("@every 1h", s.cacheGC); err != nil {
			return err
		}
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
