package cron

import (
	"Pinwall/internal/api/config"
	"Pinwall/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine            *cron.Cron
	cfg               config.CronConfig
	trendingJob       *job.TrendingHashtagJob
	sessionCleanupJob *job.SessionCleanupJob
}

func NewCronManager(cfg config.CronConfig, trendingJob *job.TrendingHashtagJob, sessionCleanupJob *job.SessionCleanupJob) *Manager {
	return &Manager{
		engine:            cron.New(cron.WithSeconds()),
		cfg:               cfg,
		trendingJob:       trendingJob,
		sessionCleanupJob: sessionCleanupJob,
	}
}

// RegisterJobs 注册定时任务, 表达式为空时跳过对应任务
func (s *Manager) RegisterJobs() error {
	if s.cfg.Trending != "" {
		if _, err := s.engine.AddJob(s.cfg.Trending, s.trendingJob); err != nil {
			return err
		}
	}
	if s.cfg.SessionCleanup != "" {
		if _, err := s.engine.AddJob(s.cfg.SessionCleanup, s.sessionCleanupJob); err != nil {
			return err
		}
	}
	return nil
}

// Entries 已注册的任务数
func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

func (s *Manager) Start() {
	log.Info("cron engine started")
	s.engine.Start()
}

// Stop 停止调度并等待运行中的任务结束
func (s *Manager) Stop() {
	log.Info("cron engine stopping")
	<-s.engine.Stop().Done()
}
