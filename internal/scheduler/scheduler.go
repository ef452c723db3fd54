package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"account-manager/internal/pkg/config"
	"account-manager/internal/service"
)

// Scheduler 定时任务调度器
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
	emsSvc service.EmsService
}

// NewScheduler 创建调度器
func NewScheduler(logger *zap.Logger, emsSvc service.EmsService) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
		emsSvc: emsSvc,
	}
}

// Start 启动调度器
func (s *Scheduler) Start(cfg *config.Config) error {
	log := s.logger.Sugar()

	if !cfg.Rotation.Enabled {
		log.Info("密码自动轮换未启用, 调度器不启动")
		return nil
	}

	// cron 表达式格式: 分 时 日 月 周
	cronExpr := cfg.Rotation.Cron
	if cronExpr == "" {
		cronExpr = "0 0 1 * *" // 默认: 每月1日凌晨
		log.Warnw("未配置rotation.cron, 使用默认值", "cron", cronExpr)
	}

	entryID, err := s.cron.AddFunc(cronExpr, func() {
		log.Info("执行定时任务: EMS密码月度轮换")
		if err := s.RotateNow(); err != nil {
			log.Errorf("EMS密码轮换任务执行失败: %v", err)
		}
	})
	if err != nil {
		log.Errorf("注册轮换任务失败: %v cron=%s", err, cronExpr)
		return err
	}

	log.Infof("EMS密码轮换任务已注册: %s entry_id=%d", cronExpr, entryID)

	s.cron.Start()
	log.Info("定时任务调度器启动成功")

	return nil
}

// Stop 停止调度器（等待正在执行的任务完成）
func (s *Scheduler) Stop() {
	s.logger.Info("正在停止定时任务调度器...")

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.logger.Info("定时任务调度器已停止")
}

// RotateNow 立即执行一次轮换（供启动时或手动触发）
func (s *Scheduler) RotateNow() error {
	rotated, err := s.emsSvc.RotateMonthlyPasswords(time.Now())
	if err != nil {
		return err
	}
	s.logger.Info("EMS密码月度轮换完成", zap.Int("rotated", rotated))
	return nil
}
