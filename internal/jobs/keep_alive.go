package jobs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/parcelx-next/internal/config"
	"github.com/parcelx-next/internal/logger"
)

// KeepAliveService 周期性自我探活，防止托管平台休眠实例
type KeepAliveService struct {
	name     string
	cfg      *config.KeepAliveConfig
	cron     *cron.Cron
	client   *http.Client
	interval time.Duration
}

// NewKeepAliveService 创建保活定时服务
func NewKeepAliveService(cfg *config.KeepAliveConfig) *KeepAliveService {
	interval := 14 * time.Minute
	timeout := 10 * time.Second
	if cfg != nil {
		if cfg.IntervalMinutes > 0 {
			interval = time.Duration(cfg.IntervalMinutes) * time.Minute
		}
		if cfg.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
	}
	return &KeepAliveService{
		name:     "keep_alive",
		cfg:      cfg,
		cron:     cron.New(),
		client:   &http.Client{Timeout: timeout},
		interval: interval,
	}
}

// Name 服务名称
func (s *KeepAliveService) Name() string {
	if s == nil || s.name == "" {
		return "keep_alive"
	}
	return s.name
}

// Start 启动定时探活
func (s *KeepAliveService) Start(ctx context.Context) error {
	if s == nil || s.cfg == nil {
		return errors.New("keep alive config is nil")
	}
	if s.cfg.URL == "" {
		return errors.New("keep alive url is empty")
	}

	schedule := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(schedule, s.ping); err != nil {
		return err
	}
	s.cron.Start()

	<-ctx.Done()
	return ctx.Err()
}

// Stop 停止定时探活
func (s *KeepAliveService) Stop(ctx context.Context) error {
	if s == nil || s.cron == nil {
		return nil
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	return nil
}

func (s *KeepAliveService) ping() {
	req, err := http.NewRequest(http.MethodGet, s.cfg.URL, nil)
	if err != nil {
		logger.S().Warnw("keep_alive_request_build_failed", "url", s.cfg.URL, "error", err)
		return
	}
	resp, err := s.client.Do(req)
	if err != nil {
		logger.S().Warnw("keep_alive_ping_failed", "url", s.cfg.URL, "error", err)
		return
	}
	defer resp.Body.Close()
	logger.S().Debugw("keep_alive_ping", "url", s.cfg.URL, "status", resp.StatusCode)
}
