package app

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Service 可被运行器托管的后台服务
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 托管一组服务的启停
type Runner struct {
	services []Service
}

// NewRunner 创建服务运行器
func NewRunner(services ...Service) *Runner {
	return &Runner{services: services}
}

// RunWithOptions 挂接系统信号后运行服务
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errors.New("runner is nil")
	}
	opts = normalizeOptions(opts)
	ctx := context.Background()
	if len(opts.Signals) > 0 {
		notifyCtx, stop := signal.NotifyContext(ctx, opts.Signals...)
		defer stop()
		ctx = notifyCtx
	}
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 并发启动全部服务，任一服务退出或上下文取消后整体停机
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, logger *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(r.services))
	var wg sync.WaitGroup
	for _, svc := range r.services {
		if svc == nil {
			return errors.New("service is nil")
		}
		wg.Add(1)
		go func(service Service) {
			defer wg.Done()
			if logger != nil {
				logger.Infow("service_start", "service", service.Name())
			}
			err := service.Start(runCtx)
			if logger != nil {
				logger.Infow("service_exit", "service", service.Name(), "error", err)
			}
			errCh <- err
		}(svc)
	}

	var runErr error
	select {
	case <-runCtx.Done():
		runErr = runCtx.Err()
	case err := <-errCh:
		runErr = err
	}
	cancel()

	if stopTimeout <= 0 {
		stopTimeout = 10 * time.Second
	}
	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()
	for i := len(r.services) - 1; i >= 0; i-- {
		service := r.services[i]
		if err := service.Stop(stopCtx); err != nil && logger != nil {
			logger.Errorw("service_stop_failed", "service", service.Name(), "error", err)
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-stopCtx.Done():
	}

	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}
