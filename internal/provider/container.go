package provider

import (
	"github.com/parcelx-next/internal/cache"
	"github.com/parcelx-next/internal/config"
	"github.com/parcelx-next/internal/logger"
	"github.com/parcelx-next/internal/models"
	"github.com/parcelx-next/internal/queue"
	"github.com/parcelx-next/internal/repository"
	"github.com/parcelx-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo repository.AdminRepository
	OrderRepo repository.OrderRepository

	// Services
	AuthService         *service.AuthService
	EmailService        *service.EmailService
	NotificationService *service.NotificationService
	OrderService        *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.NotificationService = service.NewNotificationService(c.EmailService, c.QueueClient)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.NotificationService)
}
