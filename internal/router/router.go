package router

import (
	"fmt"
	"strings"

	"github.com/parcelx-next/internal/cache"
	"github.com/parcelx-next/internal/config"
	adminhandlers "github.com/parcelx-next/internal/http/handlers/admin"
	publichandlers "github.com/parcelx-next/internal/http/handlers/public"
	"github.com/parcelx-next/internal/logger"
	"github.com/parcelx-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "px"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}
	trackRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:track", redisPrefix),
		WindowSeconds: cfg.Tracking.RateLimit.WindowSeconds,
		MaxRequests:   cfg.Tracking.RateLimit.MaxRequests,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.POST("/orders", publicHandler.CreateOrder)
			public.GET("/track/:ref", RateLimitMiddleware(redisClient, trackRule, KeyByIP), publicHandler.TrackOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.Login)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				authorized.PUT("/password", adminHandler.ChangePassword)

				// 订单管理
				authorized.GET("/orders", adminHandler.GetAdminOrders)
				authorized.GET("/orders/stats", adminHandler.GetAdminOrderStats)
				authorized.GET("/orders/:id", adminHandler.GetAdminOrder)
				authorized.PUT("/orders/:id", adminHandler.UpdateAdminOrder)
				authorized.PATCH("/orders/:id/status", adminHandler.AppendAdminOrderStatus)
				authorized.DELETE("/orders/:id", adminHandler.DeleteAdminOrder)

				// 邮件管理
				authorized.POST("/emails/send", adminHandler.SendAdminEmail)
				authorized.POST("/emails/test", adminHandler.SendAdminTestEmail)
			}
		}
	}

	// 健康检查
	r.GET("/health", publicHandler.Health)

	return r
}
