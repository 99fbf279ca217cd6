package router

import (
	"fmt"
	"strings"

	"github.com/motorstore/internal/cache"
	"github.com/motorstore/internal/config"
	"github.com/motorstore/internal/constants"
	publichandlers "github.com/motorstore/internal/http/handlers/public"
	"github.com/motorstore/internal/logger"
	"github.com/motorstore/internal/provider"

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
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	cartRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:cart", redisPrefix),
		WindowSeconds: cfg.Security.CartRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CartRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.CartRateLimit.BlockSeconds,
		MessageKey:    "error.cart_rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
			public.GET("/categories", publicHandler.GetCategories)
		}

		// 购物车接口（写操作限流，新增按商品维度隔离计数）
		cartLimiter := RateLimitMiddleware(redisClient, cartRule, KeyByIP)
		cart := apiV1.Group("/cart")
		{
			cart.GET("", publicHandler.GetCart)
			cart.GET("/count", publicHandler.GetCartCount)
			cart.POST("/items", RateLimitMiddleware(redisClient, cartRule, KeyByIPAndJSONField("product_id")), publicHandler.AddCartItem)
			cart.PUT("/items/:product_id", cartLimiter, publicHandler.SetCartItemQuantity)
			cart.DELETE("/items/:product_id", cartLimiter, publicHandler.RemoveCartItem)
			cart.DELETE("", cartLimiter, publicHandler.ClearCart)
		}

		// 主题与通知
		apiV1.GET("/theme", publicHandler.GetTheme)
		apiV1.PUT("/theme", publicHandler.SetTheme)
		apiV1.POST("/theme/toggle", publicHandler.ToggleTheme)
		apiV1.GET("/notice", publicHandler.GetNotice)
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
