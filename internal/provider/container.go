package provider

import (
	"context"
	"strings"

	"github.com/motorstore/internal/cache"
	"github.com/motorstore/internal/config"
	"github.com/motorstore/internal/constants"
	"github.com/motorstore/internal/logger"
	"github.com/motorstore/internal/models"
	"github.com/motorstore/internal/queue"
	"github.com/motorstore/internal/repository"
	"github.com/motorstore/internal/service"
	"github.com/motorstore/internal/store"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	KV          store.KV

	// Repositories
	CartRepo     repository.CartRepository
	ThemeRepo    repository.ThemeRepository
	NoticeRepo   repository.NoticeRepository
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository

	// Services
	CartService    *service.CartService
	NoticeService  *service.NoticeService
	ThemeService   *service.ThemeService
	CatalogService *service.CatalogService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
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

	// 1. 选择持久化 KV
	c.initStore()

	// 2. 初始化 Repositories
	c.initRepositories()

	// 3. 初始化 Services
	c.initServices()

	return c
}

// initStore Redis 可用时落 Redis，不可用时退回进程内存储
func (c *Container) initStore() {
	if cache.Enabled() {
		prefix := strings.TrimSpace(c.Config.Redis.Prefix)
		if prefix == "" {
			prefix = constants.RedisPrefixDefault
		}
		c.KV = store.NewRedisKV(cache.Client(), prefix)
		return
	}
	logger.Warnw("provider_store_fallback_memory")
	c.KV = store.NewMemoryKV()
}

func (c *Container) initRepositories() {
	db := models.DB
	c.CartRepo = repository.NewCartRepository(c.KV)
	c.ThemeRepo = repository.NewThemeRepository(c.KV)
	c.NoticeRepo = repository.NewNoticeRepository(c.KV)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
}

func (c *Container) initServices() {
	noticeDurationMS := int64(0)
	if c.Config != nil {
		noticeDurationMS = c.Config.Notice.DefaultDurationMS
	}
	c.NoticeService = service.NewNoticeService(c.NoticeRepo, c.QueueClient, noticeDurationMS)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.NoticeService)
	c.ThemeService = service.NewThemeService(c.ThemeRepo)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.CategoryRepo)

	// 启动即加载持久化购物车，失败时从空购物车继续服务
	if err := c.CartService.Preload(context.Background()); err != nil {
		logger.Warnw("provider_preload_cart_failed", "error", err)
	}
}
