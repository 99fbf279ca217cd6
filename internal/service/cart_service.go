package service

import (
	"context"
	"strings"
	"sync"

	"github.com/motorstore/internal/constants"
	"github.com/motorstore/internal/i18n"
	"github.com/motorstore/internal/logger"
	"github.com/motorstore/internal/models"
	"github.com/motorstore/internal/repository"

	"github.com/shopspring/decimal"
)

// CartSnapshot 购物车快照（含降级标记，供展示层投影）
type CartSnapshot struct {
	Lines     models.Cart
	ItemCount int
	Total     decimal.Decimal
	Degraded  bool
}

// AddCartItemInput 加购输入。Name/UnitPrice 任一缺省时按商品目录补全。
type AddCartItemInput struct {
	ProductID uint
	Name      string
	UnitPrice *decimal.Decimal
	Locale    string
}

// CartService 购物车服务。
// 所有操作经互斥锁串行化，内存态为唯一事实来源，每次变更后同步持久化。
type CartService struct {
	mu            sync.Mutex
	cartRepo      repository.CartRepository
	productRepo   repository.ProductRepository
	noticeService *NoticeService

	lines    models.Cart
	loaded   bool
	degraded bool
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, noticeService *NoticeService) *CartService {
	return &CartService{
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		noticeService: noticeService,
	}
}

// Preload 启动时加载持久化购物车
func (s *CartService) Preload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLoadedLocked(ctx)
}

// Snapshot 返回当前购物车快照
func (s *CartService) Snapshot(ctx context.Context) CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadOnceLocked(ctx)
	return s.snapshotLocked()
}

// Total 返回购物车精确合计（逐行累加，不舍入）
func (s *CartService) Total(ctx context.Context) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadOnceLocked(ctx)
	return s.lines.TotalAmount()
}

// ItemCount 返回购物车件数合计
func (s *CartService) ItemCount(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadOnceLocked(ctx)
	return s.lines.ItemCount()
}

// AddItem 加购：已存在的行数量加一，否则按数量 1 追加到末尾。
// 单价按传入值原样记录，不做业务校验；加购成功后发布提示。
func (s *CartService) AddItem(ctx context.Context, input AddCartItemInput) (CartSnapshot, error) {
	if input.ProductID == 0 {
		return CartSnapshot{}, ErrCartItemInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadOnceLocked(ctx)

	var noticeName string
	if idx := s.lines.IndexOf(input.ProductID); idx >= 0 {
		s.lines[idx].Quantity++
		noticeName = s.lines[idx].Name
		if name := strings.TrimSpace(input.Name); name != "" {
			noticeName = name
		}
	} else {
		name := strings.TrimSpace(input.Name)
		price := input.UnitPrice
		if name == "" || price == nil {
			product, err := s.productRepo.GetByID(input.ProductID)
			if err != nil {
				return CartSnapshot{}, err
			}
			if product == nil || !product.IsActive {
				return CartSnapshot{}, ErrProductNotAvailable
			}
			if name == "" {
				name = pickProductTitle(product.TitleJSON, input.Locale)
				if name == "" {
					name = product.Slug
				}
			}
			if price == nil {
				catalogPrice := product.PriceAmount.Decimal
				price = &catalogPrice
			}
		}
		s.lines = append(s.lines, models.CartLine{
			ID:       input.ProductID,
			Name:     name,
			Price:    models.NewAmountFromDecimal(*price),
			Quantity: 1,
		})
		noticeName = name
	}

	s.persistLocked(ctx)
	snapshot := s.snapshotLocked()

	if s.noticeService != nil {
		message := i18n.Sprintf(input.Locale, "notice.cart_item_added", noticeName, snapshot.ItemCount)
		s.noticeService.Notify(ctx, message, 0)
	}
	return snapshot, nil
}

// RemoveItem 移除指定行；行不存在时静默返回，不产生写入
func (s *CartService) RemoveItem(ctx context.Context, productID uint) (CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadOnceLocked(ctx)

	idx := s.lines.IndexOf(productID)
	if idx < 0 {
		return s.snapshotLocked(), nil
	}
	s.removeLineLocked(ctx, idx)
	return s.snapshotLocked(), nil
}

// SetQuantity 将指定行数量设置为给定值。
// 行不存在时静默返回；数量小于等于 0 时等价于移除该行。
func (s *CartService) SetQuantity(ctx context.Context, productID uint, quantity int) (CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadOnceLocked(ctx)

	idx := s.lines.IndexOf(productID)
	if idx < 0 {
		return s.snapshotLocked(), nil
	}
	if quantity <= 0 {
		s.removeLineLocked(ctx, idx)
		return s.snapshotLocked(), nil
	}
	s.lines[idx].Quantity = quantity
	s.persistLocked(ctx)
	return s.snapshotLocked(), nil
}

// Clear 清空购物车。未确认时仅记录日志，不改内存也不产生写入。
func (s *CartService) Clear(ctx context.Context, confirmed bool) (CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadOnceLocked(ctx)

	if !confirmed {
		logger.Infow("cart_clear_cancelled")
		return s.snapshotLocked(), nil
	}
	s.lines = models.Cart{}
	s.persistLocked(ctx)
	return s.snapshotLocked(), nil
}

// Degraded 返回当前是否处于仅内存降级态
func (s *CartService) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *CartService) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	s.loaded = true
	lines, err := s.cartRepo.Load(ctx)
	if err != nil {
		// 存储读取失败按空购物车启动，保持服务可用
		s.lines = models.Cart{}
		return err
	}
	s.lines = lines
	return nil
}

func (s *CartService) loadOnceLocked(ctx context.Context) {
	if err := s.ensureLoadedLocked(ctx); err != nil {
		logger.Warnw("cart_load_failed", "error", err)
	}
}

func (s *CartService) removeLineLocked(ctx context.Context, idx int) {
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	s.persistLocked(ctx)
}

// persistLocked 将内存态写回存储；失败时进入仅内存降级态并告警
func (s *CartService) persistLocked(ctx context.Context) {
	if err := s.cartRepo.Save(ctx, s.lines); err != nil {
		s.degraded = true
		logger.Warnw("cart_persist_failed", "error", err)
		return
	}
	s.degraded = false
}

func (s *CartService) snapshotLocked() CartSnapshot {
	return CartSnapshot{
		Lines:     s.lines.Clone(),
		ItemCount: s.lines.ItemCount(),
		Total:     s.lines.TotalAmount(),
		Degraded:  s.degraded,
	}
}

func pickProductTitle(title models.JSON, locale string) string {
	if title == nil {
		return ""
	}
	keys := make([]string, 0, len(constants.SupportedLocales)+1)
	if normalized := i18n.Normalize(locale); normalized != "" {
		keys = append(keys, normalized)
	}
	keys = append(keys, constants.SupportedLocales...)
	for _, key := range keys {
		if val, ok := title[key]; ok {
			if str, ok := val.(string); ok && strings.TrimSpace(str) != "" {
				return strings.TrimSpace(str)
			}
		}
	}
	for _, val := range title {
		if str, ok := val.(string); ok && strings.TrimSpace(str) != "" {
			return strings.TrimSpace(str)
		}
	}
	return ""
}
