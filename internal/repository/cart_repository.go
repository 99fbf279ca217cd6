package repository

import (
	"context"
	"encoding/json"

	"github.com/motorstore/internal/constants"
	"github.com/motorstore/internal/models"
	"github.com/motorstore/internal/store"
)

// CartRepository 购物车持久化接口
type CartRepository interface {
	// Load 读取购物车，键缺失或内容无法解析时返回空购物车
	Load(ctx context.Context) (models.Cart, error)
	// Save 整体覆盖写入购物车序列化结果
	Save(ctx context.Context, cart models.Cart) error
}

// KVCartRepository 键值存储实现
type KVCartRepository struct {
	kv store.KV
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(kv store.KV) *KVCartRepository {
	return &KVCartRepository{kv: kv}
}

// Load 读取购物车
func (r *KVCartRepository) Load(ctx context.Context) (models.Cart, error) {
	raw, found, err := r.kv.Get(ctx, constants.StoreKeyCart)
	if err != nil {
		return nil, err
	}
	if !found {
		return models.Cart{}, nil
	}
	var cart models.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		// 存量数据损坏时按空购物车处理，下次写入会覆盖为合法序列化
		return models.Cart{}, nil
	}
	return normalizeCart(cart), nil
}

// Save 写入购物车
func (r *KVCartRepository) Save(ctx context.Context, cart models.Cart) error {
	if cart == nil {
		cart = models.Cart{}
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, constants.StoreKeyCart, string(payload))
}

// normalizeCart 过滤非法行：数量小于等于 0 的行与重复ID的后出现行
func normalizeCart(cart models.Cart) models.Cart {
	normalized := make(models.Cart, 0, len(cart))
	seen := make(map[uint]struct{}, len(cart))
	for _, line := range cart {
		if line.Quantity <= 0 {
			continue
		}
		if _, dup := seen[line.ID]; dup {
			continue
		}
		seen[line.ID] = struct{}{}
		normalized = append(normalized, line)
	}
	return normalized
}
