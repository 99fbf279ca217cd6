package repository

import (
	"context"

	"github.com/motorstore/internal/constants"
	"github.com/motorstore/internal/store"
)

// ThemeRepository 主题持久化接口
type ThemeRepository interface {
	// Get 读取主题标识，未设置时返回空串
	Get(ctx context.Context) (string, error)
	// Set 写入主题标识
	Set(ctx context.Context, theme string) error
}

// KVThemeRepository 键值存储实现
type KVThemeRepository struct {
	kv store.KV
}

// NewThemeRepository 创建主题仓库
func NewThemeRepository(kv store.KV) *KVThemeRepository {
	return &KVThemeRepository{kv: kv}
}

// Get 读取主题标识
func (r *KVThemeRepository) Get(ctx context.Context) (string, error) {
	val, found, err := r.kv.Get(ctx, constants.StoreKeyTheme)
	if err != nil {
		return "", err
	}
	if !found {
		return "", nil
	}
	return val, nil
}

// Set 写入主题标识
func (r *KVThemeRepository) Set(ctx context.Context, theme string) error {
	return r.kv.Set(ctx, constants.StoreKeyTheme, theme)
}
