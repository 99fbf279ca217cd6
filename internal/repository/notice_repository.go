package repository

import (
	"context"
	"encoding/json"

	"github.com/motorstore/internal/constants"
	"github.com/motorstore/internal/models"
	"github.com/motorstore/internal/store"
)

// NoticeRepository 全局提示持久化接口
type NoticeRepository interface {
	// Get 读取当前提示，无提示或内容无法解析时返回 nil
	Get(ctx context.Context) (*models.Notice, error)
	// Save 整体覆盖写入当前提示
	Save(ctx context.Context, notice *models.Notice) error
	// Clear 移除当前提示
	Clear(ctx context.Context) error
}

// KVNoticeRepository 键值存储实现
type KVNoticeRepository struct {
	kv store.KV
}

// NewNoticeRepository 创建提示仓库
func NewNoticeRepository(kv store.KV) *KVNoticeRepository {
	return &KVNoticeRepository{kv: kv}
}

// Get 读取当前提示
func (r *KVNoticeRepository) Get(ctx context.Context) (*models.Notice, error) {
	raw, found, err := r.kv.Get(ctx, constants.StoreKeyNotice)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	var notice models.Notice
	if err := json.Unmarshal([]byte(raw), &notice); err != nil {
		return nil, nil
	}
	return &notice, nil
}

// Save 写入当前提示
func (r *KVNoticeRepository) Save(ctx context.Context, notice *models.Notice) error {
	if notice == nil {
		return r.Clear(ctx)
	}
	payload, err := json.Marshal(notice)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, constants.StoreKeyNotice, string(payload))
}

// Clear 移除当前提示
func (r *KVNoticeRepository) Clear(ctx context.Context) error {
	return r.kv.Del(ctx, constants.StoreKeyNotice)
}
