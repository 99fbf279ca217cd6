package store

import "context"

// KV 字符串键值存储，购物车等前台状态的持久化介质
// 读写均为同步语义：调用返回即代表存储层已完成本次操作
type KV interface {
	// Get 读取键值，键不存在时 found 返回 false 且不视为错误
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set 写入键值（整体覆盖旧值）
	Set(ctx context.Context, key, value string) error
	// Del 删除键，键不存在时不报错
	Del(ctx context.Context, key string) error
}
