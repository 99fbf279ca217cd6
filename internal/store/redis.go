package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/motorstore/internal/constants"

	"github.com/redis/go-redis/v9"
)

// RedisKV Redis 实现的键值存储（键永不过期，写入即落盘）
type RedisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisKV 创建 Redis 键值存储
func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = constants.RedisPrefixDefault
	}
	return &RedisKV{client: client, prefix: prefix}
}

// Get 读取键值
func (s *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.client == nil {
		return "", false, fmt.Errorf("redis kv not initialized")
	}
	val, err := s.client.Get(ctx, s.buildKey(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

// Set 写入键值
func (s *RedisKV) Set(ctx context.Context, key, value string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("redis kv not initialized")
	}
	if err := s.client.Set(ctx, s.buildKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Del 删除键
func (s *RedisKV) Del(ctx context.Context, key string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("redis kv not initialized")
	}
	if err := s.client.Del(ctx, s.buildKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// buildKey 与缓存键区分命名空间，避免互相覆盖
func (s *RedisKV) buildKey(key string) string {
	return fmt.Sprintf("%s:store:%s", s.prefix, strings.TrimSpace(key))
}
