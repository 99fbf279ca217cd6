package models

import (
	"time"
)

// Notice 全局提示（同一时刻至多展示一条，后发的覆盖先发的）
type Notice struct {
	ID         string    `json:"id"`          // 提示ID（uuid）
	Message    string    `json:"message"`     // 提示文案
	DurationMS int64     `json:"duration_ms"` // 展示时长（毫秒）
	ShownAt    time.Time `json:"shown_at"`    // 展示开始时间
	ExpiresAt  time.Time `json:"expires_at"`  // 计划消失时间
}

// Expired 判断提示在给定时刻是否已到期
func (n Notice) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}

// RemainingMS 返回给定时刻的剩余展示毫秒数（到期返回 0）
func (n Notice) RemainingMS(now time.Time) int64 {
	if n.Expired(now) {
		return 0
	}
	return n.ExpiresAt.Sub(now).Milliseconds()
}
