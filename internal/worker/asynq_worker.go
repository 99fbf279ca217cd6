package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/motorstore/internal/logger"
	"github.com/motorstore/internal/provider"
	"github.com/motorstore/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskNoticeExpire, c.handleNoticeExpire)
}

func (c *Consumer) handleNoticeExpire(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_notice_expire_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.NoticeExpirePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_notice_expire_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.NoticeID) == "" {
		logger.Debugw("worker_notice_expire_skip_invalid_payload")
		return nil
	}
	if c.NoticeService == nil {
		logger.Warnw("worker_notice_expire_skip_notice_service_nil", "notice_id", payload.NoticeID)
		return nil
	}
	if err := c.NoticeService.Expire(ctx, payload.NoticeID); err != nil {
		logger.Warnw("worker_notice_expire_failed", "notice_id", payload.NoticeID, "error", err)
		return err
	}
	return nil
}
