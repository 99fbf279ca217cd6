package queue

import (
	"encoding/json"

	"github.com/motorstore/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskNoticeExpire 提示过期任务
	TaskNoticeExpire = constants.TaskNoticeExpire
)

// NoticeExpirePayload 提示过期任务载荷
type NoticeExpirePayload struct {
	NoticeID string `json:"notice_id"`
}

// NewNoticeExpireTask 创建提示过期任务
func NewNoticeExpireTask(payload NoticeExpirePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNoticeExpire, body), nil
}
