package service

import (
	"context"
	"sync"
	"time"

	"github.com/motorstore/internal/constants"
	"github.com/motorstore/internal/logger"
	"github.com/motorstore/internal/models"
	"github.com/motorstore/internal/queue"
	"github.com/motorstore/internal/repository"

	"github.com/google/uuid"
)

// NoticeService 提示条服务。
// 全站仅一个提示位：后到的提示覆盖先到的并重新计时。
type NoticeService struct {
	mu                sync.Mutex
	repo              repository.NoticeRepository
	queueClient       *queue.Client
	timer             *time.Timer
	defaultDurationMS int64
}

// NewNoticeService 创建提示条服务
func NewNoticeService(repo repository.NoticeRepository, queueClient *queue.Client, defaultDurationMS int64) *NoticeService {
	if defaultDurationMS <= 0 {
		defaultDurationMS = constants.NoticeDefaultDurationMS
	}
	return &NoticeService{
		repo:              repo,
		queueClient:       queueClient,
		defaultDurationMS: defaultDurationMS,
	}
}

// Notify 发布提示并调度定时隐藏。
// 发后即忘：持久化或调度失败只记日志，调用方不感知。
func (s *NoticeService) Notify(ctx context.Context, message string, durationMS int64) models.Notice {
	if durationMS <= 0 {
		durationMS = s.defaultDurationMS
	}
	now := time.Now()
	notice := models.Notice{
		ID:         uuid.NewString(),
		Message:    message,
		DurationMS: durationMS,
		ShownAt:    now,
		ExpiresAt:  now.Add(time.Duration(durationMS) * time.Millisecond),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	if err := s.repo.Save(ctx, &notice); err != nil {
		logger.Warnw("notice_save_failed", "notice_id", notice.ID, "error", err)
	}
	s.scheduleExpireLocked(notice)
	return notice
}

// Current 返回当前未过期的提示；不存在或已过期返回 nil（过期的顺手清理）
func (s *NoticeService) Current(ctx context.Context) (*models.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notice, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if notice == nil {
		return nil, nil
	}
	if notice.Expired(time.Now()) {
		if err := s.repo.Clear(ctx); err != nil {
			logger.Warnw("notice_lazy_clear_failed", "notice_id", notice.ID, "error", err)
		}
		return nil, nil
	}
	return notice, nil
}

// Expire 过期指定提示。ID 不匹配说明提示已被更新的覆盖，直接忽略。
func (s *NoticeService) Expire(ctx context.Context, noticeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	notice, err := s.repo.Get(ctx)
	if err != nil {
		return err
	}
	if notice == nil || notice.ID != noticeID {
		logger.Debugw("notice_expire_skipped", "notice_id", noticeID)
		return nil
	}
	return s.repo.Clear(ctx)
}

// ExpireOverdue 清理已过期未隐藏的提示（后台周期兜底）
func (s *NoticeService) ExpireOverdue(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	notice, err := s.repo.Get(ctx)
	if err != nil {
		return err
	}
	if notice == nil || !notice.Expired(time.Now()) {
		return nil
	}
	return s.repo.Clear(ctx)
}

// Close 停止本地隐藏计时器
func (s *NoticeService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
}

// scheduleExpireLocked 调度定时隐藏：队列可用走延迟任务，否则回退进程内计时器
func (s *NoticeService) scheduleExpireLocked(notice models.Notice) {
	delay := time.Duration(notice.DurationMS) * time.Millisecond
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueNoticeExpire(queue.NoticeExpirePayload{NoticeID: notice.ID}, delay)
		if err == nil {
			return
		}
		logger.Warnw("notice_enqueue_expire_failed", "notice_id", notice.ID, "error", err)
	}
	noticeID := notice.ID
	s.timer = time.AfterFunc(delay, func() {
		if err := s.Expire(context.Background(), noticeID); err != nil {
			logger.Warnw("notice_expire_failed", "notice_id", noticeID, "error", err)
		}
	})
}

func (s *NoticeService) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
