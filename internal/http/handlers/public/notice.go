package public

import (
	"time"

	"github.com/motorstore/internal/http/response"
	"github.com/motorstore/internal/models"

	"github.com/gin-gonic/gin"
)

// noticeView 提示响应体，附带剩余展示毫秒数供前端恢复倒计时
type noticeView struct {
	models.Notice
	RemainingMS int64 `json:"remaining_ms"` // 剩余展示毫秒数
}

// GetNotice 获取当前全局提示（无提示时 data 为空）
func (h *Handler) GetNotice(c *gin.Context) {
	notice, err := h.NoticeService.Current(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.notice_fetch_failed", err)
		return
	}
	if notice == nil {
		response.Success(c, nil)
		return
	}
	response.Success(c, noticeView{Notice: *notice, RemainingMS: notice.RemainingMS(time.Now())})
}
