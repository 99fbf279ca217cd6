package public

import (
	"errors"

	"github.com/motorstore/internal/http/response"
	"github.com/motorstore/internal/service"

	"github.com/gin-gonic/gin"
)

// SetThemeRequest 设置主题请求
type SetThemeRequest struct {
	Theme string `json:"theme" binding:"required"` // light / dark
}

// GetTheme 获取当前主题
func (h *Handler) GetTheme(c *gin.Context) {
	theme, err := h.ThemeService.Get(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.theme_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"theme": theme})
}

// SetTheme 设置主题
func (h *Handler) SetTheme(c *gin.Context) {
	var req SetThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	theme, err := h.ThemeService.Set(c.Request.Context(), req.Theme)
	if err != nil {
		if errors.Is(err, service.ErrThemeInvalid) {
			respondError(c, response.CodeBadRequest, "error.theme_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.theme_update_failed", err)
		return
	}
	response.Success(c, gin.H{"theme": theme})
}

// ToggleTheme 明暗主题互切
func (h *Handler) ToggleTheme(c *gin.Context) {
	theme, err := h.ThemeService.Toggle(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.theme_update_failed", err)
		return
	}
	response.Success(c, gin.H{"theme": theme})
}
