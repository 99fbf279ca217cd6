package service

import (
	"context"
	"strings"

	"github.com/motorstore/internal/constants"
	"github.com/motorstore/internal/repository"
)

// ThemeService 主题偏好服务
type ThemeService struct {
	repo repository.ThemeRepository
}

// NewThemeService 创建主题服务
func NewThemeService(repo repository.ThemeRepository) *ThemeService {
	return &ThemeService{repo: repo}
}

// Get 返回当前主题；未设置或存量值非法时返回默认主题
func (s *ThemeService) Get(ctx context.Context) (string, error) {
	raw, err := s.repo.Get(ctx)
	if err != nil {
		return "", err
	}
	theme := normalizeTheme(raw)
	if theme == "" {
		return constants.ThemeDefault, nil
	}
	return theme, nil
}

// Set 设置主题，仅接受 light / dark
func (s *ThemeService) Set(ctx context.Context, theme string) (string, error) {
	normalized := normalizeTheme(theme)
	if normalized == "" {
		return "", ErrThemeInvalid
	}
	if err := s.repo.Set(ctx, normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

// Toggle 在 light / dark 之间切换并返回新主题
func (s *ThemeService) Toggle(ctx context.Context) (string, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return "", err
	}
	next := constants.ThemeDark
	if current == constants.ThemeDark {
		next = constants.ThemeLight
	}
	return s.Set(ctx, next)
}

func normalizeTheme(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case constants.ThemeLight:
		return constants.ThemeLight
	case constants.ThemeDark:
		return constants.ThemeDark
	default:
		return ""
	}
}
