package service

import "errors"

// 业务错误定义
var (
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("资源不存在")
	// ErrProductNotAvailable 车型不存在或已下架
	ErrProductNotAvailable = errors.New("车型不可用")
	// ErrCartItemInvalid 购物车项参数无效
	ErrCartItemInvalid = errors.New("购物车项无效")
	// ErrThemeInvalid 主题标识无效
	ErrThemeInvalid = errors.New("主题标识无效")
)
