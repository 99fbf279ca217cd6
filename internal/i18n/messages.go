package i18n

// messages 文案表（locale -> key -> 文案）
var messages = map[string]map[string]string{
	LocaleZH: {
		"error.bad_request":            "请求参数有误",
		"error.not_found":              "资源不存在",
		"error.internal":               "服务器内部错误",
		"error.product_not_found":      "车型不存在或已下架",
		"error.product_not_available":  "车型不可售，无法加入购物车",
		"error.product_fetch_failed":   "获取车型信息失败",
		"error.category_fetch_failed":  "获取分类信息失败",
		"error.config_fetch_failed":    "获取站点配置失败",
		"error.cart_fetch_failed":      "获取购物车失败",
		"error.cart_update_failed":     "更新购物车失败",
		"error.cart_quantity_invalid":  "商品数量必须是整数",
		"error.theme_invalid":          "主题标识无效，仅支持 light / dark",
		"error.theme_fetch_failed":     "获取主题设置失败",
		"error.theme_update_failed":    "保存主题设置失败",
		"error.notice_fetch_failed":    "获取提示信息失败",
		"error.rate_limit_unavailable": "限流服务暂不可用，请稍后重试",
		"error.rate_limited":           "请求过于频繁，请 %d 秒后重试",
		"error.cart_rate_limited":      "操作过于频繁，请 %d 秒后重试",
		"cart.empty":                   "购物车还是空的，去挑一辆心仪的车吧",
		"cart.cleared":                 "购物车已清空",
		"cart.clear_cancelled":         "已取消清空购物车",
		"cart.storage_degraded":        "存储暂不可用，购物车变更仅保留在当前会话",
		"notice.cart_item_added":       "%s 已加入购物车，当前共 %d 件",
	},
	LocaleTW: {
		"error.bad_request":            "請求參數有誤",
		"error.not_found":              "資源不存在",
		"error.internal":               "伺服器內部錯誤",
		"error.product_not_found":      "車型不存在或已下架",
		"error.product_not_available":  "車型不可售，無法加入購物車",
		"error.product_fetch_failed":   "獲取車型資訊失敗",
		"error.category_fetch_failed":  "獲取分類資訊失敗",
		"error.config_fetch_failed":    "獲取站點配置失敗",
		"error.cart_fetch_failed":      "獲取購物車失敗",
		"error.cart_update_failed":     "更新購物車失敗",
		"error.cart_quantity_invalid":  "商品數量必須是整數",
		"error.theme_invalid":          "主題標識無效，僅支援 light / dark",
		"error.theme_fetch_failed":     "獲取主題設定失敗",
		"error.theme_update_failed":    "保存主題設定失敗",
		"error.notice_fetch_failed":    "獲取提示資訊失敗",
		"error.rate_limit_unavailable": "限流服務暫不可用，請稍後重試",
		"error.rate_limited":           "請求過於頻繁，請 %d 秒後重試",
		"error.cart_rate_limited":      "操作過於頻繁，請 %d 秒後重試",
		"cart.empty":                   "購物車還是空的，去挑一輛心儀的車吧",
		"cart.cleared":                 "購物車已清空",
		"cart.clear_cancelled":         "已取消清空購物車",
		"cart.storage_degraded":        "儲存暫不可用，購物車變更僅保留在當前會話",
		"notice.cart_item_added":       "%s 已加入購物車，當前共 %d 件",
	},
	LocaleEN: {
		"error.bad_request":            "Invalid request parameters",
		"error.not_found":              "Resource not found",
		"error.internal":               "Internal server error",
		"error.product_not_found":      "Car model not found or no longer available",
		"error.product_not_available":  "Car model is not for sale and cannot be added to the cart",
		"error.product_fetch_failed":   "Failed to fetch car models",
		"error.category_fetch_failed":  "Failed to fetch categories",
		"error.config_fetch_failed":    "Failed to fetch site configuration",
		"error.cart_fetch_failed":      "Failed to fetch cart",
		"error.cart_update_failed":     "Failed to update cart",
		"error.cart_quantity_invalid":  "Quantity must be an integer",
		"error.theme_invalid":          "Invalid theme, only light / dark are supported",
		"error.theme_fetch_failed":     "Failed to fetch theme setting",
		"error.theme_update_failed":    "Failed to save theme setting",
		"error.notice_fetch_failed":    "Failed to fetch notice",
		"error.rate_limit_unavailable": "Rate limiter unavailable, please retry later",
		"error.rate_limited":           "Too many requests, please retry in %d seconds",
		"error.cart_rate_limited":      "Too many requests, please retry in %d seconds",
		"cart.empty":                   "Your cart is empty, go pick a car you love",
		"cart.cleared":                 "Cart cleared",
		"cart.clear_cancelled":         "Cart clearing cancelled",
		"cart.storage_degraded":        "Storage unavailable, cart changes are kept in this session only",
		"notice.cart_item_added":       "%s added to cart, %d item(s) in total",
	},
}
