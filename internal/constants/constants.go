package constants

// 持久化存储键常量
const (
	StoreKeyCart   = "cart"
	StoreKeyTheme  = "theme"
	StoreKeyNotice = "notice"
)

// 主题常量
const (
	ThemeLight   = "light"
	ThemeDark    = "dark"
	ThemeDefault = ThemeLight
)

// 购物车页脚动作常量
const (
	CartActionCheckout = "checkout"
	CartActionContinue = "continue_shopping"
)

// 购物车行内动作常量
const (
	CartLineActionIncrease    = "increase"
	CartLineActionDecrease    = "decrease"
	CartLineActionSetQuantity = "set_quantity"
	CartLineActionRemove      = "remove"
)

// 通知默认配置常量
const (
	NoticeDefaultDurationMS = 2500
)

// 队列常量
const (
	QueueDefault     = "default"
	TaskNoticeExpire = "notice:expire"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "ms"
)

// 币种常量
const (
	SiteCurrencyDefault = "USD"
)

// 站点语言常量
const (
	LocaleZhCN = "zh-CN"
	LocaleZhTW = "zh-TW"
	LocaleEnUS = "en-US"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleZhCN, LocaleZhTW, LocaleEnUS}
