package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 语言常量
const (
	LocaleZH = "zh-CN"
	LocaleTW = "zh-TW"
	LocaleEN = "en-US"
)

const localeCookieName = "locale"

// ResolveLocale 解析请求语言（lang 参数 > locale Cookie > Accept-Language，默认 zh-CN）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return LocaleZH
	}
	if lang := Normalize(c.Query("lang")); lang != "" {
		return lang
	}
	if cookie, err := c.Cookie(localeCookieName); err == nil {
		if lang := Normalize(cookie); lang != "" {
			return lang
		}
	}
	if lang := matchAcceptLanguage(c.GetHeader("Accept-Language")); lang != "" {
		return lang
	}
	return LocaleZH
}

// Normalize 归一化语言标识，无法识别时返回空串
func Normalize(locale string) string {
	normalized := strings.ToLower(strings.TrimSpace(locale))
	switch {
	case normalized == "":
		return ""
	case normalized == "zh" || normalized == "zh-cn" || strings.HasPrefix(normalized, "zh-hans"):
		return LocaleZH
	case normalized == "zh-tw" || normalized == "zh-hk" || normalized == "zh-mo" || strings.HasPrefix(normalized, "zh-hant"):
		return LocaleTW
	case normalized == "en" || strings.HasPrefix(normalized, "en-"):
		return LocaleEN
	default:
		return ""
	}
}

// T 取指定语言文案，逐级回退到 zh-CN，最终回退为 key 本身
func T(locale, key string) string {
	normalized := Normalize(locale)
	if normalized == "" {
		normalized = LocaleZH
	}
	if table, ok := messages[normalized]; ok {
		if text, ok := table[key]; ok {
			return text
		}
	}
	if normalized != LocaleZH {
		if text, ok := messages[LocaleZH][key]; ok {
			return text
		}
	}
	return key
}

// Sprintf 取文案并格式化参数
func Sprintf(locale, key string, args ...interface{}) string {
	text := T(locale, key)
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}

func matchAcceptLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	for _, part := range strings.Split(header, ",") {
		tag := part
		if idx := strings.Index(tag, ";"); idx >= 0 {
			tag = tag[:idx]
		}
		if lang := Normalize(tag); lang != "" {
			return lang
		}
	}
	return ""
}
