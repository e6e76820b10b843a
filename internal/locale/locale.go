package locale

import "strings"

const (
	LanguageChinese = "zh"
	LanguageEnglish = "en"
)

// DefaultLanguage 是无法识别请求语言时的回退
const DefaultLanguage = LanguageChinese

func NormalizeLanguage(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "zh") || trimmed == "cn" {
		return LanguageChinese
	}
	if strings.HasPrefix(trimmed, "en") {
		return LanguageEnglish
	}
	return ""
}

// LanguageFromAcceptLanguage 返回 Accept-Language 中第一个可识别的语言。
// q 权重按书写顺序近似处理，浏览器通常已按权重降序排列。
func LanguageFromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(part, ";")
		if lang := NormalizeLanguage(tag); lang != "" {
			return lang
		}
	}
	return ""
}
