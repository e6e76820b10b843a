package locale

// Text 是一条双语文案
type Text struct {
	Zh string
	En string
}

// In returns the text matching the language, defaulting to Chinese.
func (t Text) In(language string) string {
	if NormalizeLanguage(language) == LanguageEnglish {
		if t.En != "" {
			return t.En
		}
		return t.Zh
	}
	if t.Zh != "" {
		return t.Zh
	}
	return t.En
}
