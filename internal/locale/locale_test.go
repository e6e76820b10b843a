package locale

import "testing"

func TestNormalizeLanguage(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "zh", want: LanguageChinese},
		{input: "zh-CN", want: LanguageChinese},
		{input: "ZH_hans", want: LanguageChinese},
		{input: "en", want: LanguageEnglish},
		{input: "en-US", want: LanguageEnglish},
		{input: "fr", want: ""},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		if got := NormalizeLanguage(tc.input); got != tc.want {
			t.Fatalf("NormalizeLanguage(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestLanguageFromAcceptLanguage(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "zh-CN,zh;q=0.9", want: LanguageChinese},
		{input: "en-US,en;q=0.9", want: LanguageEnglish},
		{input: "en-GB,zh-CN;q=0.8", want: LanguageEnglish},
		{input: "fr-FR, zh;q=0.5", want: LanguageChinese},
		{input: "fr-FR", want: ""},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		if got := LanguageFromAcceptLanguage(tc.input); got != tc.want {
			t.Fatalf("LanguageFromAcceptLanguage(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestTextIn(t *testing.T) {
	text := Text{Zh: "菜谱不存在", En: "Recipe not found"}

	if got := text.In("en-US"); got != "Recipe not found" {
		t.Fatalf("expected english text, got %q", got)
	}
	if got := text.In(""); got != "菜谱不存在" {
		t.Fatalf("expected chinese fallback, got %q", got)
	}
	if got := (Text{En: "only english"}).In("zh"); got != "only english" {
		t.Fatalf("expected english fallback, got %q", got)
	}
}
