package i18n

import "testing"

func TestTranslation(t *testing.T) {
	SetLanguage(LangEnglish)
	defer SetLanguage(LangEnglish)

	if got := T(ErrUntermString); got != "unterminated string literal" {
		t.Errorf("T(ErrUntermString) = %q", got)
	}

	SetLanguage(LangChinese)
	if got := T(ErrUntermString); got != "字符串字面量未闭合" {
		t.Errorf("zh T(ErrUntermString) = %q", got)
	}
}

func TestFormatArgs(t *testing.T) {
	SetLanguage(LangEnglish)
	got := T(ErrUndeclared, "count")
	want := "use of undeclared identifier 'count'"
	if got != want {
		t.Errorf("T = %q, want %q", got, want)
	}
}

func TestUnknownKeyFallsBack(t *testing.T) {
	SetLanguage(LangEnglish)
	if got := T("no.such.key"); got != "no.such.key" {
		t.Errorf("unknown key = %q, want the key itself", got)
	}
}

func TestCatalogsCoverSameKeys(t *testing.T) {
	for key := range zhMessages {
		if _, ok := enMessages[key]; !ok {
			t.Errorf("zh key %q missing from en catalog", key)
		}
	}
	for key := range enMessages {
		if _, ok := zhMessages[key]; !ok {
			t.Errorf("en key %q missing from zh catalog", key)
		}
	}
}
