// Package i18n carries the message catalogs for every user-facing
// string the translator prints: diagnostics, CLI output, and usage text.
package i18n

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Language names a supported message catalog.
type Language string

const (
	LangEnglish Language = "en"
	LangChinese Language = "zh"
)

// catalogs maps each language to its message table. English is the
// fallback and must define every key.
var catalogs = map[Language]map[string]string{
	LangEnglish: enMessages,
	LangChinese: zhMessages,
}

var (
	currentLang Language
	detectOnce  sync.Once
)

// Init picks the active language from the environment. Called lazily by
// T, so explicit calls are optional.
func Init() {
	detectOnce.Do(func() {
		currentLang = detectLanguage()
	})
}

// SetLanguage overrides the detected language.
func SetLanguage(lang Language) {
	Init()
	currentLang = lang
}

// GetLanguage returns the active language.
func GetLanguage() Language {
	Init()
	return currentLang
}

// T renders a message key in the active language, formatting args like
// fmt.Sprintf. Unknown keys fall back to English, then to the key text.
func T(key string, args ...any) string {
	Init()

	template, ok := catalogs[currentLang][key]
	if !ok {
		template, ok = enMessages[key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}

// detectLanguage reads the usual locale variables, CANGO_LANG first so
// the translator can be forced into a language independently of the
// shell locale.
func detectLanguage() Language {
	for _, name := range []string{"CANGO_LANG", "LC_ALL", "LANG", "LANGUAGE"} {
		if lang := parseLanguageCode(os.Getenv(name)); lang != "" {
			return lang
		}
	}
	return LangEnglish
}

// parseLanguageCode maps locale strings like "zh_CN.UTF-8" or "en-US"
// onto a supported Language, or "" when unrecognized.
func parseLanguageCode(code string) Language {
	code = strings.ToLower(code)
	switch {
	case strings.HasPrefix(code, "zh"):
		return LangChinese
	case strings.HasPrefix(code, "en"):
		return LangEnglish
	}
	return ""
}
