package language

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is used when nothing in the request matches a supported locale.
const DefaultLocale = Korean

// Order matters: the first tag is the matcher's fallback.
var supportedLocales = []language.Tag{
	language.Korean,
	language.English,
	language.Japanese,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// MatchLocale resolves an Accept-Language header or a stored locale string
// ("ja-JP", "en;q=0.8, ko") to one of the supported UI locales.
func MatchLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLocale
	}

	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}

	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}

	base, _ := supportedLocales[index].Base()
	return base.String()
}

// IsSupportedLocale reports whether locale is exactly one of ko, en, ja.
func IsSupportedLocale(locale string) bool {
	switch locale {
	case Korean, English, Japanese:
		return true
	}
	return false
}
