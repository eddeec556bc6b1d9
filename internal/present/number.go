package present

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supported = []language.Tag{language.English, language.Indonesian}

var matcher = language.NewMatcher(supported)

// MatchLocale picks the closest supported locale for an Accept-Language
// style preference list, falling back to English.
func MatchLocale(prefs ...string) language.Tag {
	tags := make([]language.Tag, 0, len(prefs))
	for _, p := range prefs {
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// Count formats a dashboard counter with locale digit grouping.
func Count(locale string, n int) string {
	return message.NewPrinter(MatchLocale(locale)).Sprintf("%d", n)
}
