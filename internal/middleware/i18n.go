package middleware

import (
	"context"
	"net/http"
	"strings"

	"console/internal/present"
)

type localeContextKey struct{}

// LocaleKey stores the negotiated locale ("en" or "id").
var LocaleKey = localeContextKey{}

// I18N negotiates the display locale from X-Locale, then Accept-Language,
// then defaultLocale.
func I18N(defaultLocale string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := detectLocale(r, defaultLocale)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), LocaleKey, locale)))
		})
	}
}

func detectLocale(r *http.Request, fallback string) string {
	for _, pref := range []string{r.Header.Get("X-Locale"), r.Header.Get("Accept-Language"), fallback} {
		if strings.TrimSpace(pref) == "" {
			continue
		}
		base, _ := present.MatchLocale(pref).Base()
		return base.String()
	}
	return "en"
}

func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok {
		return v
	}
	return "en"
}
