package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-care/internal/platform/i18n"
)

const langKey ctxKey = "lang"

// Locale resuelve el idioma del request: ?lang= gana sobre Accept-Language.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := bundle.Match(r.Header.Get("Accept-Language"))
			if q := strings.TrimSpace(r.URL.Query().Get("lang")); q != "" {
				lang = bundle.Match(q)
			}
			ctx := context.WithValue(r.Context(), langKey, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLang devuelve el idioma resuelto o i18n.DefaultLang.
func GetLang(ctx context.Context) string {
	if v, ok := ctx.Value(langKey).(string); ok && v != "" {
		return v
	}
	return i18n.DefaultLang
}
