package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

const DefaultLang = "es"

//go:embed locales/*.json
var localesFS embed.FS

// Bundle guarda un map plano key->texto por idioma.
// Las keys usan puntos ("profile.title") y los placeholders van como {{name}}.
type Bundle struct {
	messages map[string]map[string]string
	fallback string

	langs   []string
	matcher language.Matcher
}

// Load lee los locales embebidos (es, en).
func Load() (*Bundle, error) {
	entries, err := fs.ReadDir(localesFS, "locales")
	if err != nil {
		return nil, err
	}

	messages := map[string]map[string]string{}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		b, err := fs.ReadFile(localesFS, path.Join("locales", e.Name()))
		if err != nil {
			return nil, err
		}
		var m map[string]string
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("locale %s: %w", e.Name(), err)
		}
		messages[strings.TrimSuffix(e.Name(), ".json")] = m
	}

	return New(DefaultLang, messages)
}

func MustLoad() *Bundle {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

func New(fallback string, messages map[string]map[string]string) (*Bundle, error) {
	if _, ok := messages[fallback]; !ok {
		return nil, fmt.Errorf("fallback language %q has no messages", fallback)
	}

	// El primer tag es el default del matcher, por eso va el fallback primero.
	langs := []string{fallback}
	others := make([]string, 0, len(messages))
	for lang := range messages {
		if lang != fallback {
			others = append(others, lang)
		}
	}
	sort.Strings(others)
	langs = append(langs, others...)

	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("invalid language %q: %w", l, err)
		}
		tags = append(tags, tag)
	}

	return &Bundle{
		messages: messages,
		fallback: fallback,
		langs:    langs,
		matcher:  language.NewMatcher(tags),
	}, nil
}

func (b *Bundle) Supported() []string {
	return append([]string(nil), b.langs...)
}

// Match elige el idioma soportado para un header Accept-Language o un código suelto ("en", "es-AR").
func (b *Bundle) Match(accept string) string {
	accept = strings.TrimSpace(accept)
	if accept == "" {
		return b.fallback
	}
	_, idx := language.MatchStrings(b.matcher, accept)
	if idx < 0 || idx >= len(b.langs) {
		return b.fallback
	}
	return b.langs[idx]
}

// T traduce key. Si no existe en lang usa el fallback, y si tampoco, devuelve la key.
func (b *Bundle) T(lang, key string, params map[string]string) string {
	msg, ok := b.messages[lang][key]
	if !ok {
		msg, ok = b.messages[b.fallback][key]
	}
	if !ok {
		return key
	}
	if len(params) == 0 {
		return msg
	}

	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
