// Package i18n resolves user-visible messages through a key to string lookup
// with {{placeholder}} interpolation. Two locales are supported; unknown
// locales fall back to the default, unknown keys fall back to the key itself.
package i18n

import (
	"strings"

	"github.com/charmbracelet/log"
)

// Values holds interpolation values keyed by placeholder name.
type Values map[string]string

// Bundle is a locale-aware message catalog.
type Bundle struct {
	defaultLocale string
}

// New creates a Bundle. An unsupported default locale falls back to "en".
func New(defaultLocale string) *Bundle {
	if _, ok := dictionaries[defaultLocale]; !ok {
		log.Warn("Unsupported default locale, falling back to en", "locale", defaultLocale)
		defaultLocale = "en"
	}
	return &Bundle{defaultLocale: defaultLocale}
}

// T resolves key in the given locale and interpolates {{placeholders}} from
// values. A message must never be hard-coded per locale at a call site.
func (b *Bundle) T(locale, key string, values Values) string {
	dict, ok := dictionaries[locale]
	if !ok {
		dict = dictionaries[b.defaultLocale]
	}
	msg, ok := dict[key]
	if !ok {
		// Fall back to the default locale before giving up.
		if fallback, found := dictionaries[b.defaultLocale][key]; found {
			msg = fallback
		} else {
			log.Warn("Missing translation key", "key", key, "locale", locale)
			return key
		}
	}
	return interpolate(msg, values)
}

// Locales returns the supported locale codes.
func (b *Bundle) Locales() []string {
	return []string{"en", "it"}
}

func interpolate(msg string, values Values) string {
	if len(values) == 0 {
		return msg
	}
	for name, value := range values {
		msg = strings.ReplaceAll(msg, "{{"+name+"}}", value)
	}
	return msg
}
