package reflection

import "strings"

// Locale is one of the supported response languages.
type Locale string

const (
	LocaleFR Locale = "fr"
	LocaleEN Locale = "en"
	LocaleAR Locale = "ar"
)

// Locales lists every supported locale.
var Locales = []Locale{LocaleFR, LocaleEN, LocaleAR}

// ResolveLocale maps a browser-style language preference ("fr-FR",
// "ar_MA", "en") onto a supported locale. French and Arabic are matched
// by prefix, anything else resolves to English, and an empty preference
// keeps the product default of French.
func ResolveLocale(tag string) Locale {
	l := strings.ToLower(strings.TrimSpace(tag))
	switch {
	case l == "":
		return LocaleFR
	case strings.HasPrefix(l, "fr"):
		return LocaleFR
	case strings.HasPrefix(l, "ar"):
		return LocaleAR
	default:
		return LocaleEN
	}
}

// ParseLocale validates an explicit locale value coming from a request
// body. Unknown values fall back to French, matching what the pages did
// with unexpected "lang" fields.
func ParseLocale(v string) Locale {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "en":
		return LocaleEN
	case "ar":
		return LocaleAR
	default:
		return LocaleFR
	}
}
