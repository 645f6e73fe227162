// Package i18n resolves the request language and formats localized values
// for web templates.
package i18n

import (
	"math"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "saasify_lang"
)

var (
	defaultTag = language.AmericanEnglish
	supported  = []language.Tag{language.AmericanEnglish, language.BrazilianPortuguese}
	matcher    = language.NewMatcher(supported)
	fallback   = message.NewPrinter(defaultTag)
)

// Localizer translates message keys.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Default returns the default language tag.
func Default() language.Tag {
	return defaultTag
}

// Supported returns the supported language tags in preference order.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Match maps any tag onto a supported one.
func Match(tags ...language.Tag) language.Tag {
	if len(tags) == 0 {
		return defaultTag
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return defaultTag
	}
	return supported[idx]
}

// ParseTag parses and matches a raw language value.
func ParseTag(raw string) (language.Tag, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return language.Und, false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return language.Und, false
	}
	return Match(tag), true
}

// ResolveTag determines the best language for the request from the lang
// query parameter, the language cookie and Accept-Language, in that order.
// The bool reports whether the query choice should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return defaultTag, false
	}
	if tag, ok := ParseTag(r.URL.Query().Get(LangParam)); ok {
		return tag, true
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return Match(tags...), false
		}
	}
	return defaultTag, false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// ResolveLocalizer picks the request language, persisting an explicit choice,
// and returns its printer and tag string. A non-empty override wins.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request, override func(*http.Request) string) (*message.Printer, string) {
	if override != nil {
		if tag, ok := ParseTag(override(r)); ok {
			return message.NewPrinter(tag), tag.String()
		}
	}
	tag, persist := ResolveTag(r)
	if persist {
		SetLanguageCookie(w, tag)
	}
	return message.NewPrinter(tag), tag.String()
}

// T translates key, falling back to the English catalog and then to the key.
func T(loc Localizer, key string, args ...any) string {
	if loc != nil {
		if value := loc.Sprintf(key, args...); value != "" && !missing(value, key) {
			return value
		}
	}
	return fallback.Sprintf(key, args...)
}

// missing reports whether the printer echoed the key back, which is what
// x/text does for keys absent from the matched catalog.
func missing(value, key string) bool {
	return value == key || strings.HasPrefix(value, key+"%!")
}

// FormatAmount renders minor units of an ISO currency, e.g. 2900 USD as
// "$29.00" in English.
func FormatAmount(tag language.Tag, minor int64, code string) string {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		unit = currency.USD
	}
	scale, _ := currency.Standard.Rounding(unit)
	printer := message.NewPrinter(tag)
	symbol := printer.Sprint(currency.NarrowSymbol(unit))
	value := float64(minor) / math.Pow10(scale)
	return symbol + printer.Sprint(number.Decimal(value, number.Scale(scale)))
}

// FormatWholeAmount renders whole currency units without a fraction, as in
// "$29" for plan prices.
func FormatWholeAmount(tag language.Tag, units int64, code string) string {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		unit = currency.USD
	}
	printer := message.NewPrinter(tag)
	return printer.Sprint(currency.NarrowSymbol(unit)) + printer.Sprint(number.Decimal(units))
}

// TagOf parses a resolved language string, defaulting to English.
func TagOf(lang string) language.Tag {
	if tag, ok := ParseTag(lang); ok {
		return tag
	}
	return defaultTag
}

// FormatDate renders a calendar date in the long form of the language.
func FormatDate(tag language.Tag, t time.Time) string {
	printer := message.NewPrinter(Match(tag))
	return T(printer, "date.long", t.Day(), T(printer, monthKeys[t.Month()-1]), t.Year())
}

var monthKeys = [12]string{
	"month.january", "month.february", "month.march", "month.april", "month.may", "month.june",
	"month.july", "month.august", "month.september", "month.october", "month.november", "month.december",
}
