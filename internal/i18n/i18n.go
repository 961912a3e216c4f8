// Package i18n loads per-locale translation tables: weekday-abbreviation
// tokens for request parsing, display names for calendar rendering, and the
// locale's closed-activity sentinel.
package i18n

import (
	"embed"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/example/agenda/internal/booking"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// DefaultClosedSentinel is the fixed closed-activity literal used when no
// translation table supplies one.
const DefaultClosedSentinel = "Tancat"

// CanonicalWeekdays maps the fixed 7-symbol weekday alphabet to weekday
// codes.
var CanonicalWeekdays = map[string]time.Weekday{
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
	"Sun": time.Sunday,
}

// CanonicalCode returns the canonical 3-letter code for a weekday.
func CanonicalCode(day time.Weekday) string {
	return day.String()[:3]
}

type table struct {
	Locale        string            `yaml:"locale"`
	TokenLength   int               `yaml:"token_length"`
	Closed        string            `yaml:"closed"`
	WeekdayTokens map[string]string `yaml:"weekday_tokens"`
	WeekdayNames  map[string]string `yaml:"weekday_names"`
	MonthNames    []string          `yaml:"month_names"`
}

// Translator exposes one locale's translation table as the lookup functions
// the parser and the rendering layer consume.
type Translator struct {
	locale      string
	tokenLength int
	closed      string
	tokens      map[string]time.Weekday
	dayNames    map[time.Weekday]string
	monthNames  []string
}

// Load reads the embedded table for the given locale code. Unknown locales
// fall back to the canonical English-token table so parsing still works; the
// fallback keeps the requested code for incident reporting.
func Load(locale string) (*Translator, error) {
	code := strings.ToLower(strings.TrimSpace(locale))
	if code == "" {
		return nil, fmt.Errorf("i18n: empty locale code")
	}

	data, err := localeFS.ReadFile("locales/" + code + ".yaml")
	if err != nil {
		fallback, ferr := Load("eng")
		if ferr != nil {
			return nil, ferr
		}
		fallback.locale = strings.ToUpper(code)
		return fallback, nil
	}

	var tbl table
	if err := yaml.Unmarshal(data, &tbl); err != nil {
		return nil, fmt.Errorf("i18n: parse locale %s: %w", code, err)
	}
	if tbl.TokenLength <= 0 {
		return nil, fmt.Errorf("i18n: locale %s has no token length", code)
	}
	if len(tbl.MonthNames) != 12 {
		return nil, fmt.Errorf("i18n: locale %s has %d month names", code, len(tbl.MonthNames))
	}

	tr := &Translator{
		locale:      tbl.Locale,
		tokenLength: tbl.TokenLength,
		closed:      tbl.Closed,
		tokens:      make(map[string]time.Weekday, len(tbl.WeekdayTokens)),
		dayNames:    make(map[time.Weekday]string, len(tbl.WeekdayNames)),
		monthNames:  tbl.MonthNames,
	}
	if tr.closed == "" {
		tr.closed = DefaultClosedSentinel
	}
	for token, code := range tbl.WeekdayTokens {
		day, ok := CanonicalWeekdays[code]
		if !ok {
			return nil, fmt.Errorf("i18n: locale %s maps token %q to unknown code %q", tbl.Locale, token, code)
		}
		tr.tokens[token] = day
	}
	for code, name := range tbl.WeekdayNames {
		day, ok := CanonicalWeekdays[code]
		if !ok {
			return nil, fmt.Errorf("i18n: locale %s names unknown code %q", tbl.Locale, code)
		}
		tr.dayNames[day] = name
	}
	return tr, nil
}

// Locale returns the locale code the translator serves.
func (t *Translator) Locale() string { return t.locale }

// TokenLength returns the width of one weekday token in this locale's masks.
func (t *Translator) TokenLength() int { return t.tokenLength }

// Weekday translates one locale token into its canonical weekday code.
func (t *Translator) Weekday(token string) (time.Weekday, error) {
	if day, ok := t.tokens[token]; ok {
		return day, nil
	}
	return 0, &booking.UnknownWeekdayError{Token: token, Locale: t.locale}
}

// ClosedSentinel returns the activity name that marks closed bookings in
// this locale.
func (t *Translator) ClosedSentinel() string { return t.closed }

// MonthName returns the localized display name for a month.
func (t *Translator) MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return m.String()
	}
	return t.monthNames[int(m)-1]
}

// WeekdayName returns the localized display name for a weekday.
func (t *Translator) WeekdayName(day time.Weekday) string {
	if name, ok := t.dayNames[day]; ok {
		return name
	}
	return day.String()
}
