// ABOUTME: Supported locales and their language tags
// ABOUTME: Parses user input into a Locale and maps it to a BCP-47 tag
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLocale is returned for unsupported locale strings
var ErrUnknownLocale = errors.New("unknown locale")

// Locale selects catalog text, scripts and narration language
type Locale string

const (
	English    Locale = "en"
	Portuguese Locale = "pt"
)

// DefaultLocale is used when no locale is configured
const DefaultLocale = English

var localeTags = map[Locale]string{
	English:    "en-US",
	Portuguese: "pt-BR",
}

// Locales returns every supported locale
func Locales() []Locale {
	return []Locale{English, Portuguese}
}

// ParseLocale accepts "en", "pt" or a tag such as "pt-BR"
func ParseLocale(s string) (Locale, error) {
	primary := strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(primary, "-_"); i >= 0 {
		primary = primary[:i]
	}
	l := Locale(primary)
	if _, ok := localeTags[l]; !ok {
		return DefaultLocale, fmt.Errorf("%w: %q", ErrUnknownLocale, s)
	}
	return l, nil
}

// Tag returns the BCP-47 language tag used for narration
func (l Locale) Tag() string {
	if tag, ok := localeTags[l]; ok {
		return tag
	}
	return localeTags[DefaultLocale]
}

// Next cycles to the following supported locale
func (l Locale) Next() Locale {
	all := Locales()
	for i, candidate := range all {
		if candidate == l {
			return all[(i+1)%len(all)]
		}
	}
	return DefaultLocale
}
