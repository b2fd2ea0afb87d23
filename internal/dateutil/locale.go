package dateutil

import (
	"fmt"
	"strings"
	"time"
)

type localeNames struct {
	weekdays [7]string // Sunday first, matching time.Weekday
	months   [12]string
}

var locales = map[string]localeNames{
	"en": {
		weekdays: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		months:   [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	},
	"es": {
		weekdays: [7]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
		months:   [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"},
	},
}

// Locales returns the supported display locales.
func Locales() []string {
	return []string{"en", "es"}
}

// IsLocale reports whether a display locale is supported.
func IsLocale(name string) bool {
	_, ok := locales[strings.ToLower(name)]
	return ok
}

// DisplayDate formats t as a short, human readable day label.
// "en" renders "Mon Jun 10", "es" renders "lun 10 jun". Unknown locales use "en".
func DisplayDate(t time.Time, locale string) string {
	names, ok := locales[strings.ToLower(locale)]
	if !ok {
		names = locales["en"]
		locale = "en"
	}
	wd := names.weekdays[t.Weekday()]
	mon := names.months[t.Month()-1]
	if strings.ToLower(locale) == "es" {
		return fmt.Sprintf("%s %d %s", wd, t.Day(), mon)
	}
	return fmt.Sprintf("%s %s %d", wd, mon, t.Day())
}
