// Package pace converts between pace strings and seconds.
//
// The canonical pace representation is "M:SS" per kilometre. Every function in
// this package degrades silently: invalid input yields "" or 0, never an error.
package pace

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	clockPace   = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})$`)
	numericPace = regexp.MustCompile(`^\d+(\.\d+)?$`)
	clockTime   = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})$`)
)

// Normalize returns p in canonical "M:SS" form, or "" when p is not a pace.
// It accepts "M:SS", "M:S", fractional minutes ("5.5") and values suffixed
// with "/km" or "/mi". A zero pace is treated as absent.
func Normalize(p string) string {
	return FromSeconds(ToSeconds(p))
}

// ToSeconds parses a pace into seconds per unit. Returns 0 for invalid input.
func ToSeconds(p string) int {
	p = strings.TrimSpace(strings.ToLower(p))
	p = strings.TrimSuffix(p, "/km")
	p = strings.TrimSuffix(p, "/mi")
	p = strings.TrimSpace(p)

	if m := clockPace.FindStringSubmatch(p); m != nil {
		mins, _ := strconv.Atoi(m[1])
		secs, _ := strconv.Atoi(m[2])
		if secs >= 60 {
			return 0
		}
		return mins*60 + secs
	}

	if numericPace.MatchString(p) {
		mins, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0
		}
		return int(math.Round(mins * 60))
	}

	return 0
}

// FromSeconds formats seconds as "M:SS". Returns "" when seconds <= 0.
func FromSeconds(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Adjust divides a pace by 100/factor. A factor below 100 yields a faster pace
// and Adjust(p, 100) is the identity. Returns "" for invalid input.
func Adjust(p string, factor float64) string {
	secs := ToSeconds(p)
	if secs == 0 || factor <= 0 {
		return ""
	}
	return FromSeconds(int(math.Round(float64(secs) * factor / 100)))
}

// Valid reports whether p parses to a positive pace.
func Valid(p string) bool {
	return ToSeconds(p) > 0
}

// ParseClock parses an "HH:MM:SS" duration into seconds. Returns 0 when invalid.
func ParseClock(s string) int {
	m := clockTime.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	secs, _ := strconv.Atoi(m[3])
	if mins >= 60 || secs >= 60 {
		return 0
	}
	return h*3600 + mins*60 + secs
}

// FormatClock formats seconds as "HH:MM:SS". Returns "" when seconds <= 0.
func FormatClock(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// PerKm returns the pace in seconds per kilometre for a distance and duration.
// Returns 0 if either value is not positive.
func PerKm(km float64, seconds int) int {
	if km <= 0 || seconds <= 0 {
		return 0
	}
	return int(math.Round(float64(seconds) / km))
}
