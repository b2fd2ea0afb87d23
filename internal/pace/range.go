package pace

import "strings"

// Range is a pace band such as "5:07-5:40". Fast is the lower number of
// seconds. A single pace is a Range with equal bounds.
type Range struct {
	Fast int
	Slow int
}

// ParseRange parses "M:SS" or "M:SS-M:SS". The second return value is false
// when either bound is invalid.
func ParseRange(s string) (Range, bool) {
	lo, hi, found := strings.Cut(strings.TrimSpace(s), "-")
	a := ToSeconds(lo)
	if a == 0 {
		return Range{}, false
	}
	if !found {
		return Range{Fast: a, Slow: a}, true
	}
	b := ToSeconds(hi)
	if b == 0 {
		return Range{}, false
	}
	if b < a {
		a, b = b, a
	}
	return Range{Fast: a, Slow: b}, true
}

// Offset shifts both bounds by the same number of seconds.
func (r Range) Offset(seconds int) Range {
	return Range{Fast: r.Fast + seconds, Slow: r.Slow + seconds}
}

// Mid returns the midpoint of the band in seconds.
func (r Range) Mid() int {
	return (r.Fast + r.Slow) / 2
}

// IsZero reports whether the range is empty.
func (r Range) IsZero() bool {
	return r.Fast == 0 && r.Slow == 0
}

// String renders "M:SS" for single values and "M:SS-M:SS" for bands.
func (r Range) String() string {
	if r.IsZero() {
		return ""
	}
	if r.Fast == r.Slow {
		return FromSeconds(r.Fast)
	}
	return FromSeconds(r.Fast) + "-" + FromSeconds(r.Slow)
}

// MidSeconds returns the midpoint in seconds of a single pace or a band.
// Returns 0 for invalid input.
func MidSeconds(s string) int {
	r, ok := ParseRange(s)
	if !ok {
		return 0
	}
	return r.Mid()
}
