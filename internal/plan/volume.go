package plan

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/javiermolinar/trote/internal/pace"
)

var (
	segmentPattern = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*(km|min|m|s)$`)
	setsPattern    = regexp.MustCompile(`^(\d+)\s*x`)
)

// Volume is an amount of training in distance and time.
type Volume struct {
	Km      float64
	Minutes float64
}

// Add returns the sum of two volumes.
func (v Volume) Add(o Volume) Volume {
	return Volume{Km: v.Km + o.Km, Minutes: v.Minutes + o.Minutes}
}

// Rounded returns the volume rounded to 0.1 km and whole minutes.
func (v Volume) Rounded() Volume {
	return Volume{
		Km:      math.Round(v.Km*10) / 10,
		Minutes: math.Round(v.Minutes),
	}
}

// segment is a parsed work or rest amount. Exactly one field is non-zero.
type segment struct {
	km      float64
	minutes float64
}

// parseSegment parses "<n><km|m|min|s>". Malformed input yields a zero segment.
func parseSegment(s string) segment {
	m := segmentPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return segment{}
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return segment{}
	}
	switch m[2] {
	case "km":
		return segment{km: n}
	case "m":
		return segment{km: n / 1000}
	case "min":
		return segment{minutes: n}
	case "s":
		return segment{minutes: n / 60}
	}
	return segment{}
}

// parseReps parses "<N>x", defaulting to one repetition.
func parseReps(s string) int {
	m := setsPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// convert fills in the missing side of a segment using a pace in seconds per km.
func convert(seg segment, secsPerKm int) Volume {
	v := Volume{Km: seg.km, Minutes: seg.minutes}
	if secsPerKm <= 0 {
		return v
	}
	if v.Minutes == 0 && v.Km > 0 {
		v.Minutes = v.Km * float64(secsPerKm) / 60
	}
	if v.Km == 0 && v.Minutes > 0 {
		v.Km = v.Minutes * 60 / float64(secsPerKm)
	}
	return v
}

// paceSeconds returns the midpoint seconds of a resolved pace, 0 for NotAvailable.
func paceSeconds(p string) int {
	if p == NotAvailable {
		return 0
	}
	return pace.MidSeconds(p)
}

// SeriesVolume returns the volume of one interval series. Work is converted
// with workPace and rest segments between repetitions with restPace.
func SeriesVolume(s Series, workPace, restPace string) Volume {
	reps := parseReps(s.Sets)
	work := parseSegment(s.Work)
	if override := parseSegment(s.Distance); override.km > 0 {
		work.km = override.km
	}

	v := convert(work, paceSeconds(workPace))
	total := Volume{Km: v.Km * float64(reps), Minutes: v.Minutes * float64(reps)}

	if s.Rest != "" && reps > 1 {
		rest := convert(parseSegment(s.Rest), paceSeconds(restPace))
		gaps := float64(reps - 1)
		total = total.Add(Volume{Km: rest.Km * gaps, Minutes: rest.Minutes * gaps})
	}
	return total
}

// ActivityVolume returns the volume of a single activity.
func ActivityVolume(a Activity, resolve ResolveFunc) Volume {
	if a.IsRest() || a.Load == nil {
		return Volume{}
	}
	p := resolve(a)
	switch l := a.Load.(type) {
	case Distance:
		return convert(segment{km: l.Km}, paceSeconds(p))
	case Duration:
		return convert(segment{minutes: l.Minutes}, paceSeconds(p))
	case Intervals:
		rest := resolve(Activity{Type: TypeRecovery})
		var total Volume
		for _, w := range l.Workouts {
			for _, s := range w.Series {
				total = total.Add(SeriesVolume(s, p, rest))
			}
		}
		return total
	}
	return Volume{}
}

// DayVolume sums the volume of a day's activities.
func DayVolume(activities []Activity, resolve ResolveFunc) Volume {
	var total Volume
	for _, a := range activities {
		total = total.Add(ActivityVolume(a, resolve))
	}
	return total
}

// Stats summarises a week of training.
type Stats struct {
	Total    Volume
	Days     []Volume
	Sessions int
}

// WeekStats computes per-day volumes, the weekly total and the number of
// non-rest activities.
func WeekStats(days []DayRecord, resolve ResolveFunc) Stats {
	stats := Stats{Days: make([]Volume, len(days))}
	for i, d := range days {
		v := DayVolume(d.Activities, resolve)
		stats.Days[i] = v
		stats.Total = stats.Total.Add(v)
		for _, a := range d.Activities {
			if !a.IsRest() {
				stats.Sessions++
			}
		}
	}
	return stats
}
