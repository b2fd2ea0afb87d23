package plan

import (
	"strconv"
	"strings"
)

var typeTitles = map[ActivityType]string{
	TypeRecovery:   "Recovery",
	TypeEasy:       "Easy",
	TypeLong:       "Long run",
	TypeThreshold:  "Threshold",
	TypeInterval:   "Intervals",
	TypeRepetition: "Repetitions",
	TypeRace:       "Race",
	TypeMarathon:   "Marathon pace",
	TypeWalk:       "Walk",
	TypeOff:        "Rest",
}

// Title returns the display name of the type.
func (t ActivityType) Title() string {
	if s, ok := typeTitles[t]; ok {
		return s
	}
	return string(t)
}

// String renders the series as "5x 1000m / 2min".
func (s Series) String() string {
	var sb strings.Builder
	if s.Sets != "" {
		sb.WriteString(s.Sets)
		sb.WriteString(" ")
	}
	sb.WriteString(s.Work)
	if s.Distance != "" {
		sb.WriteString(" (")
		sb.WriteString(s.Distance)
		sb.WriteString(")")
	}
	if s.Rest != "" {
		sb.WriteString(" / ")
		sb.WriteString(s.Rest)
	}
	return sb.String()
}

// Describe renders the prescribed load: "8 km", "45 min" or the series of an
// interval session joined by " + ". Rest activities describe as "".
func (a Activity) Describe() string {
	switch l := a.Load.(type) {
	case Distance:
		return formatAmount(l.Km) + " km"
	case Duration:
		return formatAmount(l.Minutes) + " min"
	case Intervals:
		var parts []string
		for _, w := range l.Workouts {
			for _, s := range w.Series {
				parts = append(parts, s.String())
			}
		}
		return strings.Join(parts, " + ")
	}
	return ""
}

// Label is the title and load of the activity, e.g. "Easy 8 km".
func (a Activity) Label() string {
	d := a.Describe()
	if d == "" {
		return a.Type.Title()
	}
	return a.Type.Title() + " " + d
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
