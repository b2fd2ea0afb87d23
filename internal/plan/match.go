package plan

import (
	"strings"
	"time"

	"github.com/javiermolinar/trote/internal/dateutil"
)

// ImportedActivity is an activity recorded by an external service.
type ImportedActivity struct {
	ExternalID string
	Date       time.Time
	Type       string // external sport type, e.g. "Run", "Walk"
	DistanceKm float64
	Seconds    int
}

var runTypes = []ActivityType{
	TypeEasy, TypeRecovery, TypeThreshold, TypeInterval,
	TypeRepetition, TypeLong, TypeMarathon, TypeRace,
}

// compatible maps an external sport type to the plan types it can satisfy.
var compatible = map[string][]ActivityType{
	"run":        runTypes,
	"trailrun":   runTypes,
	"virtualrun": runTypes,
	"walk":       {TypeWalk},
	"hike":       {TypeWalk},
}

// Compatible reports whether an external sport type can satisfy a planned type.
func Compatible(externalType string, t ActivityType) bool {
	for _, c := range compatible[strings.ToLower(strings.TrimSpace(externalType))] {
		if c == t {
			return true
		}
	}
	return false
}

// MatchPlanDay finds the plan day an imported activity belongs to. A day
// matches when it falls on the same calendar day and holds at least one
// activity compatible with the external type. ok is false otherwise.
func MatchPlanDay(a ImportedActivity, days []ScheduledDay) (index int, ok bool) {
	for _, d := range days {
		if !dateutil.SameDay(d.Date, a.Date) {
			continue
		}
		for _, planned := range d.Record.Activities {
			if Compatible(a.Type, planned.Type) {
				return d.Index, true
			}
		}
		return 0, false
	}
	return 0, false
}
