// Package plan defines training plans and the calculations that turn them
// into weekly schedules, display paces and volume statistics.
package plan

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrEmptyPath       = errors.New("plan path cannot be empty")
	ErrUnknownType     = errors.New("unknown activity type")
	ErrUnknownUnits    = errors.New("units must be 'km' or 'min'")
	ErrInvalidDistance = errors.New("distance must be a non-negative number")
	ErrPlanNotFound    = errors.New("plan not found")
	ErrDayOutOfRange   = errors.New("plan day index out of range")
)

// ActivityType is the semantic type of a planned activity.
type ActivityType string

const (
	TypeRecovery   ActivityType = "recovery"
	TypeEasy       ActivityType = "easy"
	TypeLong       ActivityType = "long"
	TypeThreshold  ActivityType = "threshold"
	TypeInterval   ActivityType = "interval"
	TypeRepetition ActivityType = "repetition"
	TypeRace       ActivityType = "race"
	TypeMarathon   ActivityType = "marathon"
	TypeWalk       ActivityType = "walk"
	TypeOff        ActivityType = "off"
)

var activityTypes = map[ActivityType]bool{
	TypeRecovery: true, TypeEasy: true, TypeLong: true, TypeThreshold: true,
	TypeInterval: true, TypeRepetition: true, TypeRace: true, TypeMarathon: true,
	TypeWalk: true, TypeOff: true,
}

// ParseActivityType parses a type name. "rest" and "off-day" are accepted as off.
func ParseActivityType(s string) (ActivityType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "rest", "off-day", "offday", "descanso":
		return TypeOff, nil
	}
	t := ActivityType(s)
	if !activityTypes[t] {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

// IsRest returns true for off days.
func (t ActivityType) IsRest() bool {
	return t == TypeOff
}

// Load is the prescribed amount of work for an activity. It is one of
// Distance, Duration or Intervals; off days carry no load.
type Load interface {
	isLoad()
}

// Distance is a simple activity measured in kilometres.
type Distance struct {
	Km float64
}

// Duration is a simple activity measured in minutes.
type Duration struct {
	Minutes float64
}

// Intervals is a structured session made of one or more workouts.
type Intervals struct {
	Workouts []Workout
}

func (Distance) isLoad()  {}
func (Duration) isLoad()  {}
func (Intervals) isLoad() {}

// Workout is a named block of repeated series.
type Workout struct {
	Name   string
	Series []Series
}

// Series is a set of repetitions of a work segment with optional rest.
type Series struct {
	Sets     string // e.g. "6x"; empty means one repetition
	Work     string // e.g. "1000m", "3min", "2km", "90s"
	Rest     string // optional, same format as Work
	Distance string // optional per-repetition distance override
}

// Activity is one prescribed training effort within a day.
type Activity struct {
	Type      ActivityType
	Intensity ActivityType // optional descriptor overriding Type for pace lookup
	Load      Load
	Note      string
}

// IsRest returns true if the activity is an off day.
func (a Activity) IsRest() bool {
	return a.Type.IsRest()
}

// DayRecord is one calendar day of a plan.
type DayRecord struct {
	Activities []Activity
	Note       string
}

// IsRest returns true if the day has no training activity.
func (d DayRecord) IsRest() bool {
	for _, a := range d.Activities {
		if !a.IsRest() {
			return false
		}
	}
	return true
}

// Plan is a named training program of consecutive days.
type Plan struct {
	Path     string
	Name     string
	Coach    string
	Level    string
	Duration int // weeks
	Volume   string
	Days     []DayRecord
}

// Weeks returns the number of 7-day blocks the plan spans.
func (p *Plan) Weeks() int {
	return (len(p.Days) + 6) / 7
}

// ValidateDayIndex checks that idx addresses a day of the plan.
func (p *Plan) ValidateDayIndex(idx int) error {
	if idx < 0 || idx >= len(p.Days) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrDayOutOfRange, idx, len(p.Days))
	}
	return nil
}

// Summary is the listing view of a plan, without its days.
type Summary struct {
	Path     string
	Name     string
	Coach    string
	Level    string
	Duration int
	Volume   string
	Days     int
}

// Summary returns the listing view of the plan.
func (p *Plan) Summary() Summary {
	return Summary{
		Path:     p.Path,
		Name:     p.Name,
		Coach:    p.Coach,
		Level:    p.Level,
		Duration: p.Duration,
		Volume:   p.Volume,
		Days:     len(p.Days),
	}
}
