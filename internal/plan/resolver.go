package plan

import (
	"github.com/javiermolinar/trote/internal/pace"
	"github.com/javiermolinar/trote/internal/reference"
)

// NotAvailable is the display pace for activities with no resolvable zone.
const NotAvailable = "N/A"

// walkOffset is how much slower than recovery a walk is, in seconds.
const walkOffset = 120

// zoneFor maps an activity type to the pace zone that drives it.
var zoneFor = map[ActivityType]string{
	TypeRecovery:   reference.ZoneRecovery,
	TypeEasy:       reference.ZoneEasy,
	TypeLong:       reference.ZoneEasy,
	TypeMarathon:   reference.ZoneMarathon,
	TypeThreshold:  reference.ZoneThreshold,
	TypeInterval:   reference.ZoneInterval,
	TypeRepetition: reference.ZoneRepetition,
}

// Paces is a set of named zone paces for one runner.
type Paces map[string]string

// With returns a copy of p with the valid overrides applied. Override keys
// must be known zones; values are normalized and invalid values are ignored.
func (p Paces) With(overrides map[string]string) Paces {
	out := make(Paces, len(p)+len(overrides))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		if !reference.IsZone(k) {
			continue
		}
		if r, ok := pace.ParseRange(v); ok {
			out[k] = r.String()
		}
	}
	return out
}

// ResolveFunc returns the display pace of an activity.
type ResolveFunc func(Activity) string

// Resolver computes display paces from a runner's zone paces and parameter.
type Resolver struct {
	Paces  Paces
	Param  int
	Tables *reference.Tables
}

// NewResolver builds a resolver for a parameter with optional overrides.
// Returns a resolver that only yields NotAvailable if the parameter is unknown.
func NewResolver(tables *reference.Tables, param int, overrides map[string]string) *Resolver {
	zones, _ := tables.Paces(param)
	return &Resolver{
		Paces:  Paces(zones).With(overrides),
		Param:  param,
		Tables: tables,
	}
}

// Pace returns the display pace for an activity, or NotAvailable.
func (r *Resolver) Pace(a Activity) string {
	if r == nil {
		return NotAvailable
	}

	if a.Type == TypeRace {
		if d, ok := a.Load.(Distance); ok && d.Km > 0 && r.Tables != nil {
			if p := r.Tables.RacePace(r.Param, d.Km); p != "" {
				return p
			}
		}
	}

	if a.Type == TypeWalk {
		rec, ok := pace.ParseRange(r.Paces[reference.ZoneRecovery])
		if !ok {
			return NotAvailable
		}
		return rec.Offset(walkOffset).String()
	}

	if a.Intensity != "" {
		if p := r.zonePace(a.Intensity); p != "" {
			return p
		}
	}
	if p := r.zonePace(a.Type); p != "" {
		return p
	}
	return NotAvailable
}

func (r *Resolver) zonePace(t ActivityType) string {
	zone, ok := zoneFor[t]
	if !ok {
		return ""
	}
	return r.Paces[zone]
}

// Func returns Pace as a ResolveFunc.
func (r *Resolver) Func() ResolveFunc {
	return r.Pace
}
