package reference

import (
	"math"

	"github.com/javiermolinar/trote/internal/pace"
)

// Named pace zones. Km zones are per-kilometre paces, the others are the
// target time for one repetition of that length.
const (
	ZoneRecovery    = "Recovery Km"
	ZoneEasy        = "Easy Km"
	ZoneMarathon    = "Marathon Km"
	ZoneThreshold   = "Threshold Km"
	ZoneInterval    = "Interval Km"
	ZoneInterval400 = "Interval 400m"
	ZoneInterval1K  = "Interval 1000m"
	ZoneRepetition  = "Repetition Km"
	ZoneRep200      = "Repetition 200m"
	ZoneRep400      = "Repetition 400m"
)

// Zones returns every named zone in display order.
func Zones() []string {
	return []string{
		ZoneRecovery, ZoneEasy, ZoneMarathon, ZoneThreshold,
		ZoneInterval, ZoneInterval400, ZoneInterval1K,
		ZoneRepetition, ZoneRep200, ZoneRep400,
	}
}

// IsZone reports whether name is a known pace zone.
func IsZone(name string) bool {
	for _, z := range Zones() {
		if z == name {
			return true
		}
	}
	return false
}

// PaceRow maps a performance parameter to its named zone paces.
type PaceRow struct {
	Param int
	Zones map[string]string
}

// zoneIntensity is the fraction of VO2max run in each zone. Bands list the
// slow bound first.
var zoneIntensity = []struct {
	zone   string
	slow   float64
	fast   float64
	meters float64
}{
	{ZoneRecovery, 0.55, 0.60, 1000},
	{ZoneEasy, 0.62, 0.70, 1000},
	{ZoneMarathon, 0.815, 0.815, 1000},
	{ZoneThreshold, 0.88, 0.88, 1000},
	{ZoneInterval, 0.975, 0.975, 1000},
	{ZoneInterval400, 0.975, 0.975, 400},
	{ZoneInterval1K, 0.975, 0.975, 1000},
	{ZoneRepetition, 1.05, 1.05, 1000},
	{ZoneRep200, 1.05, 1.05, 200},
	{ZoneRep400, 1.05, 1.05, 400},
}

// velocityAt solves Daniels' oxygen cost equation
// VO2 = -4.60 + 0.182258 v + 0.000104 v^2 for v in metres per minute.
func velocityAt(vo2 float64) float64 {
	const a, b = 0.000104, 0.182258
	c := -(4.60 + vo2)
	return (-b + math.Sqrt(b*b-4*a*c)) / (2 * a)
}

// secondsFor returns the seconds needed to cover meters at a VO2 fraction of param.
func secondsFor(param int, fraction, meters float64) int {
	v := velocityAt(float64(param) * fraction)
	if v <= 0 {
		return 0
	}
	return int(math.Round(meters / v * 60))
}

func buildPaces(races []RaceRow) []PaceRow {
	rows := make([]PaceRow, 0, len(races))
	for _, r := range races {
		zones := make(map[string]string, len(zoneIntensity))
		for _, zi := range zoneIntensity {
			fast := secondsFor(r.Param, zi.fast, zi.meters)
			slow := secondsFor(r.Param, zi.slow, zi.meters)
			zones[zi.zone] = pace.Range{Fast: fast, Slow: slow}.String()
		}
		rows = append(rows, PaceRow{Param: r.Param, Zones: zones})
	}
	return rows
}
