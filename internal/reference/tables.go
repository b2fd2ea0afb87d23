package reference

import (
	"math"
	"sync"

	"github.com/javiermolinar/trote/internal/pace"
)

// Tables holds the race and pace reference rows. Callers receive a pointer
// from Default and must treat it as read-only.
type Tables struct {
	races []RaceRow
	paces map[int]PaceRow
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns the process-wide reference tables, building them on first use.
func Default() *Tables {
	defaultOnce.Do(func() {
		defaultTables = New(buildRaces())
	})
	return defaultTables
}

// New builds tables from race rows, deriving the pace zones for each parameter.
func New(races []RaceRow) *Tables {
	paces := make(map[int]PaceRow, len(races))
	for _, p := range buildPaces(races) {
		paces[p.Param] = p
	}
	return &Tables{races: races, paces: paces}
}

// Races returns a copy of the race rows in table order.
func (t *Tables) Races() []RaceRow {
	out := make([]RaceRow, len(t.races))
	copy(out, t.races)
	return out
}

// ParamRange returns the lowest and highest parameters in the table.
func (t *Tables) ParamRange() (lo, hi int) {
	for i, r := range t.races {
		if i == 0 || r.Param < lo {
			lo = r.Param
		}
		if i == 0 || r.Param > hi {
			hi = r.Param
		}
	}
	return lo, hi
}

// Lookup finds the parameter whose predicted time at distanceKey is closest
// to target ("HH:MM:SS"). Ties keep the first row scanned. ok is false when
// the target or distance is unusable.
func (t *Tables) Lookup(target, distanceKey string) (param int, ok bool) {
	targetSecs := pace.ParseClock(target)
	if targetSecs == 0 || distanceKey == "" {
		return 0, false
	}

	bestDiff := math.MaxInt
	for _, row := range t.races {
		secs, has := row.Time(distanceKey)
		if !has {
			continue
		}
		diff := secs - targetSecs
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			bestDiff = diff
			param = row.Param
			ok = true
		}
	}
	return param, ok
}

// Paces returns a copy of the named zone paces for a parameter.
func (t *Tables) Paces(param int) (map[string]string, bool) {
	row, ok := t.paces[param]
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(row.Zones))
	for k, v := range row.Zones {
		out[k] = v
	}
	return out, true
}

func (t *Tables) race(param int) (RaceRow, bool) {
	for _, r := range t.races {
		if r.Param == param {
			return r, true
		}
	}
	return RaceRow{}, false
}

// Predict returns the predicted finish seconds for a race of km kilometres.
// Standard distances use their column directly; other distances are
// interpolated on a log-log scale between the nearest standard columns.
// Returns 0 if the parameter is unknown or km is not positive.
func (t *Tables) Predict(param int, km float64) int {
	row, ok := t.race(param)
	if !ok || km <= 0 {
		return 0
	}

	for _, d := range standardKm {
		if math.Abs(km-d.Km) <= d.Km*0.01 {
			secs, _ := row.Time(d.Key)
			return secs
		}
	}

	lower, upper := standardKm[0], standardKm[1]
	for i, d := range standardKm {
		if km <= d.Km {
			if i > 0 {
				lower, upper = standardKm[i-1], d
			}
			break
		}
		if i == len(standardKm)-1 {
			lower, upper = standardKm[i-1], d
		}
	}

	lowSecs, _ := row.Time(lower.Key)
	highSecs, _ := row.Time(upper.Key)
	if lowSecs == 0 || highSecs == 0 {
		return 0
	}

	ratio := math.Log(km/lower.Km) / math.Log(upper.Km/lower.Km)
	logTime := math.Log(float64(lowSecs)) + ratio*(math.Log(float64(highSecs))-math.Log(float64(lowSecs)))
	return int(math.Round(math.Exp(logTime)))
}

// RacePace returns the predicted per-kilometre pace for a race of km kilometres.
// Returns "" when no prediction is possible.
func (t *Tables) RacePace(param int, km float64) string {
	return pace.FromSeconds(pace.PerKm(km, t.Predict(param, km)))
}
