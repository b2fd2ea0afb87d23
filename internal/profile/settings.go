package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/pace"
	"github.com/javiermolinar/trote/internal/plan"
	"github.com/javiermolinar/trote/internal/reference"
)

// Defaults used when a runner has not set a reference time.
const (
	DefaultBaseTime     = "00:25:00"
	DefaultBaseDistance = reference.Dist5K
)

var (
	paceValue = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	dateValue = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	baseValue = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
)

// ErrInvalidSettings is wrapped by every FieldError.
var ErrInvalidSettings = errors.New("invalid pace settings")

// FieldError reports which settings field failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidSettings.
func (e *FieldError) Unwrap() error {
	return ErrInvalidSettings
}

// PaceSettings are a runner's per-plan customisations. Overrides maps zone
// names to "M:SS" paces.
type PaceSettings struct {
	BaseTime     string
	BaseDistance string
	StartDate    string
	Overrides    map[string]string
}

// Validate checks every field against its expected format.
func (s PaceSettings) Validate() error {
	if s.BaseTime != "" && !baseValue.MatchString(s.BaseTime) {
		return &FieldError{Field: "baseTime", Reason: "must be HH:MM:SS"}
	}
	if s.BaseDistance != "" {
		if _, ok := reference.DistanceKm(s.BaseDistance); !ok {
			return &FieldError{Field: "baseDistance", Reason: "unknown race distance"}
		}
	}
	if s.StartDate != "" {
		if !dateValue.MatchString(s.StartDate) {
			return &FieldError{Field: "startDate", Reason: "must be YYYY-MM-DD"}
		}
		if _, err := dateutil.ParseDate(s.StartDate); err != nil {
			return &FieldError{Field: "startDate", Reason: "not a calendar date"}
		}
	}
	for _, k := range sortedKeys(s.Overrides) {
		if !reference.IsZone(k) {
			return &FieldError{Field: k, Reason: "unknown pace zone"}
		}
		if v := s.Overrides[k]; !paceValue.MatchString(v) || !pace.Valid(v) {
			return &FieldError{Field: k, Reason: "must be M:SS"}
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Flat renders the settings as one map: the pace overrides plus the
// baseTime, baseDistance and startDate keys when set.
func (s PaceSettings) Flat() map[string]string {
	out := make(map[string]string, len(s.Overrides)+3)
	for k, v := range s.Overrides {
		out[k] = v
	}
	if s.BaseTime != "" {
		out["baseTime"] = s.BaseTime
	}
	if s.BaseDistance != "" {
		out["baseDistance"] = s.BaseDistance
	}
	if s.StartDate != "" {
		out["startDate"] = s.StartDate
	}
	return out
}

// FromFlat is the inverse of Flat. Unknown keys become pace overrides.
func FromFlat(m map[string]string) PaceSettings {
	var s PaceSettings
	for k, v := range m {
		switch k {
		case "baseTime":
			s.BaseTime = v
		case "baseDistance":
			s.BaseDistance = v
		case "startDate":
			s.StartDate = v
		default:
			if s.Overrides == nil {
				s.Overrides = map[string]string{}
			}
			s.Overrides[k] = v
		}
	}
	return s
}

// MarshalJSON renders the flat object used by the pace settings API.
func (s PaceSettings) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Flat())
}

// UnmarshalJSON reads the flat settings object.
func (s *PaceSettings) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = FromFlat(raw)
	return nil
}

// DefaultStart is the schedule start for a plan without a start date: the
// Monday of the week containing now.
func DefaultStart(now time.Time) time.Time {
	monday, _ := dateutil.WeekRange(now)
	return monday
}

// Resolved is the outcome of applying pace settings to the reference tables.
type Resolved struct {
	Param    int
	Start    time.Time
	Resolver *plan.Resolver
}

// Resolve turns settings into a performance parameter, a pace resolver and
// a plan start date. fallbackStart is used when no start date is set.
func Resolve(s PaceSettings, tables *reference.Tables, fallbackStart time.Time) Resolved {
	baseTime, baseDist := s.BaseTime, s.BaseDistance
	if baseTime == "" {
		baseTime = DefaultBaseTime
	}
	if baseDist == "" {
		baseDist = DefaultBaseDistance
	}

	param, ok := tables.Lookup(baseTime, baseDist)
	if !ok {
		param, _ = tables.Lookup(DefaultBaseTime, DefaultBaseDistance)
	}

	start := dateutil.TruncateToDay(fallbackStart)
	if s.StartDate != "" {
		if t, err := dateutil.ParseDate(s.StartDate); err == nil {
			start = t
		}
	}

	return Resolved{
		Param:    param,
		Start:    start,
		Resolver: plan.NewResolver(tables, param, s.Overrides),
	}
}
