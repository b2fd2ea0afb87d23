package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Document is the JSON shape of a plan as stored and exchanged.
type Document struct {
	Path          string        `json:"path"`
	Name          string        `json:"name"`
	Coach         string        `json:"coach,omitempty"`
	Level         string        `json:"nivel,omitempty"`
	Duration      int           `json:"duration,omitempty"`
	Volume        string        `json:"volume,omitempty"`
	DailyWorkouts []dayDocument `json:"dailyWorkouts"`
}

type dayDocument struct {
	Note       string             `json:"note,omitempty"`
	Activities []activityDocument `json:"activities"`
}

type activityDocument struct {
	Type      string            `json:"type"`
	Intensity string            `json:"intensity,omitempty"`
	Distance  flexNumber        `json:"distance,omitzero"`
	Units     string            `json:"units,omitempty"`
	Note      string            `json:"note,omitempty"`
	Workouts  []workoutDocument `json:"workouts,omitempty"`
}

type workoutDocument struct {
	Name   string           `json:"name,omitempty"`
	Series []seriesDocument `json:"series"`
}

type seriesDocument struct {
	Sets     string `json:"sets,omitempty"`
	Work     string `json:"work"`
	Rest     string `json:"rest,omitempty"`
	Distance string `json:"distance,omitempty"`
}

// flexNumber accepts a JSON number or a numeric string.
type flexNumber struct {
	Value float64
	Set   bool
}

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "km"))
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDistance, s)
		}
		f.Value, f.Set = v, true
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDistance, data)
	}
	f.Value, f.Set = v, true
	return nil
}

func (f flexNumber) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Decode parses a plan document and validates every activity.
func Decode(data []byte) (*Plan, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding plan: %w", err)
	}
	return doc.Plan()
}

// Plan converts the document into a validated Plan.
func (d Document) Plan() (*Plan, error) {
	path := strings.TrimSpace(d.Path)
	if path == "" {
		return nil, ErrEmptyPath
	}
	p := &Plan{
		Path:     path,
		Name:     d.Name,
		Coach:    d.Coach,
		Level:    d.Level,
		Duration: d.Duration,
		Volume:   d.Volume,
		Days:     make([]DayRecord, 0, len(d.DailyWorkouts)),
	}
	for i, dd := range d.DailyWorkouts {
		day := DayRecord{Note: dd.Note}
		for j, ad := range dd.Activities {
			a, err := ad.activity()
			if err != nil {
				return nil, fmt.Errorf("day %d activity %d: %w", i, j, err)
			}
			day.Activities = append(day.Activities, a)
		}
		p.Days = append(p.Days, day)
	}
	return p, nil
}

func (ad activityDocument) activity() (Activity, error) {
	t, err := ParseActivityType(ad.Type)
	if err != nil {
		return Activity{}, err
	}
	a := Activity{Type: t, Note: ad.Note}
	if ad.Intensity != "" {
		it, err := ParseActivityType(ad.Intensity)
		if err != nil {
			return Activity{}, fmt.Errorf("intensity: %w", err)
		}
		a.Intensity = it
	}
	if t.IsRest() {
		return a, nil
	}

	if len(ad.Workouts) > 0 {
		iv := Intervals{Workouts: make([]Workout, 0, len(ad.Workouts))}
		for _, wd := range ad.Workouts {
			w := Workout{Name: wd.Name}
			for _, sd := range wd.Series {
				w.Series = append(w.Series, Series(sd))
			}
			iv.Workouts = append(iv.Workouts, w)
		}
		a.Load = iv
		return a, nil
	}

	if !ad.Distance.Set {
		return a, nil
	}
	if ad.Distance.Value < 0 {
		return Activity{}, fmt.Errorf("%w: %v", ErrInvalidDistance, ad.Distance.Value)
	}
	switch strings.ToLower(strings.TrimSpace(ad.Units)) {
	case "", "km":
		a.Load = Distance{Km: ad.Distance.Value}
	case "min":
		a.Load = Duration{Minutes: ad.Distance.Value}
	default:
		return Activity{}, fmt.Errorf("%w: got %q", ErrUnknownUnits, ad.Units)
	}
	return a, nil
}

// Encode renders a plan back into its JSON document.
func Encode(p *Plan) ([]byte, error) {
	return json.Marshal(NewDocument(p))
}

// NewDocument converts a Plan into its JSON document shape.
func NewDocument(p *Plan) Document {
	doc := Document{
		Path:          p.Path,
		Name:          p.Name,
		Coach:         p.Coach,
		Level:         p.Level,
		Duration:      p.Duration,
		Volume:        p.Volume,
		DailyWorkouts: make([]dayDocument, 0, len(p.Days)),
	}
	for _, day := range p.Days {
		dd := dayDocument{Note: day.Note, Activities: []activityDocument{}}
		for _, a := range day.Activities {
			ad := activityDocument{
				Type:      string(a.Type),
				Intensity: string(a.Intensity),
				Note:      a.Note,
			}
			switch l := a.Load.(type) {
			case Distance:
				ad.Distance = flexNumber{Value: l.Km, Set: true}
				ad.Units = "km"
			case Duration:
				ad.Distance = flexNumber{Value: l.Minutes, Set: true}
				ad.Units = "min"
			case Intervals:
				for _, w := range l.Workouts {
					wd := workoutDocument{Name: w.Name}
					for _, s := range w.Series {
						wd.Series = append(wd.Series, seriesDocument(s))
					}
					ad.Workouts = append(ad.Workouts, wd)
				}
			}
			dd.Activities = append(dd.Activities, ad)
		}
		doc.DailyWorkouts = append(doc.DailyWorkouts, dd)
	}
	return doc
}
