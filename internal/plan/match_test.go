package plan

import (
	"testing"
	"time"
)

func TestMatchPlanDay(t *testing.T) {
	days := Schedule([]DayRecord{
		{Activities: []Activity{{Type: TypeEasy, Load: Distance{Km: 8}}}},
		{Activities: []Activity{{Type: TypeOff}}},
		{Activities: []Activity{{Type: TypeWalk, Load: Duration{Minutes: 30}}}},
		{Activities: []Activity{
			{Type: TypeRecovery, Load: Distance{Km: 4}},
			{Type: TypeWalk, Load: Duration{Minutes: 20}},
		}},
	}, date(2024, 6, 10), date(2024, 6, 1), "en")

	tests := []struct {
		name    string
		act     ImportedActivity
		wantIdx int
		wantOK  bool
	}{
		{"run on easy day", ImportedActivity{Type: "Run", Date: date(2024, 6, 10)}, 0, true},
		{"walk on easy day", ImportedActivity{Type: "Walk", Date: date(2024, 6, 10)}, 0, false},
		{"timestamp later the same day", ImportedActivity{Type: "Run", Date: time.Date(2024, 6, 10, 18, 45, 0, 0, time.Local)}, 0, true},
		{"run on off day", ImportedActivity{Type: "Run", Date: date(2024, 6, 11)}, 0, false},
		{"hike on walk day", ImportedActivity{Type: "Hike", Date: date(2024, 6, 12)}, 2, true},
		{"trail run on walk day", ImportedActivity{Type: "TrailRun", Date: date(2024, 6, 12)}, 0, false},
		{"walk on mixed day", ImportedActivity{Type: "Walk", Date: date(2024, 6, 13)}, 3, true},
		{"virtual run on mixed day", ImportedActivity{Type: "VirtualRun", Date: date(2024, 6, 13)}, 3, true},
		{"ride is never compatible", ImportedActivity{Type: "Ride", Date: date(2024, 6, 10)}, 0, false},
		{"date outside plan", ImportedActivity{Type: "Run", Date: date(2024, 7, 1)}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := MatchPlanDay(tt.act, days)
			if ok != tt.wantOK || idx != tt.wantIdx {
				t.Errorf("MatchPlanDay = (%d, %v), want (%d, %v)", idx, ok, tt.wantIdx, tt.wantOK)
			}
		})
	}
}

func TestCompatible(t *testing.T) {
	if !Compatible("run", TypeRace) {
		t.Error("run should satisfy race")
	}
	if Compatible("Run", TypeWalk) {
		t.Error("run should not satisfy walk")
	}
	if Compatible("Run", TypeOff) {
		t.Error("nothing satisfies an off day")
	}
	if Compatible("", TypeEasy) {
		t.Error("empty sport type should not be compatible")
	}
}
