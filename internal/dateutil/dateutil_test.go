package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2024-06-10")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty defaults to today", func(t *testing.T) {
		got, err := ParseDate("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		today := TruncateToDay(time.Now())
		if !got.Equal(today) {
			t.Errorf("got %v, want %v", got, today)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseDate("10-06-2024")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestNewDateRange_Errors(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{"end before start", "2024-06-10", "2024-06-09", ErrEndDateBeforeStart},
		{"invalid start", "june", "", ErrInvalidDateFormat},
		{"invalid end", "2024-06-10", "tomorrow", ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDateRange(tt.start, tt.end)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, 6, 10, 6, 0, 0, 0, time.UTC)
	night := time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC)
	next := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)

	if !SameDay(morning, night) {
		t.Error("expected same day for morning and night")
	}
	if SameDay(night, next) {
		t.Error("expected different days across midnight")
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		end  time.Time
		want int
	}{
		{start, 0},
		{start.AddDate(0, 0, 1), 1},
		{start.AddDate(0, 0, 14), 14},
		{start.AddDate(0, 0, -3), -3},
		{time.Date(2024, 3, 25, 22, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		if got := DaysBetween(start, tt.end); got != tt.want {
			t.Errorf("DaysBetween(%v, %v) = %d, want %d", start, tt.end, got, tt.want)
		}
	}
}

func TestWeekRange(t *testing.T) {
	wednesday := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)
	monday, sunday := WeekRange(wednesday)

	wantMonday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	wantSunday := time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)
	if !monday.Equal(wantMonday) {
		t.Errorf("monday = %v, want %v", monday, wantMonday)
	}
	if !sunday.Equal(wantSunday) {
		t.Errorf("sunday = %v, want %v", sunday, wantSunday)
	}
}

func TestNextWeekday(t *testing.T) {
	wednesday := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)

	got, err := NextWeekday(wednesday, "Monday")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got, err = NextWeekday(wednesday, "wednesday")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(wednesday) {
		t.Errorf("same weekday should return the date itself, got %v", got)
	}

	if _, err := NextWeekday(wednesday, "someday"); err == nil {
		t.Error("expected error for unknown weekday")
	}
}

func TestDisplayDate(t *testing.T) {
	d := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC) // Monday

	tests := []struct {
		locale string
		want   string
	}{
		{"en", "Mon Jun 10"},
		{"es", "lun 10 jun"},
		{"ES", "lun 10 jun"},
		{"fr", "Mon Jun 10"},
		{"", "Mon Jun 10"},
	}
	for _, tt := range tests {
		if got := DisplayDate(d, tt.locale); got != tt.want {
			t.Errorf("DisplayDate(%q) = %q, want %q", tt.locale, got, tt.want)
		}
	}
}
