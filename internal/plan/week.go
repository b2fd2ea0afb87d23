package plan

import (
	"time"

	"github.com/javiermolinar/trote/internal/dateutil"
)

// DaysPerWeek is the size of a weekly block.
const DaysPerWeek = 7

// ScheduledDay is a plan day placed on the calendar.
type ScheduledDay struct {
	Index   int
	Date    time.Time
	Display string
	IsToday bool
	IsPast  bool
	Record  DayRecord
}

// WeeklyBlock is seven consecutive scheduled days. The last block of a plan
// may be shorter.
type WeeklyBlock struct {
	Index     int
	StartDate time.Time
	Days      []ScheduledDay
}

// Records returns the day records of the block in order.
func (b WeeklyBlock) Records() []DayRecord {
	out := make([]DayRecord, len(b.Days))
	for i, d := range b.Days {
		out[i] = d.Record
	}
	return out
}

// Schedule places each day on the calendar: day i falls on start+i.
func Schedule(days []DayRecord, start, now time.Time, locale string) []ScheduledDay {
	start = dateutil.TruncateToDay(start)
	today := dateutil.TruncateToDay(now.In(start.Location()))
	out := make([]ScheduledDay, len(days))
	for i, rec := range days {
		date := dateutil.AddDays(start, i)
		out[i] = ScheduledDay{
			Index:   i,
			Date:    date,
			Display: dateutil.DisplayDate(date, locale),
			IsToday: dateutil.SameDay(date, today),
			IsPast:  date.Before(today),
			Record:  rec,
		}
	}
	return out
}

// OrganizeWeeks groups plan days into weekly blocks starting at start.
// It always returns ceil(len(days)/7) blocks and block i starts on start+7i.
// IsToday and IsPast are computed against now.
func OrganizeWeeks(days []DayRecord, start, now time.Time, locale string) []WeeklyBlock {
	scheduled := Schedule(days, start, now, locale)
	blocks := make([]WeeklyBlock, 0, (len(days)+DaysPerWeek-1)/DaysPerWeek)
	for i := 0; i < len(scheduled); i += DaysPerWeek {
		end := min(i+DaysPerWeek, len(scheduled))
		blocks = append(blocks, WeeklyBlock{
			Index:     i / DaysPerWeek,
			StartDate: scheduled[i].Date,
			Days:      scheduled[i:end],
		})
	}
	return blocks
}

// CurrentWeek returns the index of the block containing now, read in the
// plan's time zone like Schedule does. Dates before the plan map to 0 and
// dates after it to the last block.
func CurrentWeek(blocks []WeeklyBlock, now time.Time) int {
	if len(blocks) == 0 {
		return 0
	}
	today := dateutil.TruncateToDay(now.In(blocks[0].StartDate.Location()))
	for i, b := range blocks {
		last := b.Days[len(b.Days)-1].Date
		if !today.After(last) {
			return i
		}
	}
	return len(blocks) - 1
}
