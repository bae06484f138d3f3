// Package daterange resolves named reporting presets to concrete calendar
// bounds in the shop's business timezone. Every returned range satisfies
// From <= To, and both bounds are plain calendar dates (midnight, business
// zone) so they line up with the dates jobs record when they complete.
package daterange

import (
	"fmt"
	"sync"
	"time"
)

// Preset names a reporting window relative to a reference date.
type Preset string

const (
	PresetThisWeek    Preset = "this_week"
	PresetThisMonth   Preset = "this_month"
	PresetThisQuarter Preset = "this_quarter"
	PresetThisYear    Preset = "this_year"
	PresetAllTime     Preset = "all_time"
	PresetCustom      Preset = "custom"
)

// BusinessTimezone is the fixed zone all reporting dates anchor to. It must
// match the zone used when jobs stamp their completion date, or same-day
// records silently fall outside "today".
const BusinessTimezone = "America/New_York"

// allTimeFloor predates any real record.
var allTimeFloor = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	zoneOnce sync.Once
	zone     *time.Location
)

// Zone returns the business timezone location. Falls back to UTC if the
// zone database is unavailable.
func Zone() *time.Location {
	zoneOnce.Do(func() {
		loc, err := time.LoadLocation(BusinessTimezone)
		if err != nil {
			loc = time.UTC
		}
		zone = loc
	})
	return zone
}

// Today returns the current calendar date in the business timezone.
func Today() time.Time {
	return dateOf(time.Now())
}

// Range is a resolved reporting window.
type Range struct {
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
	Label   string    `json:"label"`
	AllTime bool      `json:"all_time"`
}

// Resolve maps a preset to concrete calendar bounds containing ref.
//
// A custom preset with either bound missing resolves as this_month, as does
// an unknown preset. That silent substitution is a deliberate leniency
// policy carried over from the reporting screens, not an error path.
func Resolve(preset Preset, customFrom, customTo *time.Time, ref time.Time) Range {
	day := dateOf(ref)

	switch preset {
	case PresetThisWeek:
		// ISO week: Monday through Sunday.
		offset := (int(day.Weekday()) + 6) % 7
		from := day.AddDate(0, 0, -offset)
		return Range{From: from, To: from.AddDate(0, 0, 6), Label: "This Week"}

	case PresetThisQuarter:
		q := (int(day.Month()) - 1) / 3
		from := time.Date(day.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, Zone())
		return Range{From: from, To: from.AddDate(0, 3, -1), Label: "This Quarter"}

	case PresetThisYear:
		from := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, Zone())
		return Range{From: from, To: time.Date(day.Year(), time.December, 31, 0, 0, 0, 0, Zone()), Label: "This Year"}

	case PresetAllTime:
		return Range{From: dateOf(allTimeFloor.In(Zone())), To: day, Label: "All Time", AllTime: true}

	case PresetCustom:
		if customFrom == nil || customTo == nil {
			return thisMonth(day)
		}
		from, to := dateOf(*customFrom), dateOf(*customTo)
		if from.After(to) {
			from, to = to, from
		}
		return Range{
			From:  from,
			To:    to,
			Label: fmt.Sprintf("%s – %s", from.Format("Jan 2, 2006"), to.Format("Jan 2, 2006")),
		}

	case PresetThisMonth:
		return thisMonth(day)

	default:
		return thisMonth(day)
	}
}

func thisMonth(day time.Time) Range {
	from := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, Zone())
	return Range{From: from, To: from.AddDate(0, 1, -1), Label: "This Month"}
}

// dateOf truncates t to its calendar date in the business zone.
func dateOf(t time.Time) time.Time {
	t = t.In(Zone())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Zone())
}
