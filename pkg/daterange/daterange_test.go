package daterange

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, Zone())
}

func assertBounds(t *testing.T, r Range, from, to time.Time) {
	t.Helper()
	if !r.From.Equal(from) {
		t.Errorf("From = %v, want %v", r.From, from)
	}
	if !r.To.Equal(to) {
		t.Errorf("To = %v, want %v", r.To, to)
	}
}

func TestResolve_ThisMonth(t *testing.T) {
	r := Resolve(PresetThisMonth, nil, nil, date(2024, time.March, 15))
	assertBounds(t, r, date(2024, time.March, 1), date(2024, time.March, 31))
	if r.Label != "This Month" {
		t.Errorf("Label = %q", r.Label)
	}
}

func TestResolve_ThisWeek_MondayStart(t *testing.T) {
	// 2024-03-15 is a Friday; the ISO week runs Mon 3/11 through Sun 3/17.
	r := Resolve(PresetThisWeek, nil, nil, date(2024, time.March, 15))
	assertBounds(t, r, date(2024, time.March, 11), date(2024, time.March, 17))

	// A Monday reference starts its own week.
	r = Resolve(PresetThisWeek, nil, nil, date(2024, time.March, 11))
	assertBounds(t, r, date(2024, time.March, 11), date(2024, time.March, 17))

	// A Sunday reference belongs to the week started the previous Monday.
	r = Resolve(PresetThisWeek, nil, nil, date(2024, time.March, 17))
	assertBounds(t, r, date(2024, time.March, 11), date(2024, time.March, 17))
}

func TestResolve_ThisQuarter(t *testing.T) {
	r := Resolve(PresetThisQuarter, nil, nil, date(2024, time.May, 20))
	assertBounds(t, r, date(2024, time.April, 1), date(2024, time.June, 30))

	r = Resolve(PresetThisQuarter, nil, nil, date(2024, time.December, 31))
	assertBounds(t, r, date(2024, time.October, 1), date(2024, time.December, 31))
}

func TestResolve_ThisYear(t *testing.T) {
	r := Resolve(PresetThisYear, nil, nil, date(2023, time.July, 4))
	assertBounds(t, r, date(2023, time.January, 1), date(2023, time.December, 31))
}

func TestResolve_AllTime(t *testing.T) {
	ref := date(2024, time.March, 15)
	r := Resolve(PresetAllTime, nil, nil, ref)
	if !r.AllTime {
		t.Error("AllTime = false")
	}
	if !r.From.Before(date(2001, time.January, 1)) {
		t.Errorf("floor %v is not early enough", r.From)
	}
	if !r.To.Equal(ref) {
		t.Errorf("To = %v, want %v", r.To, ref)
	}
}

func TestResolve_Custom(t *testing.T) {
	from := date(2024, time.January, 10)
	to := date(2024, time.February, 20)
	r := Resolve(PresetCustom, &from, &to, date(2024, time.March, 15))
	assertBounds(t, r, from, to)
}

func TestResolve_CustomMissingBoundFallsBackToThisMonth(t *testing.T) {
	ref := date(2024, time.March, 15)
	from := date(2024, time.January, 10)

	missingTo := Resolve(PresetCustom, &from, nil, ref)
	missingBoth := Resolve(PresetCustom, nil, nil, ref)
	month := Resolve(PresetThisMonth, nil, nil, ref)

	assertBounds(t, missingTo, month.From, month.To)
	assertBounds(t, missingBoth, month.From, month.To)
}

func TestResolve_UnknownPresetFallsBackToThisMonth(t *testing.T) {
	ref := date(2024, time.November, 3)
	r := Resolve(Preset("last_decade"), nil, nil, ref)
	month := Resolve(PresetThisMonth, nil, nil, ref)
	assertBounds(t, r, month.From, month.To)
}

func TestResolve_CustomReversedBoundsSwap(t *testing.T) {
	from := date(2024, time.February, 20)
	to := date(2024, time.January, 10)
	r := Resolve(PresetCustom, &from, &to, date(2024, time.March, 15))
	assertBounds(t, r, to, from)
}

func TestResolve_FromNeverAfterTo_FullYearSweep(t *testing.T) {
	presets := []Preset{PresetThisWeek, PresetThisMonth, PresetThisQuarter, PresetThisYear, PresetAllTime}
	day := date(2024, time.January, 1)
	for day.Year() == 2024 {
		for _, p := range presets {
			r := Resolve(p, nil, nil, day)
			if r.From.After(r.To) {
				t.Fatalf("%s at %v: From %v after To %v", p, day, r.From, r.To)
			}
		}
		day = day.AddDate(0, 0, 1)
	}
}
