// Package calendar derives ski-season facts for any calendar date. Everything
// here is a pure function of the date; nothing is persisted.
package calendar

import (
	"fmt"
	"time"
)

// SnowRegime is the baseline condition band a month falls into before any
// simulated weather is applied.
type SnowRegime string

const (
	RegimeEarlySeason SnowRegime = "early_season"
	RegimeMidWinter   SnowRegime = "mid_winter"
	RegimeSpring      SnowRegime = "spring"
	RegimeClosed      SnowRegime = "closed"
)

// SeasonDay describes one calendar date in ski-operations terms.
type SeasonDay struct {
	Date              time.Time
	Season            string // "2023-2024"; empty when not operating
	WeekOfSeason      int    // 1-indexed from Nov 1; 0 when not operating
	IsWeekend         bool
	IsSaturday        bool
	IsHoliday         bool
	HolidayName       string
	SeasonMultiplier  float64
	HolidayMultiplier float64
	BaseRegime        SnowRegime
	Operating         bool
}

// Month demand multipliers; zero means the mountain is closed.
var seasonMultipliers = map[time.Month]float64{
	time.November: 0.5,
	time.December: 1.2,
	time.January:  1.5,
	time.February: 1.4,
	time.March:    1.1,
	time.April:    0.7,
}

// SeasonInfo derives the SeasonDay for any date. Total over the supported
// range; out-of-season dates come back with Operating=false, never an error.
func SeasonInfo(date time.Time) SeasonDay {
	date = Midnight(date)
	weekday := date.Weekday()

	day := SeasonDay{
		Date:              date,
		IsWeekend:         weekday == time.Saturday || weekday == time.Sunday,
		IsSaturday:        weekday == time.Saturday,
		HolidayMultiplier: 1.0,
		BaseRegime:        RegimeClosed,
	}

	mult, inSeason := seasonMultipliers[date.Month()]
	if !inSeason {
		return day
	}

	start := SeasonStart(date)
	day.Operating = true
	day.SeasonMultiplier = mult
	day.Season = fmt.Sprintf("%d-%d", start.Year(), start.Year()+1)
	day.WeekOfSeason = int(date.Sub(start).Hours()/(24*7)) + 1
	day.BaseRegime = regimeFor(date.Month())

	if name, mult := holidayFor(date); name != "" {
		day.IsHoliday = true
		day.HolidayName = name
		day.HolidayMultiplier = mult
	}

	return day
}

// SeasonStart returns the Nov 1 that opens the season containing (or, for
// off-season dates, most recently preceding) the given date.
func SeasonStart(date time.Time) time.Time {
	year := date.Year()
	if date.Month() < time.November {
		year--
	}
	return time.Date(year, time.November, 1, 0, 0, 0, 0, time.UTC)
}

// SeasonEnd returns the Apr 30 closing the season that starts at SeasonStart.
func SeasonEnd(date time.Time) time.Time {
	return time.Date(SeasonStart(date).Year()+1, time.April, 30, 0, 0, 0, 0, time.UTC)
}

// Midnight truncates to a UTC calendar date. All date keys in the system go
// through here so equality comparisons are exact across dialects.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func regimeFor(month time.Month) SnowRegime {
	switch month {
	case time.November:
		return RegimeEarlySeason
	case time.March, time.April:
		return RegimeSpring
	default:
		return RegimeMidWinter
	}
}

// Holiday windows that move ski traffic. Multipliers follow the demo-tuned
// values observed in resort attendance data.
func holidayFor(date time.Time) (string, float64) {
	month, day := date.Month(), date.Day()

	switch {
	case month == time.December && day >= 20:
		return "christmas_new_year", 2.5
	case month == time.January && day <= 5:
		return "christmas_new_year", 2.5
	case month == time.January && isNthWeekday(date, time.Monday, 3):
		return "mlk_day", 1.8
	case month == time.February && day >= 15 && day <= 21:
		return "presidents_week", 1.8
	case month == time.March && day >= 10 && day <= 24:
		return "spring_break", 1.6
	}
	return "", 1.0
}

func isNthWeekday(date time.Time, weekday time.Weekday, n int) bool {
	if date.Weekday() != weekday {
		return false
	}
	return (date.Day()-1)/7 == n-1
}
