package expenses

import (
	"fmt"
	"math"
	"time"
)

// Period represents an accounting period with start and end dates.
// Start is at 00:00:00 of the first day, End at 23:59:59 of the last day.
type Period struct {
	Start time.Time
	End   time.Time
}

// CurrentPeriod returns the accounting period containing today.
//
// With statementDay unset or 1 periods are plain calendar months. Otherwise
// the period runs from statementDay of one month through the day before
// statementDay of the next; the boundary shifts forward a full cycle once
// today crosses the statement day.
func CurrentPeriod(today time.Time, statementDay int) Period {
	if statementDay <= 1 {
		return monthPeriod(today.Year(), today.Month(), today.Location())
	}

	year, month, day := today.Date()
	if day >= statementDay {
		return statementPeriod(year, month, statementDay, today.Location())
	}
	return statementPeriod(year, month-1, statementDay, today.Location())
}

// PreviousPeriod returns the immediate predecessor cycle of the current
// period, computed independently from the same reference date.
func PreviousPeriod(today time.Time, statementDay int) Period {
	if statementDay <= 1 {
		return monthPeriod(today.Year(), today.Month()-1, today.Location())
	}

	year, month, day := today.Date()
	if day >= statementDay {
		return statementPeriod(year, month-1, statementDay, today.Location())
	}
	return statementPeriod(year, month-2, statementDay, today.Location())
}

// monthPeriod returns the calendar month period. time.Date normalizes
// out-of-range months, so January-1 resolves to December of the prior year.
func monthPeriod(year int, month time.Month, loc *time.Location) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return Period{Start: start, End: end}
}

// statementPeriod returns the cycle starting at statementDay of the given
// month and ending the day before statementDay of the next month.
func statementPeriod(year int, month time.Month, statementDay int, loc *time.Location) Period {
	start := time.Date(year, month, statementDay, 0, 0, 0, 0, loc)
	end := time.Date(year, month+1, statementDay, 0, 0, 0, 0, loc).Add(-time.Second)
	return Period{Start: start, End: end}
}

// Days returns the period length in days, inclusive.
func (p Period) Days() int {
	return daysBetween(p.Start, p.End) + 1
}

// Contains reports whether t falls within the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Format renders the period as "DD.MM.YYYY - DD.MM.YYYY".
func (p Period) Format() string {
	return fmt.Sprintf("%s - %s", p.Start.Format("02.01.2006"), p.End.Format("02.01.2006"))
}

// ProratedLimit returns the monthly limit linearly prorated to today:
// round(limit / totalDaysInPeriod * daysElapsedInclusive). Today must fall
// within the period.
func ProratedLimit(limit int, p Period, today time.Time) int {
	total := p.Days()
	elapsed := daysBetween(p.Start, today) + 1

	return int(math.Round(float64(limit) / float64(total) * float64(elapsed)))
}

// daysBetween counts whole calendar days from a through b, time of day and
// DST shifts ignored.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}
