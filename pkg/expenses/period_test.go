package expenses

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestCurrentPeriod(t *testing.T) {
	tests := []struct {
		name         string
		today        time.Time
		statementDay int
		wantStart    time.Time
		wantEnd      time.Time
	}{
		{
			name:         "calendar month when statement day unset",
			today:        date(2024, time.March, 10),
			statementDay: 0,
			wantStart:    date(2024, time.March, 1),
			wantEnd:      date(2024, time.March, 31),
		},
		{
			name:         "calendar month when statement day is 1",
			today:        date(2024, time.February, 15),
			statementDay: 1,
			wantStart:    date(2024, time.February, 1),
			wantEnd:      date(2024, time.February, 29),
		},
		{
			name:         "before statement day",
			today:        date(2024, time.March, 10),
			statementDay: 25,
			wantStart:    date(2024, time.February, 25),
			wantEnd:      date(2024, time.March, 24),
		},
		{
			name:         "on statement day period shifts forward",
			today:        date(2024, time.March, 25),
			statementDay: 25,
			wantStart:    date(2024, time.March, 25),
			wantEnd:      date(2024, time.April, 24),
		},
		{
			name:         "last day of period",
			today:        date(2024, time.March, 24),
			statementDay: 25,
			wantStart:    date(2024, time.February, 25),
			wantEnd:      date(2024, time.March, 24),
		},
		{
			name:         "january wraps to previous year",
			today:        date(2024, time.January, 1),
			statementDay: 2,
			wantStart:    date(2023, time.December, 2),
			wantEnd:      date(2024, time.January, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentPeriod(tt.today, tt.statementDay)
			assertPeriod(t, got, tt.wantStart, tt.wantEnd)

			if !got.Contains(tt.today) {
				t.Errorf("period %v does not contain today %v", got, tt.today)
			}
		})
	}
}

func TestPreviousPeriod(t *testing.T) {
	tests := []struct {
		name         string
		today        time.Time
		statementDay int
		wantStart    time.Time
		wantEnd      time.Time
	}{
		{
			name:         "calendar previous month",
			today:        date(2024, time.March, 15),
			statementDay: 1,
			wantStart:    date(2024, time.February, 1),
			wantEnd:      date(2024, time.February, 29),
		},
		{
			name:         "before statement day",
			today:        date(2024, time.March, 10),
			statementDay: 25,
			wantStart:    date(2024, time.January, 25),
			wantEnd:      date(2024, time.February, 24),
		},
		{
			name:         "on statement day",
			today:        date(2024, time.March, 25),
			statementDay: 25,
			wantStart:    date(2024, time.February, 25),
			wantEnd:      date(2024, time.March, 24),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PreviousPeriod(tt.today, tt.statementDay)
			assertPeriod(t, got, tt.wantStart, tt.wantEnd)
		})
	}
}

// Periods must be contiguous and non-overlapping for every statement day and
// reference date: the previous period ends one second before the current
// period starts.
func TestPeriodsContiguous(t *testing.T) {
	for statementDay := 2; statementDay <= 28; statementDay++ {
		today := date(2024, time.January, 1)
		for today.Year() < 2025 {
			cur := CurrentPeriod(today, statementDay)
			prev := PreviousPeriod(today, statementDay)

			if !prev.End.Add(time.Second).Equal(cur.Start) {
				t.Fatalf("statementDay=%d today=%v: previous period end %v not adjacent to current start %v",
					statementDay, today, prev.End, cur.Start)
			}
			if !cur.Contains(today) {
				t.Fatalf("statementDay=%d: current period %v does not contain %v", statementDay, cur, today)
			}

			today = today.AddDate(0, 0, 1)
		}
	}
}

func TestProratedLimit(t *testing.T) {
	// calendar April 2024, 30 days
	period := CurrentPeriod(date(2024, time.April, 10), 1)

	if got := ProratedLimit(300, period, date(2024, time.April, 10)); got != 100 {
		t.Errorf("ProratedLimit() = %d, want 100", got)
	}
	if got := ProratedLimit(300, period, period.Start); got != 10 {
		t.Errorf("ProratedLimit() at period start = %d, want 10", got)
	}
}

// Prorated limit grows monotonically as today advances and reaches the full
// limit on the last day of the period.
func TestProratedLimitMonotonic(t *testing.T) {
	const limit = 1000
	period := CurrentPeriod(date(2024, time.March, 10), 25)

	prev := 0
	for today := period.Start; !today.After(period.End); today = today.AddDate(0, 0, 1) {
		got := ProratedLimit(limit, period, today)
		if got < prev {
			t.Fatalf("prorated limit decreased at %v: %d -> %d", today, prev, got)
		}
		prev = got
	}

	if got := ProratedLimit(limit, period, period.End); got != limit {
		t.Errorf("prorated limit at period end = %d, want %d", got, limit)
	}
}

func TestPeriodDays(t *testing.T) {
	tests := []struct {
		name   string
		period Period
		want   int
	}{
		{"calendar february leap", CurrentPeriod(date(2024, time.February, 10), 1), 29},
		{"statement cycle over short month", CurrentPeriod(date(2024, time.February, 26), 25), 29}, // 25.02 - 24.03
		{"calendar january", CurrentPeriod(date(2024, time.January, 10), 0), 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.period.Days(); got != tt.want {
				t.Errorf("Days() = %d, want %d", got, tt.want)
			}
		})
	}
}

func assertPeriod(t *testing.T, got Period, wantStart, wantEnd time.Time) {
	t.Helper()

	if y, m, d := got.Start.Date(); y != wantStart.Year() || m != wantStart.Month() || d != wantStart.Day() {
		t.Errorf("period start = %v, want date %v", got.Start, wantStart)
	}
	if y, m, d := got.End.Date(); y != wantEnd.Year() || m != wantEnd.Month() || d != wantEnd.Day() {
		t.Errorf("period end = %v, want date %v", got.End, wantEnd)
	}

	if h, min, s := got.Start.Clock(); h != 0 || min != 0 || s != 0 {
		t.Errorf("period start time = %v, want 00:00:00", got.Start)
	}
	if h, min, s := got.End.Clock(); h != 23 || min != 59 || s != 59 {
		t.Errorf("period end time = %v, want 23:59:59", got.End)
	}
}
