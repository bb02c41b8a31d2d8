package expenses

import (
	"testing"
	"time"

	"github.com/CreaRec/crea-expenses-bot/pkg/db"
)

var testLimits = Limits{Food: 500, General: 400, Fun: 300}

func TestFormatTotalReport(t *testing.T) {
	cats := NewCategories(testLimits)

	tests := []struct {
		name string
		sums map[string]int
		want string
	}{
		{
			name: "categories without expenses are omitted",
			sums: map[string]int{"FOOD": 120, "FUN": 30},
			want: "Расходы по категориям:\nFOOD: 120 (500)\nFUN: 30 (300)\nВсего: 150 (800)",
		},
		{
			name: "all categories",
			sums: map[string]int{"FOOD": 1, "GENERAL": 2, "FUN": 3},
			want: "Расходы по категориям:\nFOOD: 1 (500)\nGENERAL: 2 (400)\nFUN: 3 (300)\nВсего: 6 (1200)",
		},
		{
			name: "no expenses",
			sums: map[string]int{},
			want: "Расходы по категориям:\nВсего: 0 (0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTotalReport(tt.sums, cats); got != tt.want {
				t.Errorf("FormatTotalReport() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatPrevTotalReport(t *testing.T) {
	cats := NewCategories(testLimits)
	period := PreviousPeriod(date(2024, time.March, 15), 1) // February

	got := FormatPrevTotalReport(map[string]int{"GENERAL": 70}, cats, period)
	want := "Расходы за 2 месяц:\nGENERAL: 70\nВсего: 70"
	if got != want {
		t.Errorf("FormatPrevTotalReport() = %q, want %q", got, want)
	}
}

func TestFormatOperationsReport(t *testing.T) {
	list := []db.Expense{
		{ID: 7, Amount: 50, Category: "FOOD", Datetime: time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC), UserName: "alice"},
		{ID: 8, Amount: 120, Category: "FUN", Datetime: time.Date(2024, 3, 11, 18, 5, 0, 0, time.UTC), UserName: "bob"},
	}

	got := FormatOperationsReport(list)
	want := "Операции за текущий период:\n" +
		"7 - 50$ - FOOD - 10.03.2024 09:30 - alice\n" +
		"8 - 120$ - FUN - 11.03.2024 18:05 - bob"
	if got != want {
		t.Errorf("FormatOperationsReport() = %q, want %q", got, want)
	}

	if got := FormatOperationsReport(nil); got != "Нет операций за текущий период." {
		t.Errorf("FormatOperationsReport(nil) = %q", got)
	}
}

func TestFormatPacingReport(t *testing.T) {
	cats := NewCategories(Limits{Food: 300, General: 150, Fun: 0})
	today := date(2024, time.April, 10)
	period := CurrentPeriod(today, 1) // 30 days, a third elapsed

	got := FormatPacingReport(map[string]int{"FOOD": 90, "GENERAL": 80}, cats, period, today)
	want := "Бюджет на 10.04.2024:\n" +
		"✅ FOOD: 90 из 100 (+10), лимит 300\n" +
		"❗ GENERAL: 80 из 50 (-30), лимит 150\n" +
		"✅ FUN: 0 из 0 (+0), лимит 0"
	if got != want {
		t.Errorf("FormatPacingReport() = %q, want %q", got, want)
	}
}

// Identical inputs must render identical reports: the on-demand handler and
// the scheduled broadcast share these formatters.
func TestFormattersDeterministic(t *testing.T) {
	cats := NewCategories(testLimits)
	sums := map[string]int{"FOOD": 11, "GENERAL": 22, "FUN": 33}
	today := date(2024, time.May, 5)
	period := CurrentPeriod(today, 25)

	if a, b := FormatTotalReport(sums, cats), FormatTotalReport(sums, cats); a != b {
		t.Errorf("FormatTotalReport not deterministic: %q vs %q", a, b)
	}
	if a, b := FormatPacingReport(sums, cats, period, today), FormatPacingReport(sums, cats, period, today); a != b {
		t.Errorf("FormatPacingReport not deterministic: %q vs %q", a, b)
	}
}
