package expenses

import (
	"fmt"
	"strings"
	"time"

	"github.com/CreaRec/crea-expenses-bot/pkg/db"
)

// Report formatters are pure functions so that chat handlers and the
// scheduled broadcast produce identical output for identical inputs.

// FormatTotalReport renders current-period sums per category with configured
// limits. Categories without expenses are omitted; the footer sums spent and
// limit over the categories present.
func FormatTotalReport(sums map[string]int, categories Categories) string {
	var b strings.Builder
	b.WriteString("Расходы по категориям:\n")

	totalSpent, totalLimit := 0, 0
	for _, cat := range categories {
		spent, ok := sums[cat.Name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: %d (%d)\n", cat.Name, spent, cat.Limit)
		totalSpent += spent
		totalLimit += cat.Limit
	}

	fmt.Fprintf(&b, "Всего: %d (%d)", totalSpent, totalLimit)

	return b.String()
}

// FormatPrevTotalReport renders previous-period sums, labeled with the
// period's month number, without the limit column.
func FormatPrevTotalReport(sums map[string]int, categories Categories, period Period) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Расходы за %d месяц:\n", int(period.Start.Month()))

	total := 0
	for _, cat := range categories {
		spent, ok := sums[cat.Name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: %d\n", cat.Name, spent)
		total += spent
	}

	fmt.Fprintf(&b, "Всего: %d", total)

	return b.String()
}

// FormatOperationsReport lists every raw expense of the current period.
func FormatOperationsReport(list []db.Expense) string {
	if len(list) == 0 {
		return "Нет операций за текущий период."
	}

	var b strings.Builder
	b.WriteString("Операции за текущий период:\n")
	for _, e := range list {
		fmt.Fprintf(&b, "%d - %d$ - %s - %s - %s\n",
			e.ID, e.Amount, e.Category, e.Datetime.Format("02.01.2006 15:04"), e.UserName)
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatPacingReport compares spend-to-date with the limit prorated to today
// for every category. The delta is prorated limit minus spent: positive means
// under budget.
func FormatPacingReport(sums map[string]int, categories Categories, period Period, today time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Бюджет на %s:\n", today.Format("02.01.2006"))

	for _, cat := range categories {
		spent := sums[cat.Name]
		prorated := ProratedLimit(cat.Limit, period, today)
		delta := prorated - spent

		marker := "✅"
		if delta < 0 {
			marker = "❗"
		}

		fmt.Fprintf(&b, "%s %s: %d из %d (%+d), лимит %d\n",
			marker, cat.Name, spent, prorated, delta, cat.Limit)
	}

	return strings.TrimRight(b.String(), "\n")
}
