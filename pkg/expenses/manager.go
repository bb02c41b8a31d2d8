package expenses

import (
	"context"
	"fmt"
	"time"

	"github.com/CreaRec/crea-expenses-bot/pkg/db"

	"github.com/vmkteam/embedlog"
)

// Store is the part of the expense repository the manager needs.
type Store interface {
	AddExpense(ctx context.Context, expense *db.Expense) (*db.Expense, error)
	DeleteExpense(ctx context.Context, id int) (bool, error)
	ExpensesInPeriod(ctx context.Context, from, to time.Time) ([]db.Expense, error)
	SumByCategoryInPeriod(ctx context.Context, from, to time.Time) (map[string]int, error)
}

// Manager owns the category set and budget cycle configuration and answers
// all report requests over the expense store.
type Manager struct {
	store        Store
	categories   Categories
	statementDay int
	log          embedlog.Logger
	now          func() time.Time
}

func NewManager(store Store, limits Limits, statementDay int, log embedlog.Logger) *Manager {
	return &Manager{
		store:        store,
		categories:   NewCategories(limits),
		statementDay: statementDay,
		log:          log,
		now:          time.Now,
	}
}

// Categories returns the fixed category set.
func (m *Manager) Categories() Categories {
	return m.categories
}

// CategoryByCommand resolves a category-selection command or returns nil.
func (m *Manager) CategoryByCommand(command string) *Category {
	return m.categories.ByCommand(command)
}

// AddExpense persists a new expense for the given category.
func (m *Manager) AddExpense(ctx context.Context, cat Category, amount int, userID int64, userName string) (*db.Expense, error) {
	expense := &db.Expense{
		Amount:   amount,
		Category: cat.Name,
		UserID:   userID,
		UserName: userName,
	}

	created, err := m.store.AddExpense(ctx, expense)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	m.log.Print(ctx, "expense created",
		"expense_id", created.ID,
		"category", cat.Name,
		"amount", amount,
		"user_id", userID,
	)

	return created, nil
}

// DeleteExpense removes an expense by ID.
func (m *Manager) DeleteExpense(ctx context.Context, id int) (bool, error) {
	deleted, err := m.store.DeleteExpense(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete expense: %w", err)
	}

	if deleted {
		m.log.Print(ctx, "expense deleted", "expense_id", id)
	}

	return deleted, nil
}

// TotalReport renders per-category sums of the current period against limits.
func (m *Manager) TotalReport(ctx context.Context) (string, error) {
	period := CurrentPeriod(m.now(), m.statementDay)

	sums, err := m.store.SumByCategoryInPeriod(ctx, period.Start, period.End)
	if err != nil {
		return "", fmt.Errorf("failed to sum expenses: %w", err)
	}

	return FormatTotalReport(sums, m.categories), nil
}

// PrevTotalReport renders per-category sums of the previous period.
func (m *Manager) PrevTotalReport(ctx context.Context) (string, error) {
	period := PreviousPeriod(m.now(), m.statementDay)

	sums, err := m.store.SumByCategoryInPeriod(ctx, period.Start, period.End)
	if err != nil {
		return "", fmt.Errorf("failed to sum expenses: %w", err)
	}

	return FormatPrevTotalReport(sums, m.categories, period), nil
}

// OperationsReport lists every expense of the current period.
func (m *Manager) OperationsReport(ctx context.Context) (string, error) {
	period := CurrentPeriod(m.now(), m.statementDay)

	list, err := m.store.ExpensesInPeriod(ctx, period.Start, period.End)
	if err != nil {
		return "", fmt.Errorf("failed to list expenses: %w", err)
	}

	return FormatOperationsReport(list), nil
}

// PacingReport compares spend-to-date with prorated limits. The same report
// is sent on demand and by the scheduled broadcast.
func (m *Manager) PacingReport(ctx context.Context) (string, error) {
	today := m.now()
	period := CurrentPeriod(today, m.statementDay)

	sums, err := m.store.SumByCategoryInPeriod(ctx, period.Start, period.End)
	if err != nil {
		return "", fmt.Errorf("failed to sum expenses: %w", err)
	}

	return FormatPacingReport(sums, m.categories, period, today), nil
}
