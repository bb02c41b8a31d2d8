package db

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

type ExpenseRepo struct {
	db orm.DB
}

// NewExpenseRepo returns new repository
func NewExpenseRepo(db orm.DB) ExpenseRepo {
	return ExpenseRepo{db: db}
}

// WithTransaction is a function that wraps ExpenseRepo with pg.Tx transaction.
func (er ExpenseRepo) WithTransaction(tx *pg.Tx) ExpenseRepo {
	er.db = tx
	return er
}

// AddExpense adds Expense to DB. Datetime is assigned by the store at creation.
func (er ExpenseRepo) AddExpense(ctx context.Context, expense *Expense) (*Expense, error) {
	if expense.Datetime.IsZero() {
		expense.Datetime = time.Now()
	}

	_, err := er.db.ModelContext(ctx, expense).Insert()

	return expense, err
}

// DeleteExpense removes Expense by ID.
func (er ExpenseRepo) DeleteExpense(ctx context.Context, id int) (deleted bool, err error) {
	res, err := er.db.ModelContext(ctx, &Expense{ID: id}).WherePK().Delete()
	if err != nil {
		return false, err
	}

	return res.RowsAffected() > 0, nil
}

// ExpensesInPeriod returns all expenses with datetime in [from, to], oldest first.
func (er ExpenseRepo) ExpensesInPeriod(ctx context.Context, from, to time.Time) (expenses []Expense, err error) {
	err = er.db.ModelContext(ctx, &expenses).
		Where("datetime BETWEEN ? AND ?", from, to).
		Order("datetime ASC").
		Select()

	return
}

// SumByCategoryInPeriod returns summed amounts grouped by category for
// expenses with datetime in [from, to]. Categories without expenses are absent.
func (er ExpenseRepo) SumByCategoryInPeriod(ctx context.Context, from, to time.Time) (map[string]int, error) {
	var rows []CategoryTotal
	err := er.db.ModelContext(ctx, (*Expense)(nil)).
		ColumnExpr("category").
		ColumnExpr("sum(amount) AS total").
		Where("datetime BETWEEN ? AND ?", from, to).
		Group("category").
		Select(&rows)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]int, len(rows))
	for _, r := range rows {
		sums[r.Category] = r.Total
	}

	return sums, nil
}
