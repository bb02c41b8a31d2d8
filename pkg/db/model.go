package db

import "time"

// Expense is a single spending event. Rows are append-only: an expense is
// inserted on amount entry and may only be deleted via the undo action.
type Expense struct {
	tableName struct{} `pg:"expenses,alias:t,discard_unknown_columns"`

	ID       int       `pg:"id,pk"`
	Amount   int       `pg:"amount,use_zero"`
	Category string    `pg:"category,use_zero"`
	Datetime time.Time `pg:"datetime,use_zero"`
	UserID   int64     `pg:"user_id,use_zero"`
	UserName string    `pg:"user_name,use_zero"`
}

// CategoryTotal is a row of the per-category aggregate query.
type CategoryTotal struct {
	Category string
	Total    int
}
