package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
    key                  TEXT PRIMARY KEY,
    value                TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);
`

// Keys used in the kv table.
const (
	KeyExpenses       = "expenses"
	KeyExpensesBackup = "expenses.bad" // raw value saved before a repair rewrite
	KeyBudget         = "budget"
)
