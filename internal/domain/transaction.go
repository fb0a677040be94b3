package domain

import "time"

// TransactionType tells whether money came in or went out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is income or expense.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// DateLayout is the calendar date format used for transaction dates.
const DateLayout = "2006-01-02"

// Transaction is a single income or expense entry. Amount is never signed;
// the direction comes from Type.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (t Transaction) Identity() string   { return t.ID }
func (t Transaction) Created() time.Time { return t.CreatedAt }

func (t Transaction) WithIdentity(id string, createdAt time.Time) Transaction {
	t.ID = id
	t.CreatedAt = createdAt
	return t
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
