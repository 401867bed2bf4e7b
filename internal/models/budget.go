package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetCategory classifies a budget entry.
type BudgetCategory string

const (
	BudgetCategoryFood          BudgetCategory = "Food"
	BudgetCategoryTransport     BudgetCategory = "Transport"
	BudgetCategoryEntertainment BudgetCategory = "Entertainment"
	BudgetCategoryShopping      BudgetCategory = "Shopping"
	BudgetCategoryBills         BudgetCategory = "Bills"
	BudgetCategoryOther         BudgetCategory = "Other"
)

// BudgetCategories lists the categories in display order.
var BudgetCategories = []BudgetCategory{
	BudgetCategoryFood,
	BudgetCategoryTransport,
	BudgetCategoryEntertainment,
	BudgetCategoryShopping,
	BudgetCategoryBills,
	BudgetCategoryOther,
}

// Valid reports whether c is a known category.
func (c BudgetCategory) Valid() bool {
	for _, known := range BudgetCategories {
		if c == known {
			return true
		}
	}
	return false
}

// EntryKind tells income from expense.
type EntryKind string

const (
	EntryKindIncome  EntryKind = "income"
	EntryKindExpense EntryKind = "expense"
)

// Valid reports whether k is income or expense.
func (k EntryKind) Valid() bool {
	return k == EntryKindIncome || k == EntryKindExpense
}

// BudgetEntry is an immutable income or expense line.
type BudgetEntry struct {
	ID          string          `json:"id"`
	Category    BudgetCategory  `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Kind        EntryKind       `json:"kind"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BudgetEntryInput carries the caller-supplied fields of a new entry.
type BudgetEntryInput struct {
	Category    BudgetCategory
	Amount      decimal.Decimal
	Description string
	Kind        EntryKind
}
