// Package budget implements the aggregation and mutation logic for
// budget entries: per-month summaries with running totals, and CRUD
// that keeps the denormalized month/year fields in step with the date.
package budget

import (
	"github.com/kartik0x00/Budget-Formula/internal/models"
)

// Totals is the field-wise sum over one month's entries.
type Totals struct {
	Income    int64 `json:"income"`
	Expenses  int64 `json:"expenses"`
	FixedPays int64 `json:"fixedPays"`
}

// Add accumulates one entry into the totals.
func (t *Totals) Add(e *models.BudgetEntry) {
	t.Income += e.Income
	t.Expenses += e.Expenses
	t.FixedPays += e.FixedPays
}

// Left is what remains after expenses and fixed payments. May be negative.
func (t Totals) Left() int64 {
	return t.Income - t.Expenses - t.FixedPays
}

// Summary is the computed view for one (month, year). Derived fresh on
// every request, never stored.
type Summary struct {
	Entries []models.BudgetEntry `json:"entries"`
	Totals  Totals               `json:"totals"`
	Left    int64                `json:"left"`
}

// Period identifies one month with at least one entry.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// EntryInput carries entry fields from a client. Pointers distinguish
// "absent" from zero values so updates can be partial.
type EntryInput struct {
	Date             string  `json:"date"`
	Income           *int64  `json:"income"`
	IncomeSource     *string `json:"incomeSource"`
	Expenses         *int64  `json:"expenses"`
	ExpenseRemarks   *string `json:"expenseRemarks"`
	FixedPays        *int64  `json:"fixedPays"`
	FixedPaysRemarks *string `json:"fixedPaysRemarks"`
}
