package client

import (
	"sort"
	"time"

	"github.com/kartik0x00/Budget-Formula/internal/budget"
	"github.com/kartik0x00/Budget-Formula/internal/models"
)

// BudgetCache mirrors one month's entries on the client and keeps the
// totals and remaining balance in step with individual edits, without
// refetching the summary. Mutations are applied only after the server
// confirmed them, using the canonical record it returned.
//
// Invariant: after any sequence of ApplyCreate/ApplyUpdate/ApplyDelete,
// the cached totals equal the field-wise sums over the cached entries,
// and left == income - expenses - fixedPays, maintained purely
// incrementally.
type BudgetCache struct {
	month   int
	year    int
	entries []models.BudgetEntry
	totals  budget.Totals
	left    int64
}

// NewBudgetCache starts on the current month, empty until the first Load.
func NewBudgetCache() *BudgetCache {
	now := time.Now()
	return &BudgetCache{
		month: int(now.Month()),
		year:  now.Year(),
	}
}

// Period returns the selected (month, year).
func (bc *BudgetCache) Period() (month, year int) {
	return bc.month, bc.year
}

// SetPeriod switches the selection and discards all cached state; the
// caller is expected to Load a freshly fetched summary afterwards.
func (bc *BudgetCache) SetPeriod(month, year int) {
	bc.month = month
	bc.year = year
	bc.entries = nil
	bc.totals = budget.Totals{}
	bc.left = 0
}

// Load replaces the cached state verbatim from a fetched summary.
func (bc *BudgetCache) Load(summary *budget.Summary) {
	bc.entries = append([]models.BudgetEntry(nil), summary.Entries...)
	bc.totals = summary.Totals
	bc.left = summary.Left
}

// Entries returns a copy of the cached entries, ascending by date.
func (bc *BudgetCache) Entries() []models.BudgetEntry {
	return append([]models.BudgetEntry(nil), bc.entries...)
}

// Totals returns the incrementally maintained totals.
func (bc *BudgetCache) Totals() budget.Totals {
	return bc.totals
}

// Left returns the incrementally maintained remaining balance.
func (bc *BudgetCache) Left() int64 {
	return bc.left
}

// Len returns the number of cached entries.
func (bc *BudgetCache) Len() int {
	return len(bc.entries)
}

func (bc *BudgetCache) sortByDate() {
	sort.SliceStable(bc.entries, func(i, j int) bool {
		return bc.entries[i].Date.Before(bc.entries[j].Date)
	})
}

func (bc *BudgetCache) find(id string) int {
	for i := range bc.entries {
		if bc.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// ApplyCreate inserts a confirmed new entry at its date position and
// adds its amounts to the totals.
func (bc *BudgetCache) ApplyCreate(entry models.BudgetEntry) {
	bc.entries = append(bc.entries, entry)
	bc.sortByDate()

	bc.totals.Add(&entry)
	bc.left += entry.Income - entry.Expenses - entry.FixedPays
}

// ApplyUpdate replaces the cached entry with the server's canonical
// record and adjusts the totals by the field deltas. Unknown ids are
// ignored: the cache may be stale, that is not an error.
func (bc *BudgetCache) ApplyUpdate(entry models.BudgetEntry) {
	i := bc.find(entry.ID)
	if i < 0 {
		return
	}

	old := bc.entries[i]
	bc.entries[i] = entry
	if !old.Date.Equal(entry.Date) {
		bc.sortByDate()
	}

	incomeDiff := entry.Income - old.Income
	expensesDiff := entry.Expenses - old.Expenses
	fixedPaysDiff := entry.FixedPays - old.FixedPays

	bc.totals.Income += incomeDiff
	bc.totals.Expenses += expensesDiff
	bc.totals.FixedPays += fixedPaysDiff
	bc.left += incomeDiff - expensesDiff - fixedPaysDiff
}

// ApplyDelete removes a confirmed-deleted entry and subtracts its
// amounts. Unknown ids are ignored.
func (bc *BudgetCache) ApplyDelete(id string) {
	i := bc.find(id)
	if i < 0 {
		return
	}

	entry := bc.entries[i]
	bc.entries = append(bc.entries[:i], bc.entries[i+1:]...)

	bc.totals.Income -= entry.Income
	bc.totals.Expenses -= entry.Expenses
	bc.totals.FixedPays -= entry.FixedPays
	bc.left -= entry.Income - entry.Expenses - entry.FixedPays
}
