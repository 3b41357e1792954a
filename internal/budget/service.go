package budget

import (
	"errors"
	"fmt"

	"github.com/kartik0x00/Budget-Formula/internal/models"
	"github.com/kartik0x00/Budget-Formula/internal/util"

	"gorm.io/gorm"
)

// Service owns all reads and writes of budget entries.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ---------- validation ----------

// 聚合查询和写入共用同一套边界检查：月份 1-12，年份 >= 1900。
func validatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return util.NewValidationError("Month must be between 1 and 12")
	}
	if year < 1900 {
		return util.NewValidationError("Year must be valid")
	}
	return nil
}

func validateAmounts(e *models.BudgetEntry) error {
	if e.Income < 0 {
		return util.NewValidationError("Income must be a non-negative number")
	}
	if e.Expenses < 0 {
		return util.NewValidationError("Expenses must be a non-negative number")
	}
	if e.FixedPays < 0 {
		return util.NewValidationError("Fixed pays must be a non-negative number")
	}
	return nil
}

func validateEntry(e *models.BudgetEntry) error {
	if err := validateAmounts(e); err != nil {
		return err
	}
	return validatePeriod(e.Month, e.Year)
}

// ---------- aggregation ----------

// GetSummary returns all entries for (month, year) ascending by date,
// with field-wise totals and the remaining balance.
func (s *Service) GetSummary(month, year int) (*Summary, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	var entries []models.BudgetEntry
	if err := s.db.
		Where("month = ? AND year = ?", month, year).
		Order("date ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}

	var totals Totals
	for i := range entries {
		totals.Add(&entries[i])
	}

	return &Summary{
		Entries: entries,
		Totals:  totals,
		Left:    totals.Left(),
	}, nil
}

// AvailablePeriods lists distinct (year, month) pairs across all entries,
// newest first. Used for navigation.
func (s *Service) AvailablePeriods() ([]Period, error) {
	periods := make([]Period, 0)
	if err := s.db.
		Model(&models.BudgetEntry{}).
		Select("year", "month").
		Group("year").Group("month").
		Order("year DESC").Order("month DESC").
		Scan(&periods).Error; err != nil {
		return nil, fmt.Errorf("query periods: %w", err)
	}
	return periods, nil
}

// ---------- mutation ----------

// Get returns a single entry by id.
func (s *Service) Get(id string) (*models.BudgetEntry, error) {
	var entry models.BudgetEntry
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("Budget entry not found")
		}
		return nil, fmt.Errorf("query entry: %w", err)
	}
	return &entry, nil
}

// Create validates the input and persists a new entry. Month and year
// are derived from the date, never taken from the client.
func (s *Service) Create(in EntryInput) (*models.BudgetEntry, error) {
	if in.Date == "" {
		return nil, util.NewValidationError("Date is required")
	}
	date, err := util.ParseDate(in.Date)
	if err != nil {
		return nil, util.NewValidationError("Invalid date")
	}

	var entry models.BudgetEntry
	entry.SetDate(date)
	if in.Income != nil {
		entry.Income = *in.Income
	}
	if in.IncomeSource != nil {
		entry.IncomeSource = *in.IncomeSource
	}
	if in.Expenses != nil {
		entry.Expenses = *in.Expenses
	}
	if in.ExpenseRemarks != nil {
		entry.ExpenseRemarks = *in.ExpenseRemarks
	}
	if in.FixedPays != nil {
		entry.FixedPays = *in.FixedPays
	}
	if in.FixedPaysRemarks != nil {
		entry.FixedPaysRemarks = *in.FixedPaysRemarks
	}

	if err := validateEntry(&entry); err != nil {
		return nil, err
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return &entry, nil
}

// Update applies only the fields present in the input. A new date
// rederives month/year; the resulting values are revalidated as a whole
// before anything is written, so a rejected update leaves the stored
// record unchanged.
func (s *Service) Update(id string, in EntryInput) (*models.BudgetEntry, error) {
	entry, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.Date != "" {
		date, err := util.ParseDate(in.Date)
		if err != nil {
			return nil, util.NewValidationError("Invalid date")
		}
		entry.SetDate(date)
	}
	if in.Income != nil {
		entry.Income = *in.Income
	}
	if in.IncomeSource != nil {
		entry.IncomeSource = *in.IncomeSource
	}
	if in.Expenses != nil {
		entry.Expenses = *in.Expenses
	}
	if in.ExpenseRemarks != nil {
		entry.ExpenseRemarks = *in.ExpenseRemarks
	}
	if in.FixedPays != nil {
		entry.FixedPays = *in.FixedPays
	}
	if in.FixedPaysRemarks != nil {
		entry.FixedPaysRemarks = *in.FixedPaysRemarks
	}

	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	if err := s.db.Save(entry).Error; err != nil {
		return nil, fmt.Errorf("save entry: %w", err)
	}
	return entry, nil
}

// Delete removes an entry permanently.
func (s *Service) Delete(id string) error {
	res := s.db.Delete(&models.BudgetEntry{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return util.NewNotFoundError("Budget entry not found")
	}
	return nil
}
