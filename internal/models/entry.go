package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BudgetEntry 表示某一天的一条预算记录。
// month/year 是从 date 派生的冗余字段，只为了让按月查询走索引；
// 任何改动 date 的写入都必须同时重算这两个字段。
type BudgetEntry struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	Date             time.Time `gorm:"index;not null" json:"date"`
	Income           int64     `gorm:"not null;default:0" json:"income"`
	IncomeSource     string    `gorm:"size:255" json:"incomeSource"`
	Expenses         int64     `gorm:"not null;default:0" json:"expenses"`
	ExpenseRemarks   string    `gorm:"size:255" json:"expenseRemarks"`
	FixedPays        int64     `gorm:"not null;default:0" json:"fixedPays"`
	FixedPaysRemarks string    `gorm:"size:255" json:"fixedPaysRemarks"`
	Month            int       `gorm:"index:idx_period,priority:2;not null" json:"month"`
	Year             int       `gorm:"index:idx_period,priority:1;not null" json:"year"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the opaque id.
func (e *BudgetEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// SetDate stores d and rederives the denormalized period fields.
func (e *BudgetEntry) SetDate(d time.Time) {
	e.Date = d
	e.Month = int(d.Month())
	e.Year = d.Year()
}
