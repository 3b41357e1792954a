package handler

import (
	"net/http"
	"strconv"

	"github.com/kartik0x00/Budget-Formula/internal/budget"
	"github.com/kartik0x00/Budget-Formula/internal/util"

	"github.com/gin-gonic/gin"
)

// BudgetHandler 负责预算条目的增删改查接口
type BudgetHandler struct {
	Service *budget.Service
}

func NewBudgetHandler(svc *budget.Service) *BudgetHandler {
	return &BudgetHandler{Service: svc}
}

// parsePeriod reads the ?month= and ?year= query parameters.
func parsePeriod(c *gin.Context) (month, year int, err error) {
	monthStr := c.Query("month")
	yearStr := c.Query("year")
	if monthStr == "" || yearStr == "" {
		return 0, 0, util.NewValidationError("Month and year are required")
	}

	month, merr := strconv.Atoi(monthStr)
	year, yerr := strconv.Atoi(yearStr)
	if merr != nil || yerr != nil {
		return 0, 0, util.NewValidationError("Invalid month or year")
	}
	return month, year, nil
}

// ListEntries returns the summary for one month: entries plus totals.
func (h *BudgetHandler) ListEntries(c *gin.Context) {
	month, year, err := parsePeriod(c)
	if err != nil {
		util.Error(c, err)
		return
	}

	summary, err := h.Service.GetSummary(month, year)
	if err != nil {
		util.Error(c, err)
		return
	}

	util.Success(c, http.StatusOK, summary)
}

// GetEntry returns a single entry by id.
func (h *BudgetHandler) GetEntry(c *gin.Context) {
	entry, err := h.Service.Get(c.Param("id"))
	if err != nil {
		util.Error(c, err)
		return
	}

	util.Success(c, http.StatusOK, entry)
}

// CreateEntry persists a new entry.
func (h *BudgetHandler) CreateEntry(c *gin.Context) {
	var in budget.EntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, util.NewValidationError("Invalid request body"))
		return
	}

	entry, err := h.Service.Create(in)
	if err != nil {
		util.Error(c, err)
		return
	}

	util.Success(c, http.StatusCreated, entry)
}

// UpdateEntry applies a partial update to an existing entry.
func (h *BudgetHandler) UpdateEntry(c *gin.Context) {
	var in budget.EntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, util.NewValidationError("Invalid request body"))
		return
	}

	entry, err := h.Service.Update(c.Param("id"), in)
	if err != nil {
		util.Error(c, err)
		return
	}

	util.Success(c, http.StatusOK, entry)
}

// DeleteEntry removes an entry permanently.
func (h *BudgetHandler) DeleteEntry(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		util.Error(c, err)
		return
	}

	util.SuccessMessage(c, "Budget entry deleted successfully")
}

// AvailableDates lists the months that have at least one entry,
// newest first, for navigation.
func (h *BudgetHandler) AvailableDates(c *gin.Context) {
	periods, err := h.Service.AvailablePeriods()
	if err != nil {
		util.Error(c, err)
		return
	}

	util.Success(c, http.StatusOK, periods)
}
